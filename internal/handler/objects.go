package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sashko-guz/bucketlist/internal/config"
	"github.com/sashko-guz/bucketlist/internal/logger"
	"github.com/sashko-guz/bucketlist/internal/storage"
	"golang.org/x/sync/singleflight"
)

// ListerFactory builds the Lister used for one invocation
type ListerFactory func(ctx context.Context, cfg *config.Config) (storage.Lister, error)

type ObjectsHandler struct {
	cfg          *config.Config
	newLister    ListerFactory
	singleflight *singleflight.Group
}

// NewObjectsHandler returns a handler listing cfg.BucketName.
// A nil factory means storage.NewLister.
func NewObjectsHandler(cfg *config.Config, newLister ListerFactory) *ObjectsHandler {
	if newLister == nil {
		newLister = storage.NewLister
	}
	return &ObjectsHandler{
		cfg:          cfg,
		newLister:    newLister,
		singleflight: &singleflight.Group{},
	}
}

// List resolves credentials, builds the storage client and collects every key.
// Configuration, client and listing failures all end up in Result.Err.
func (h *ObjectsHandler) List(ctx context.Context) Result {
	lister, err := h.newLister(ctx, h.cfg)
	if err != nil {
		logger.Errorf("[ObjectsHandler] Error accessing S3: %v", err)
		return Result{Keys: []string{}, Err: err}
	}

	keys, err := lister.ListObjectKeys(ctx)
	if err != nil {
		logger.Errorf("[ObjectsHandler] Error accessing S3: %v", err)
		return Result{Keys: []string{}, Err: err}
	}
	if keys == nil {
		keys = []string{}
	}

	return Result{Keys: keys}
}

// Handle is the Lambda entry point. The event payload is ignored and the
// returned error is always nil: failures surface as an empty listing.
func (h *ObjectsHandler) Handle(ctx context.Context, _ json.RawMessage) (Response, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger.Infof("[ObjectsHandler] Invocation %s (function: %s)", lc.AwsRequestID, lambdacontext.FunctionName)
	}

	result := h.List(ctx)
	if logger.EnabledDebug() {
		logger.Debugf("[ObjectsHandler] Bucket names: %v", result.Keys)
	}
	logger.Infof("[ObjectsHandler] Returning %d key(s) for bucket %q", len(result.Keys), h.cfg.BucketName)

	return Envelope(result), nil
}

// ServeHTTP exposes the same envelope over HTTP for local development.
// Concurrent requests share a single in-flight listing.
func (h *ObjectsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value, _, shared := h.singleflight.Do(h.cfg.BucketName, func() (any, error) {
		// Detached from the request so one client disconnecting doesn't fail the others
		resp, err := h.Handle(context.WithoutCancel(r.Context()), nil)
		return resp, err
	})
	resp := value.(Response)

	if shared {
		logger.Debugf("[ObjectsHandler] Concurrent duplicate request served from singleflight: %s", h.cfg.BucketName)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.StatusCode)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		logger.Warnf("[ObjectsHandler] Error writing response: %v", err)
	}
}
