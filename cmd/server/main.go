package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sashko-guz/bucketlist/internal/config"
	"github.com/sashko-guz/bucketlist/internal/handler"
	"github.com/sashko-guz/bucketlist/internal/logger"
	"github.com/sashko-guz/bucketlist/internal/storage"
)

func main() {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	logger.Infof("[Server] Starting bucket listing server…")

	// Build the lister once; the server reuses it across requests
	baseLister, err := storage.NewLister(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("[Server] Failed to initialize storage: %v", err)
	}

	lister, err := storage.NewCachedLister(baseLister, cfg.BucketName, cfg.ListCacheTTL, cfg.ListCacheMaxSize)
	if err != nil {
		logger.Fatalf("[Server] Failed to initialize listing cache: %v", err)
	}
	if cached, ok := lister.(*storage.CachedLister); ok {
		defer cached.Close()
	}

	objectsHandler := handler.NewObjectsHandler(cfg, func(context.Context, *config.Config) (storage.Lister, error) {
		return lister, nil
	})

	mux := http.NewServeMux()
	mux.Handle("/objects", objectsHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		logger.Infof("[Server] Listening on %s", addr)
		logger.Infof("[Server] Objects endpoint: http://localhost%s/objects (bucket: %s)", addr, cfg.BucketName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("[Server] Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Infof("[Server] Shutting down…")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("[Server] Graceful shutdown failed: %v", err)
	}
}
