package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sashko-guz/bucketlist/internal/config"
	"github.com/sashko-guz/bucketlist/internal/logger"
	"github.com/sashko-guz/bucketlist/internal/storage/drivers"
)

type StorageDriver string

const (
	DriverS3    StorageDriver = "s3"
	DriverLocal StorageDriver = "local"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Driver constructors, replaced in tests to inspect what the factory passes down
var (
	newS3Client = func(ctx context.Context, opts drivers.S3Options) (Lister, error) {
		return drivers.NewS3Client(ctx, opts)
	}
	newLocalStorage = func(basePath string) (Lister, error) {
		return drivers.NewLocalStorage(basePath)
	}
)

// NewLister resolves credentials and builds the Lister for the configured driver
func NewLister(ctx context.Context, cfg *config.Config) (Lister, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch StorageDriver(cfg.Driver) {
	case DriverS3:
		creds, err := ResolveCredentials(cfg)
		if err != nil {
			return nil, err
		}
		lister, err := newS3Client(ctx, drivers.S3Options{
			Region:      cfg.Region,
			Bucket:      cfg.BucketName,
			Endpoint:    cfg.Endpoint,
			Credentials: creds.Provider,
			PageSize:    cfg.ListPageSize,
			HTTP: &drivers.S3HTTPConfig{
				MaxIdleConns:   cfg.S3MaxIdleConns,
				ConnectTimeout: cfg.S3ConnectTimeout,
				RequestTimeout: cfg.S3RequestTimeout,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 (credentials: %s): %w", creds.Mode, err)
		}
		logger.Debugf("[Storage:%s] Initialized (driver: s3, credentials: %s)", cfg.BucketName, creds.Mode)
		return lister, nil

	case DriverLocal:
		// Each bucket is a subdirectory of the local root
		lister, err := newLocalStorage(filepath.Join(cfg.LocalRoot, cfg.BucketName))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		logger.Debugf("[Storage:%s] Initialized (driver: local, root: %s)", cfg.BucketName, cfg.LocalRoot)
		return lister, nil

	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownDriver, cfg.Driver)
	}
}
