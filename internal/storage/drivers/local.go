package drivers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sashko-guz/bucketlist/internal/logger"
)

// LocalStorage treats a directory as a bucket: every regular file below it is
// an object whose key is its slash-separated path relative to the directory
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	info, err := os.Stat(absBasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("bucket directory not found: %s", absBasePath)
		}
		return nil, fmt.Errorf("failed to access bucket directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bucket path is not a directory: %s", absBasePath)
	}

	logger.Infof("[Local Storage] Initialized with base path: %s", absBasePath)
	return &LocalStorage{
		basePath: absBasePath,
	}, nil
}

// ListObjectKeys walks the base directory. Keys are sorted bytewise, the same
// order S3 uses for ListObjectsV2.
func (l *LocalStorage) ListObjectKeys(ctx context.Context) ([]string, error) {
	keys := []string{}

	err := filepath.WalkDir(l.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list objects in %s: %w", l.basePath, err)
	}

	sort.Strings(keys)
	logger.Infof("[Local Storage] Listed %d object(s): %s", len(keys), l.basePath)
	return keys, nil
}
