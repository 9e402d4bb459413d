package storage

import (
	"context"
)

// Lister enumerates the object keys of a single bucket
type Lister interface {
	ListObjectKeys(ctx context.Context) ([]string, error)
}
