package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the named object does not exist in the backend.
var ErrNotFound = errors.New("storage: object not found")

// Service persists uploaded photos behind a flat object namespace. Names
// are server-generated; backends never interpret them as paths.
type Service interface {
	Save(ctx context.Context, name string, r io.Reader) error
	// Open returns the object body and its size in bytes. The caller
	// closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}
