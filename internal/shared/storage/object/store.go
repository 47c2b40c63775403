package object

import (
	"context"
	"io"
)

// Store defines the contract for saving and retrieving uploaded files. The
// returned storage key is an opaque locator; callers persist it and pass it
// back to Open.
type Store interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
