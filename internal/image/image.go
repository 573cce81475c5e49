// Package image defines the binary object store backing store logos and
// banners. Objects are addressed by generated id; records keep weak
// references and a dangling id simply fails lookup.
package image

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

var ErrFileNotFound = errors.New("image not found")

// File is a stored binary object. Reader streams the payload and must
// be closed by the caller.
type File struct {
	ID          uuid.UUID
	ContentType string
	Size        int64
	Reader      io.ReadCloser
}

//go:generate mockgen -source=image.go -destination=mocks/mock.go -package=mockimage
type Store interface {
	// Put stores the payload under a fresh id. Existing objects are
	// never overwritten.
	Put(ctx context.Context, reader io.Reader, size int64, contentType string) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*File, error)
	// Delete removes the object. A missing id yields ErrFileNotFound,
	// which callers treat as already cleaned up.
	Delete(ctx context.Context, id uuid.UUID) error
}
