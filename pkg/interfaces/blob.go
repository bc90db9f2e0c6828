package interfaces

import (
	"context"
	"io"
)

// Upload carries a single file destined for the blob store. Name is the
// original filename; providers derive the stored object name from it.
type Upload struct {
	Name    string
	Content io.Reader
}

// BlobProvider abstracts the object-storage capability used for uploaded
// images and documents. Put stores the upload under the logical folder and
// returns a stable retrieval URL.
type BlobProvider interface {
	Put(ctx context.Context, folder string, upload Upload) (string, error)
}
