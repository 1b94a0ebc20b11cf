package ports

import (
	"context"
	"io"
)

// ImageStore writes product images and returns the URL clients load them from.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
