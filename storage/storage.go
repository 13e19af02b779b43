// Package storage holds the object stores uploaded listing images are
// written to.
package storage

import (
	"context"
	"io"
)

// ObjectStore persists an object under key and returns the URL clients use
// to fetch it.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
