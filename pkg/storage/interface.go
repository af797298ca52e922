package storage

import (
	"context"
	"errors"
	"time"
)

// Entry describes one top-level item of the store, usually a
// namespace directory.
type Entry struct {
	Path  string
	IsDir bool
}

// BlobStore is byte-addressable storage keyed by slash-separated
// paths. The store derives MIME types from blob content itself;
// callers never supply one.
type BlobStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	DeleteSubtree(ctx context.Context, prefix string) error
	ListTopLevel(ctx context.Context) ([]Entry, error)
	MimeTypeOf(ctx context.Context, key string) (string, error)
	LastModifiedOf(ctx context.Context, key string) (time.Time, error)
}

var ErrBlobNotFound = errors.New("blob not found")
