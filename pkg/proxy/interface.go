package proxy

import (
	"context"
	"time"

	"github.com/thebartekbanach/picproxy/pkg/transform"
)

// Request is one fully-resolved image request. It is immutable once
// constructed; a change of any field means constructing a new value,
// which in turn means freshly derived storage keys.
type Request struct {
	Namespace string
	SourceURL string
	Width     uint
	Height    uint
	Type      transform.Type
}

// Response carries the processed image bytes together with the cache
// metadata the transport layer needs to build a protocol response.
type Response struct {
	Content      []byte
	MimeType     string
	CacheTag     string
	LastModified time.Time
}

type ProxyService interface {
	Resolve(ctx context.Context, request Request) (Response, error)
}
