package fetcher

import "context"

// Fetcher obtains the original source image bytes, preferring the
// blob store and falling back to a network fetch that persists the
// result under originalKey.
type Fetcher interface {
	Acquire(ctx context.Context, originalKey, url string) ([]byte, error)
}
