package proxy

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/fetcher"
	"github.com/thebartekbanach/picproxy/pkg/keys"
	"github.com/thebartekbanach/picproxy/pkg/storage"
	"github.com/thebartekbanach/picproxy/pkg/transform"
)

type proxyService struct {
	store       storage.BlobStore
	fetcher     fetcher.Fetcher
	transformer transform.Transformer
}

var _ ProxyService = (*proxyService)(nil)

func NewProxyService(store storage.BlobStore, fetcher fetcher.Fetcher, transformer transform.Transformer) ProxyService {
	return &proxyService{
		store:       store,
		fetcher:     fetcher,
		transformer: transformer,
	}
}

// Resolve runs the request-to-bytes pipeline: processed-variant
// lookup, original acquisition, transform, store, respond. It keeps
// no state across calls and never retries; the first failure of any
// stage propagates to the caller as-is.
func (p *proxyService) Resolve(ctx context.Context, request Request) (Response, error) {
	processedKey, err := keys.Processed(request.Namespace, request.Type, request.Width, request.Height, request.SourceURL)
	if err != nil {
		return Response{}, err
	}

	content, err := p.store.Read(ctx, processedKey)
	if err == nil {
		return p.buildResponse(ctx, processedKey, content)
	}
	if err != storage.ErrBlobNotFound {
		return Response{}, errkind.Wrap(errkind.Processing, "cache lookup", err)
	}

	originalKey, err := keys.Original(request.Namespace, request.SourceURL)
	if err != nil {
		return Response{}, err
	}

	original, err := p.fetcher.Acquire(ctx, originalKey, request.SourceURL)
	if err != nil {
		return Response{}, err
	}

	if len(original) == 0 {
		return Response{}, errkind.Wrap(errkind.Processing, "transform", transform.ErrFileEmpty)
	}

	content = original
	if request.Width != 0 || request.Height != 0 {
		var resolvedWidth, resolvedHeight uint
		content, resolvedWidth, resolvedHeight, err = p.transformer.Transform(original, request.Width, request.Height, request.Type)
		if err != nil {
			return Response{}, err
		}

		// natural-size derivation may have changed the dimensions,
		// and with them the key of the processed variant
		if resolvedWidth != request.Width || resolvedHeight != request.Height {
			if processedKey, err = keys.Processed(request.Namespace, request.Type, resolvedWidth, resolvedHeight, request.SourceURL); err != nil {
				return Response{}, err
			}
		}
	}

	if err := p.store.Write(ctx, processedKey, content); err != nil {
		return Response{}, errkind.Wrap(errkind.Processing, "cache store", err)
	}

	log.Debug().Str("key", processedKey).Msg("processed image stored")
	return p.buildResponse(ctx, processedKey, content)
}

func (p *proxyService) buildResponse(ctx context.Context, processedKey string, content []byte) (Response, error) {
	mimeType, err := p.store.MimeTypeOf(ctx, processedKey)
	if err != nil {
		return Response{}, errkind.Wrap(errkind.Processing, "cache metadata", err)
	}

	lastModified, err := p.store.LastModifiedOf(ctx, processedKey)
	if err != nil {
		return Response{}, errkind.Wrap(errkind.Processing, "cache metadata", err)
	}

	return Response{
		Content:      content,
		MimeType:     mimeType,
		CacheTag:     fmt.Sprintf("%x", sha256.Sum256(content)),
		LastModified: lastModified,
	}, nil
}
