package fetcher

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/storage"
)

type httpRequestFunc func(req *http.Request) (*http.Response, error)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "picproxy-bot ImageProxy"
	tokenHeader      = "X-Image-Proxy-Token"
)

type Config struct {
	Timeout          time.Duration
	Token            string
	UserAgent        string
	AllowedMimeTypes []string
	AllowedHosts     []string
}

type OriginFetcher struct {
	config      Config
	store       storage.BlobStore
	makeRequest httpRequestFunc
}

var _ Fetcher = (*OriginFetcher)(nil)

func NewOriginFetcher(config Config, store storage.BlobStore) *OriginFetcher {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}

	if len(config.AllowedMimeTypes) == 0 {
		config.AllowedMimeTypes = []string{"image/png", "image/jpeg", "image/gif"}
	}

	return &OriginFetcher{config, store, http.DefaultClient.Do}
}

func (f *OriginFetcher) Acquire(ctx context.Context, originalKey, rawURL string) ([]byte, error) {
	data, err := f.store.Read(ctx, originalKey)
	if err == nil {
		return data, nil
	}
	if err != storage.ErrBlobNotFound {
		return nil, errkind.Wrap(errkind.Processing, "origin lookup", err)
	}

	if !f.isAllowedHost(rawURL) {
		return nil, errkind.New(errkind.NotFound, "origin fetch", "source image host not allowed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errkind.Wrap(errkind.NotFound, "origin fetch", err)
	}

	req.Header.Set("Accept", strings.Join(f.config.AllowedMimeTypes, ", "))
	req.Header.Set("User-Agent", f.config.UserAgent)
	if f.config.Token != "" {
		req.Header.Set(tokenHeader, f.config.Token)
	}

	response, err := f.makeRequest(req)
	if err != nil {
		return nil, errkind.Wrap(errkind.NotFound, "origin fetch", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, errkind.Newf(errkind.NotFound, "origin fetch", "origin returned status %d", response.StatusCode)
	}

	data, err = io.ReadAll(response.Body)
	if err != nil {
		return nil, errkind.Wrap(errkind.NotFound, "origin fetch", err)
	}

	if !f.isAllowedMimeType(response.Header.Get("Content-Type")) {
		return nil, errkind.Newf(errkind.Processing, "origin validation",
			"file is not an image of type %s", strings.Join(f.config.AllowedMimeTypes, ", "))
	}

	// The fetched bytes are still valid for this request even when
	// caching them fails, so a store-write hiccup is logged instead
	// of raised.
	if err := f.store.Write(ctx, originalKey, data); err != nil {
		log.Warn().Err(err).Str("key", originalKey).Msg("could not store original image")
	}

	return data, nil
}

func (f *OriginFetcher) isAllowedMimeType(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, allowed := range f.config.AllowedMimeTypes {
		if allowed == mediaType {
			return true
		}
	}

	return false
}

func (f *OriginFetcher) isAllowedHost(rawURL string) bool {
	if len(f.config.AllowedHosts) == 0 {
		return true
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := parsed.Hostname()
	for _, allowedHost := range f.config.AllowedHosts {
		if glob.Glob(allowedHost, host) {
			return true
		}
	}

	return false
}
