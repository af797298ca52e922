package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/thebartekbanach/picproxy/pkg/cleaner"
	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/proxy"
	"github.com/thebartekbanach/picproxy/pkg/sites"
	"github.com/thebartekbanach/picproxy/pkg/transform"
)

var (
	siteRoutePattern    = regexp.MustCompile(`^/([a-z]+)/(resize|crop)/(\d*)x(\d*)/(.+)$`)
	presetRoutePattern  = regexp.MustCompile(`^/([a-z]+)/preset/([a-z0-9-]+)/(.+)$`)
	defaultRoutePattern = regexp.MustCompile(`^/(resize|crop)/(\d*)x(\d*)/(.+)$`)
)

var errRouteNotMatched = errors.New("request path does not match any image route")

func handleImageRequest(ctx context.Context, proxyService proxy.ProxyService, resolver *sites.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processingCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only GET method is allowed"))
			return
		}

		request, err := parseImageRoute(r.URL.Path, resolver)
		if err != nil {
			writeErrorResponse(w, err)
			return
		}

		if exceedsSizeLimits(request, resolver) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("image size not supported"))
			return
		}

		log.Debug().Str("path", r.URL.Path).Str("namespace", request.Namespace).Msg("processing image request")

		response, err := proxyService.Resolve(processingCtx, request)
		if err != nil {
			writeErrorResponse(w, err)
			return
		}

		writeImageResponse(w, r, response)
	}
}

func handleCacheClearRequest(ctx context.Context, sweeper cleaner.Sweeper) http.HandlerFunc {
	rawAccessToken := viper.GetString("server.admin_token")
	accessToken := fmt.Sprintf("Bearer %s", rawAccessToken)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only DELETE method is allowed"))
			return
		}

		if rawAccessToken != "" && r.Header.Get("Authorization") != accessToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("access token authorization failed"))
			return
		}

		if err := sweeper.Sweep(ctx); err != nil {
			log.Error().Err(err).Msg("error occurred when clearing image cache")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("error occurred when clearing image cache"))
			return
		}

		w.Write([]byte("image cache cleared"))
	}
}

func parseImageRoute(path string, resolver *sites.Resolver) (proxy.Request, error) {
	if match := siteRoutePattern.FindStringSubmatch(path); match != nil {
		if !resolver.SitesEnabled() {
			return proxy.Request{}, errkind.New(errkind.NotFound, "routing", "site processing is disabled")
		}

		url, err := resolver.SiteURL(match[1])
		if err != nil {
			return proxy.Request{}, err
		}

		return proxy.Request{
			Namespace: match[1],
			SourceURL: url + match[5],
			Width:     parseDimension(match[3]),
			Height:    parseDimension(match[4]),
			Type:      transform.ParseType(match[2]),
		}, nil
	}

	if match := presetRoutePattern.FindStringSubmatch(path); match != nil {
		if !resolver.PresetsEnabled() {
			return proxy.Request{}, errkind.New(errkind.NotFound, "routing", "preset processing is disabled")
		}

		url, err := resolver.SiteURL(match[1])
		if err != nil {
			return proxy.Request{}, err
		}

		preset, err := resolver.Preset(match[2], match[1])
		if err != nil {
			return proxy.Request{}, err
		}

		return proxy.Request{
			Namespace: match[1],
			SourceURL: url + match[3],
			Width:     preset.Width,
			Height:    preset.Height,
			Type:      preset.TransformType(),
		}, nil
	}

	if match := defaultRoutePattern.FindStringSubmatch(path); match != nil {
		url, err := resolver.DefaultURL()
		if err != nil {
			return proxy.Request{}, err
		}

		return proxy.Request{
			Namespace: "default",
			SourceURL: url + match[4],
			Width:     parseDimension(match[2]),
			Height:    parseDimension(match[3]),
			Type:      transform.ParseType(match[1]),
		}, nil
	}

	return proxy.Request{}, errkind.Wrap(errkind.NotFound, "routing", errRouteNotMatched)
}

func parseDimension(raw string) uint {
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}

	return uint(value)
}

func exceedsSizeLimits(request proxy.Request, resolver *sites.Resolver) bool {
	widthLimit := resolver.WidthLimit()
	heightLimit := resolver.HeightLimit()

	return (widthLimit != 0 && request.Width > widthLimit) ||
		(heightLimit != 0 && request.Height > heightLimit)
}

func writeImageResponse(w http.ResponseWriter, r *http.Request, response proxy.Response) {
	cacheTag := fmt.Sprintf("%q", response.CacheTag)

	w.Header().Set("Content-Type", response.MimeType)
	w.Header().Set("Cache-Control", "public")
	w.Header().Set("ETag", cacheTag)
	w.Header().Set("Expires", time.Now().Add(7*24*time.Hour).UTC().Format(http.TimeFormat))
	w.Header().Set("Last-Modified", response.LastModified.UTC().Format(http.TimeFormat))

	if r.Header.Get("If-None-Match") == cacheTag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Write(response.Content)
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	// an empty origin file is indistinguishable from a missing image
	// for the client
	if errors.Is(err, transform.ErrFileEmpty) {
		log.Debug().Err(err).Msg("image not found")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("image not found"))
		return
	}

	switch errkind.KindOf(err) {
	case errkind.NotFound:
		log.Debug().Err(err).Msg("image not found")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("image not found"))
	case errkind.Configuration:
		log.Error().Err(err).Msg("configuration error")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("configuration error"))
	default:
		log.Error().Err(err).Msg("image processing error")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("image processing error"))
	}
}
