package storage_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/thebartekbanach/picproxy/pkg/storage"
)

// newTestingBlobStore connects to a real minio instance and creates a
// throwaway bucket for the test. The whole suite is skipped when no
// instance is configured through the environment.
func newTestingBlobStore(t *testing.T) storage.BlobStore {
	t.Helper()

	endpoint := os.Getenv("PICPROXY_TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("PICPROXY_TEST_MINIO_ENDPOINT not set, skipping minio integration tests")
	}

	config := storage.MinioBlobStoreConfig{
		Endpoint:  endpoint,
		AccessKey: envOrDefault("PICPROXY_TEST_MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: envOrDefault("PICPROXY_TEST_MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    "picproxy-test-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Location:  "us-east-1",
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	store, err := storage.NewMinioBlobStore(ctx, config)
	if err != nil {
		t.Fatalf("could not connect to testing minio instance: %v", err)
	}

	return &store
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}

func TestMinioBlobStore_WriteReadRoundTrip(t *testing.T) {
	store := newTestingBlobStore(t)
	ctx := context.Background()

	data := []byte("\x89PNG\r\n\x1a\ntesting image payload")
	if err := store.Write(ctx, "blog/original/abc", data); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	read, err := store.Read(ctx, "blog/original/abc")
	if err != nil {
		t.Fatalf("expected read to succeed, got %v", err)
	}

	if !bytes.Equal(read, data) {
		t.Error("expected to read back the written bytes")
	}
}

func TestMinioBlobStore_ReadMissingKey(t *testing.T) {
	store := newTestingBlobStore(t)

	_, err := store.Read(context.Background(), "blog/original/missing")
	if err != storage.ErrBlobNotFound {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestMinioBlobStore_MetadataOfStoredBlob(t *testing.T) {
	store := newTestingBlobStore(t)
	ctx := context.Background()

	data := []byte("\x89PNG\r\n\x1a\ntesting image payload")
	if err := store.Write(ctx, "blog/original/abc", data); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	mimeType, err := store.MimeTypeOf(ctx, "blog/original/abc")
	if err != nil {
		t.Fatalf("expected mime type lookup to succeed, got %v", err)
	}

	if mimeType != "image/png" {
		t.Errorf("expected image/png, got %q", mimeType)
	}

	lastModified, err := store.LastModifiedOf(ctx, "blog/original/abc")
	if err != nil {
		t.Fatalf("expected last modified lookup to succeed, got %v", err)
	}

	if lastModified.IsZero() {
		t.Error("expected a non-zero last modified timestamp")
	}
}

func TestMinioBlobStore_DeleteSubtreeRemovesNamespace(t *testing.T) {
	store := newTestingBlobStore(t)
	ctx := context.Background()

	preload := map[string][]byte{
		"blog/original/abc":       []byte("original"),
		"blog/resize/400x300/abc": []byte("variant"),
		"shop/original/def":       []byte("original"),
		"shop/crop/100x100/def":   []byte("variant"),
		"shop/resize/800x600/def": []byte("variant"),
	}
	for key, data := range preload {
		if err := store.Write(ctx, key, data); err != nil {
			t.Fatalf("could not preload %q: %v", key, err)
		}
	}

	if err := store.DeleteSubtree(ctx, "blog"); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}

	if _, err := store.Read(ctx, "blog/original/abc"); err != storage.ErrBlobNotFound {
		t.Errorf("expected blog namespace to be gone, got %v", err)
	}

	if _, err := store.Read(ctx, "shop/original/def"); err != nil {
		t.Errorf("expected shop namespace to survive, got %v", err)
	}
}

func TestMinioBlobStore_ListTopLevelReturnsNamespaces(t *testing.T) {
	store := newTestingBlobStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, "blog/original/abc", []byte("original")); err != nil {
		t.Fatalf("could not preload blob: %v", err)
	}
	if err := store.Write(ctx, "shop/original/def", []byte("original")); err != nil {
		t.Fatalf("could not preload blob: %v", err)
	}

	entries, err := store.ListTopLevel(ctx)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}

	found := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir {
			found[entry.Path] = true
		}
	}

	if !found["blog"] || !found["shop"] {
		t.Errorf("expected blog and shop namespaces, got %v", entries)
	}
}
