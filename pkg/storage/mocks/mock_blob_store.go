package mock_storage

import (
	context "context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thebartekbanach/picproxy/pkg/storage"
)

// MockBlobStore is a map-backed in-memory BlobStore for tests.
type MockBlobStore struct {
	blobs    map[string][]byte
	modified map[string]time.Time
	lock     sync.Mutex
	err      error
	writeErr error
}

var _ storage.BlobStore = (*MockBlobStore)(nil)

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		blobs:    make(map[string][]byte),
		modified: make(map[string]time.Time),
	}
}

// InstantWrite stores a blob without going through Write, so tests
// can preload state even when ReturnWriteError is in effect.
func (s *MockBlobStore) InstantWrite(key string, data []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.blobs[key] = data
	s.modified[key] = time.Now()
}

// ReturnError makes every read-side operation fail with err.
func (s *MockBlobStore) ReturnError(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.err = err
}

// ReturnWriteError makes every Write call fail with err.
func (s *MockBlobStore) ReturnWriteError(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.writeErr = err
}

func (s *MockBlobStore) Contains(key string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, found := s.blobs[key]
	return found
}

func (s *MockBlobStore) StoredKeys() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	keys := make([]string, 0, len(s.blobs))
	for key := range s.blobs {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

func (s *MockBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	data, found := s.blobs[key]
	if !found {
		return nil, storage.ErrBlobNotFound
	}

	return data, nil
}

func (s *MockBlobStore) Write(ctx context.Context, key string, data []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}

	s.blobs[key] = data
	s.modified[key] = time.Now()
	return nil
}

func (s *MockBlobStore) DeleteSubtree(ctx context.Context, prefix string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return s.err
	}

	cleanPrefix := strings.TrimSuffix(prefix, "/") + "/"
	for key := range s.blobs {
		if strings.HasPrefix(key, cleanPrefix) {
			delete(s.blobs, key)
			delete(s.modified, key)
		}
	}

	return nil
}

func (s *MockBlobStore) ListTopLevel(ctx context.Context) ([]storage.Entry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	seen := make(map[string]bool)
	entries := make([]storage.Entry, 0)

	for key := range s.blobs {
		topLevel := key
		isDir := false

		if index := strings.Index(key, "/"); index != -1 {
			topLevel = key[:index]
			isDir = true
		}

		if seen[topLevel] {
			continue
		}

		seen[topLevel] = true
		entries = append(entries, storage.Entry{Path: topLevel, IsDir: isDir})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (s *MockBlobStore) MimeTypeOf(ctx context.Context, key string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return "", s.err
	}

	data, found := s.blobs[key]
	if !found {
		return "", storage.ErrBlobNotFound
	}

	return http.DetectContentType(data), nil
}

func (s *MockBlobStore) LastModifiedOf(ctx context.Context, key string) (time.Time, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return time.Time{}, s.err
	}

	modified, found := s.modified[key]
	if !found {
		return time.Time{}, storage.ErrBlobNotFound
	}

	return modified, nil
}
