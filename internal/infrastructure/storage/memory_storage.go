package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	contentapp "github.com/shopizer/backend/internal/application/content"
)

var _ contentapp.ObjectStorage = (*MemoryObjectStorage)(nil)

type memoryObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryObjectStorage keeps content files in process memory. It backs
// development setups and tests.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

// NewMemoryObjectStorage creates an empty MemoryObjectStorage serving URLs under baseURL
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = "/static"
	}
	return &MemoryObjectStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string]memoryObject),
	}
}

// Put stores a copy of body at key
func (s *MemoryObjectStorage) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: buf.Bytes(), contentType: contentType, modified: time.Now()}
	return nil
}

// Delete removes key; a missing key is not an error
func (s *MemoryObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists reports whether key is stored
func (s *MemoryObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// List returns the objects under prefix ordered by key
func (s *MemoryObjectStorage) List(_ context.Context, prefix string) ([]contentapp.StoredObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects := make([]contentapp.StoredObject, 0)
	for key, obj := range s.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		objects = append(objects, contentapp.StoredObject{
			Key:          key,
			Size:         int64(len(obj.data)),
			ContentType:  obj.contentType,
			LastModified: obj.modified,
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// URL returns baseURL joined with the escaped key
func (s *MemoryObjectStorage) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/"), nil
}

// Read returns the bytes stored at key
func (s *MemoryObjectStorage) Read(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(obj.data), true
}
