package content

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxFileSize is the largest content file accepted for upload
const MaxFileSize int64 = 10 << 20

var allowedContentTypes = []string{
	"image/",
	"text/",
	"font/",
	"application/pdf",
	"application/javascript",
	"application/json",
}

// FileService manages the static files of store content
type FileService struct {
	storage ObjectStorage
	logger  *zap.Logger
}

// NewFileService creates a FileService over storage
func NewFileService(storage ObjectStorage, logger *zap.Logger) *FileService {
	return &FileService{storage: storage, logger: logger}
}

func fileKey(store *merchant.Store, name string) string {
	return "files/" + store.Code + "/" + name
}

func filePrefix(store *merchant.Store) string {
	return "files/" + store.Code + "/"
}

func validateFileName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_FILE", "File name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || path.Clean(name) != name {
		return shared.NewValidationError("INVALID_FILE", "Invalid file name "+name)
	}
	return nil
}

func allowedContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, prefix := range allowedContentTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// Upload stores a file for store, replacing any file with the same name
func (s *FileService) Upload(ctx context.Context, store *merchant.Store, name, contentType string, size int64, body io.Reader) (*ReadableFile, error) {
	if store == nil {
		return nil, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, shared.NewValidationError("INVALID_FILE", "File "+name+" is empty")
	}
	if size > MaxFileSize {
		return nil, shared.NewValidationError("FILE_TOO_LARGE", "File "+name+" exceeds the maximum upload size")
	}
	if !allowedContentType(contentType) {
		return nil, shared.NewValidationError("INVALID_FILE_TYPE", "Content type "+contentType+" is not accepted")
	}

	key := fileKey(store, name)
	if err := s.storage.Put(ctx, key, body, size, contentType); err != nil {
		s.logger.Error("Failed to store content file",
			zap.String("store", store.Code), zap.String("name", name), zap.Error(err))
		return nil, shared.NewServiceError("Cannot store file "+name, err)
	}
	url, err := s.storage.URL(ctx, key)
	if err != nil {
		return nil, shared.NewServiceError("Cannot resolve URL of file "+name, err)
	}
	f := content.File{StoreCode: store.Code, Name: name, ContentType: contentType, Size: size, URL: url}
	return toReadableFile(f), nil
}

// Delete removes a file of store
func (s *FileService) Delete(ctx context.Context, store *merchant.Store, name string) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if err := validateFileName(name); err != nil {
		return err
	}
	key := fileKey(store, name)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return shared.NewServiceError("Cannot check file "+name, err)
	}
	if !exists {
		return shared.NewNotFoundError("FILE_NOT_FOUND", "File "+name+" not found")
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return shared.NewServiceError("Cannot delete file "+name, err)
	}
	return nil
}

// List returns the files of store ordered by name
func (s *FileService) List(ctx context.Context, store *merchant.Store) ([]ReadableFile, error) {
	if store == nil {
		return nil, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	prefix := filePrefix(store)
	objects, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, shared.NewServiceError("Cannot list files of store "+store.Code, err)
	}
	out := make([]ReadableFile, 0, len(objects))
	for _, o := range objects {
		url, err := s.storage.URL(ctx, o.Key)
		if err != nil {
			return nil, shared.NewServiceError("Cannot resolve URL of file "+o.Key, err)
		}
		f := content.File{
			StoreCode:   store.Code,
			Name:        strings.TrimPrefix(o.Key, prefix),
			ContentType: o.ContentType,
			Size:        o.Size,
			URL:         url,
		}
		out = append(out, *toReadableFile(f))
	}
	return out, nil
}

func toReadableFile(f content.File) *ReadableFile {
	return &ReadableFile{Name: f.Name, ContentType: f.ContentType, Size: f.Size, URL: f.URL}
}
