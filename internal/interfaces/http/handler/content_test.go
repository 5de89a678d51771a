package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	contentapp "github.com/shopizer/backend/internal/application/content"
	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func contentRoutes(f fixture, contents *MockContentService, files *MockFileService) http.Handler {
	h := NewContentHandler(contents, files)
	r := f.engine(nil)
	r.GET("/content/pages", h.Pages)
	r.GET("/content/:code", h.GetByCode)
	r.GET("/private/content", h.List)
	r.GET("/private/content/files", h.Files)
	r.POST("/private/content/files", h.Upload)
	r.DELETE("/private/content/files/:name", h.DeleteFile)
	return r
}

func TestContentHandler_Read(t *testing.T) {
	f := newFixture(t)
	contents := new(MockContentService)
	empty := shared.NewPaginated[contentapp.ReadableContent](nil, 0, 0, 0)
	contents.On("Pages", mock.Anything, f.store, f.lang, 0, 0).Return(empty, nil)
	contents.On("List", mock.Anything, f.store, f.lang, content.TypeBox, 1, 10).Return(empty, nil)
	contents.On("GetByCode", mock.Anything, f.store, f.lang, "about").
		Return(&contentapp.ReadableContent{Code: "about", Type: "PAGE"}, nil)
	contents.On("GetByCode", mock.Anything, f.store, f.lang, "missing").
		Return(nil, shared.NewNotFoundError("CONTENT_NOT_FOUND", "Content missing not found"))
	r := contentRoutes(f, contents, new(MockFileService))

	w := do(r, http.MethodGet, "/content/pages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	w = do(r, http.MethodGet, "/private/content?type=box&page=1&count=10", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/private/content?type=banner", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CONTENT_TYPE")

	w = do(r, http.MethodGet, "/content/about", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"about"`)

	w = do(r, http.MethodGet, "/content/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	contents.AssertExpectations(t)
}

func TestContentHandler_Upload(t *testing.T) {
	f := newFixture(t)
	png := []byte("\x89PNG\r\n\x1a\n0000")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	files := new(MockFileService)
	files.On("Upload", mock.Anything, f.store, "logo.png", "image/png", int64(len(png)), mock.Anything).
		Return(&contentapp.ReadableFile{Name: "logo.png", URL: "/static/files/DEFAULT/logo.png"}, nil)
	r := contentRoutes(f, new(MockContentService), files)

	req := httptest.NewRequest(http.MethodPost, "/private/content/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "/static/files/DEFAULT/logo.png")
	files.AssertExpectations(t)

	t.Run("missing part", func(t *testing.T) {
		w := do(r, http.MethodPost, "/private/content/files", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContentHandler_Files(t *testing.T) {
	f := newFixture(t)
	files := new(MockFileService)
	files.On("List", mock.Anything, f.store).Return([]contentapp.ReadableFile{{Name: "a.css"}}, nil)
	files.On("Delete", mock.Anything, f.store, "gone.png").
		Return(shared.NewNotFoundError("FILE_NOT_FOUND", "File gone.png not found"))
	r := contentRoutes(f, new(MockContentService), files)

	w := do(r, http.MethodGet, "/private/content/files", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a.css")

	w = do(r, http.MethodDelete, "/private/content/files/gone.png", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
