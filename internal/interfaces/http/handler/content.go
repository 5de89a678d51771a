package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	contentapp "github.com/shopizer/backend/internal/application/content"
	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ContentService is the content surface used by ContentHandler
type ContentService interface {
	ResourceService[contentapp.ReadableContent, contentapp.PersistableContent]
	CodeChecker
	Pages(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[contentapp.ReadableContent], error)
	List(ctx context.Context, store *merchant.Store, lang *reference.Language, typ content.Type, page, count int) (*shared.Paginated[contentapp.ReadableContent], error)
	GetByCode(ctx context.Context, store *merchant.Store, lang *reference.Language, code string) (*contentapp.ReadableContent, error)
}

// FileService stores the static files of a store
type FileService interface {
	Upload(ctx context.Context, store *merchant.Store, name, contentType string, size int64, body io.Reader) (*contentapp.ReadableFile, error)
	Delete(ctx context.Context, store *merchant.Store, name string) error
	List(ctx context.Context, store *merchant.Store) ([]contentapp.ReadableFile, error)
}

// ContentHandler handles content pages, boxes and files
type ContentHandler struct {
	resource[contentapp.ReadableContent, contentapp.PersistableContent]
	contents ContentService
	files    FileService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contents ContentService, files FileService) *ContentHandler {
	h := &ContentHandler{contents: contents, files: files}
	h.svc = contents
	return h
}

// Pages godoc
// @Summary      List content pages
// @Description  Retrieve a page of the visible content pages of the store
// @Tags         content
// @Produce      json
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[contentapp.ReadableContent]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /content/pages [get]
func (h *ContentHandler) Pages(c *gin.Context) {
	q, ok := h.pageQuery(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.contents.Pages(c.Request.Context(), store, lang, q.Page, q.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// List godoc
// @Summary      List content
// @Description  Retrieve a page of the store content of one type
// @Tags         content
// @Produce      json
// @Param        type query string false "Content type" Enums(BOX, PAGE, SECTION) default(PAGE)
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[contentapp.ReadableContent]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content [get]
func (h *ContentHandler) List(c *gin.Context) {
	typ := content.TypePage
	if raw := c.Query("type"); raw != "" {
		var err error
		if typ, err = content.ParseType(raw); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	q, ok := h.pageQuery(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.contents.List(c.Request.Context(), store, lang, typ, q.Page, q.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// GetByCode godoc
// @Summary      Get content by code
// @Description  Retrieve a visible content item of the store by its code
// @Tags         content
// @Produce      json
// @Param        code path string true "Content code"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} contentapp.ReadableContent
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /content/{code} [get]
func (h *ContentHandler) GetByCode(c *gin.Context) {
	store, lang := scope(c)
	out, err := h.contents.GetByCode(c.Request.Context(), store, lang, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Unique godoc
// @Summary      Check content code
// @Description  Report whether the store already uses a content code
// @Tags         content
// @Produce      json
// @Param        code query string true "Code to check"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} dto.UniqueResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/unique [get]
func (h *ContentHandler) Unique(c *gin.Context) {
	h.unique(c, h.contents)
}

// Files godoc
// @Summary      List content files
// @Description  List the static files stored for the store
// @Tags         content
// @Produce      json
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {array} contentapp.ReadableFile
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/files [get]
func (h *ContentHandler) Files(c *gin.Context) {
	store, _ := scope(c)
	out, err := h.files.List(c.Request.Context(), store)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Upload godoc
// @Summary      Upload a content file
// @Description  Store a static file for the store. The content type is sniffed when the part does not carry one.
// @Tags         content
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to upload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} contentapp.ReadableFile
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/files [post]
func (h *ContentHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Multipart part file is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(f, sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			h.BadRequest(c, "Cannot read uploaded file")
			return
		}
	}

	store, _ := scope(c)
	out, err := h.files.Upload(c.Request.Context(), store, header.Filename, contentType, header.Size, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// DeleteFile godoc
// @Summary      Delete a content file
// @Description  Delete a static file of the store
// @Tags         content
// @Produce      json
// @Param        name path string true "File name"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/files/{name} [delete]
func (h *ContentHandler) DeleteFile(c *gin.Context) {
	store, _ := scope(c)
	if err := h.files.Delete(c.Request.Context(), store, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}


// Get godoc
// @Summary      Get content by ID
// @Description  Retrieve a content of the store by its ID
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        id path string true "Content ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} contentapp.ReadableContent
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/{id} [get]
func (h *ContentHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a content
// @Description  Create a content in the store. Descriptions are upserted by language.
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request body contentapp.PersistableContent true "Content payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} contentapp.ReadableContent
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content [post]
func (h *ContentHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a content
// @Description  Update a content of the store. Omitted fields keep their stored value.
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        id path string true "Content ID" format(uuid)
// @Param        request body contentapp.PersistableContent true "Content payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} contentapp.ReadableContent
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/{id} [put]
func (h *ContentHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a content
// @Description  Delete a content of the store
// @Tags         content
// @Produce      json
// @Param        id path string true "Content ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/content/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) { h.resource.Delete(c) }
