package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
)

// ResourceService is the store-scoped CRUD surface shared by catalog,
// customer, tax and content services. R is the readable type and P the
// persistable payload.
type ResourceService[R, P any] interface {
	Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*R, error)
	Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req P) (*R, error)
	Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req P) (*R, error)
	Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error
}

// CodeChecker reports whether a store already uses a code
type CodeChecker interface {
	Exists(ctx context.Context, store *merchant.Store, code string) (bool, error)
}

// ListService lists a resource without filters
type ListService[R any] interface {
	List(ctx context.Context, store *merchant.Store, lang *reference.Language, page, count int) (*shared.Paginated[R], error)
}

// resource serves the id-based endpoints of a ResourceService
type resource[R, P any] struct {
	BaseHandler
	svc ResourceService[R, P]
}

// Get handles GET /:id
func (h *resource[R, P]) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.svc.Get(c.Request.Context(), store, lang, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Create handles POST /
func (h *resource[R, P]) Create(c *gin.Context) {
	var req P
	if !h.bindJSON(c, &req) {
		return
	}
	store, lang := scope(c)
	out, err := h.svc.Create(c.Request.Context(), store, lang, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// Update handles PUT /:id
func (h *resource[R, P]) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req P
	if !h.bindJSON(c, &req) {
		return
	}
	store, lang := scope(c)
	out, err := h.svc.Update(c.Request.Context(), store, lang, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Delete handles DELETE /:id
func (h *resource[R, P]) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	store, _ := scope(c)
	if err := h.svc.Delete(c.Request.Context(), store, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// unique answers GET /unique?code= with {"exists": bool}
func (h *BaseHandler) unique(c *gin.Context, svc CodeChecker) {
	code := c.Query("code")
	if code == "" {
		h.BadRequest(c, "Query parameter code is required")
		return
	}
	store, _ := scope(c)
	exists, err := svc.Exists(c.Request.Context(), store, code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.UniqueResponse{Exists: exists})
}

// list answers an unfiltered paged listing
func list[R any](h *BaseHandler, c *gin.Context, svc ListService[R]) {
	q, ok := h.pageQuery(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := svc.List(c.Request.Context(), store, lang, q.Page, q.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}
