package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
)

// UserService manages administration users
type UserService interface {
	ListService[identity.ReadableUser]
	Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*identity.ReadableUser, error)
	Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req identity.PersistableUser) (*identity.ReadableUser, error)
}

// UserHandler handles administration user endpoints
type UserHandler struct {
	BaseHandler
	users UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary      List users
// @Description  Retrieve a page of the administration users of the store
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[identity.ReadableUser]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/users [get]
func (h *UserHandler) List(c *gin.Context) { list(&h.BaseHandler, c, h.users) }

// Get godoc
// @Summary      Get user by ID
// @Description  Retrieve an administration user of the store by its ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} identity.ReadableUser
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.users.Get(c.Request.Context(), store, lang, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Create godoc
// @Summary      Create a user
// @Description  Create an administration user of the store
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identity.PersistableUser true "User payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} identity.ReadableUser
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identity.PersistableUser
	if !h.bindJSON(c, &req) {
		return
	}
	store, lang := scope(c)
	out, err := h.users.Create(c.Request.Context(), store, lang, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}
