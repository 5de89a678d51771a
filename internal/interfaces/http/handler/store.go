package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	merchantapp "github.com/shopizer/backend/internal/application/merchant"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
)

// StoreService serves stores and their configuration
type StoreService interface {
	Get(ctx context.Context, code string, lang *reference.Language) (*merchantapp.ReadableStore, error)
	Configurations(ctx context.Context, store *merchant.Store) ([]merchantapp.ReadableConfiguration, error)
	Configuration(ctx context.Context, store *merchant.Store, key string) (*merchantapp.ReadableConfiguration, error)
	SaveConfiguration(ctx context.Context, store *merchant.Store, req merchantapp.PersistableConfiguration) (*merchantapp.ReadableConfiguration, error)
	DeleteConfiguration(ctx context.Context, store *merchant.Store, key string) error
}

// StoreHandler handles merchant store endpoints
type StoreHandler struct {
	BaseHandler
	stores StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(stores StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// Get godoc
// @Summary      Get store
// @Description  Retrieve a merchant store by its code
// @Tags         store
// @Produce      json
// @Param        code path string true "Store code"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} merchantapp.ReadableStore
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /store/{code} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	_, lang := scope(c)
	out, err := h.stores.Get(c.Request.Context(), c.Param("code"), lang)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Configurations godoc
// @Summary      List store configurations
// @Description  List the configuration entries of the store
// @Tags         store
// @Produce      json
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {array} merchantapp.ReadableConfiguration
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/store/configurations [get]
func (h *StoreHandler) Configurations(c *gin.Context) {
	store, _ := scope(c)
	out, err := h.stores.Configurations(c.Request.Context(), store)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Configuration godoc
// @Summary      Get store configuration
// @Description  Retrieve one configuration entry of the store
// @Tags         store
// @Produce      json
// @Param        key path string true "Configuration key"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} merchantapp.ReadableConfiguration
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/store/configurations/{key} [get]
func (h *StoreHandler) Configuration(c *gin.Context) {
	store, _ := scope(c)
	out, err := h.stores.Configuration(c.Request.Context(), store, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// SaveConfiguration godoc
// @Summary      Save store configuration
// @Description  Create or replace a configuration entry of the store
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        request body merchantapp.PersistableConfiguration true "Configuration entry"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} merchantapp.ReadableConfiguration
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/store/configurations [put]
func (h *StoreHandler) SaveConfiguration(c *gin.Context) {
	var req merchantapp.PersistableConfiguration
	if !h.bindJSON(c, &req) {
		return
	}
	store, _ := scope(c)
	out, err := h.stores.SaveConfiguration(c.Request.Context(), store, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// DeleteConfiguration godoc
// @Summary      Delete store configuration
// @Description  Delete a configuration entry of the store
// @Tags         store
// @Produce      json
// @Param        key path string true "Configuration key"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/store/configurations/{key} [delete]
func (h *StoreHandler) DeleteConfiguration(c *gin.Context) {
	store, _ := scope(c)
	if err := h.stores.DeleteConfiguration(c.Request.Context(), store, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
