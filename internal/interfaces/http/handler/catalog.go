package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopizer/backend/internal/application/catalog"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ManufacturerService is the manufacturer surface used by ManufacturerHandler
type ManufacturerService interface {
	ResourceService[catalogapp.ReadableManufacturer, catalogapp.PersistableManufacturer]
	CodeChecker
	List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria catalogapp.ManufacturerListCriteria, page, count int) (*shared.Paginated[catalogapp.ReadableManufacturer], error)
}

// ManufacturerHandler handles manufacturer endpoints
type ManufacturerHandler struct {
	resource[catalogapp.ReadableManufacturer, catalogapp.PersistableManufacturer]
	manufacturers ManufacturerService
}

// NewManufacturerHandler creates a new ManufacturerHandler
func NewManufacturerHandler(manufacturers ManufacturerService) *ManufacturerHandler {
	h := &ManufacturerHandler{manufacturers: manufacturers}
	h.svc = manufacturers
	return h
}

// List godoc
// @Summary      List manufacturers
// @Description  Retrieve a page of the store manufacturers, filtered by name or code
// @Tags         manufacturers
// @Produce      json
// @Param        name query string false "Name filter"
// @Param        code query string false "Code filter"
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[catalogapp.ReadableManufacturer]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /manufacturers [get]
func (h *ManufacturerHandler) List(c *gin.Context) {
	var criteria catalogapp.ManufacturerListCriteria
	if !h.bindQuery(c, &criteria) {
		return
	}
	q, ok := h.pageQuery(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.manufacturers.List(c.Request.Context(), store, lang, criteria, q.Page, q.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Unique godoc
// @Summary      Check manufacturer code
// @Description  Report whether the store already uses a manufacturer code
// @Tags         manufacturers
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
// @Router       /private/manufacturers/unique [get]
func (h *ManufacturerHandler) Unique(c *gin.Context) {
	h.unique(c, h.manufacturers)
}

// ProductService is the product surface used by ProductHandler
type ProductService interface {
	ResourceService[catalogapp.ReadableProduct, catalogapp.PersistableProduct]
	CodeChecker
	List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria catalogapp.ProductListCriteria, page, count int) (*shared.Paginated[catalogapp.ReadableProduct], error)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	resource[catalogapp.ReadableProduct, catalogapp.PersistableProduct]
	products ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductService) *ProductHandler {
	h := &ProductHandler{products: products}
	h.svc = products
	return h
}

// List godoc
// @Summary      List products
// @Description  Retrieve a page of the store products, filtered by name, SKU, manufacturer or availability
// @Tags         products
// @Produce      json
// @Param        name query string false "Name filter"
// @Param        sku query string false "SKU filter"
// @Param        manufacturer query string false "Manufacturer code"
// @Param        available query boolean false "Availability filter"
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[catalogapp.ReadableProduct]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var criteria catalogapp.ProductListCriteria
	if !h.bindQuery(c, &criteria) {
		return
	}
	q, ok := h.pageQuery(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.products.List(c.Request.Context(), store, lang, criteria, q.Page, q.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Unique godoc
// @Summary      Check product SKU code
// @Description  Report whether the store already uses a product SKU code
// @Tags         products
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
// @Router       /private/products/unique [get]
func (h *ProductHandler) Unique(c *gin.Context) {
	h.unique(c, h.products)
}


// Get godoc
// @Summary      Get manufacturer by ID
// @Description  Retrieve a manufacturer of the store by its ID
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} catalogapp.ReadableManufacturer
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /manufacturers/{id} [get]
func (h *ManufacturerHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a manufacturer
// @Description  Create a manufacturer in the store. Descriptions are upserted by language.
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.PersistableManufacturer true "Manufacturer payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} catalogapp.ReadableManufacturer
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/manufacturers [post]
func (h *ManufacturerHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a manufacturer
// @Description  Update a manufacturer of the store. Omitted fields keep their stored value.
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        request body catalogapp.PersistableManufacturer true "Manufacturer payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} catalogapp.ReadableManufacturer
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/manufacturers/{id} [put]
func (h *ManufacturerHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a manufacturer
// @Description  Delete a manufacturer of the store
// @Tags         manufacturers
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/manufacturers/{id} [delete]
func (h *ManufacturerHandler) Delete(c *gin.Context) { h.resource.Delete(c) }


// Get godoc
// @Summary      Get product by ID
// @Description  Retrieve a product of the store by its ID
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} catalogapp.ReadableProduct
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a product
// @Description  Create a product in the store. Descriptions are upserted by language.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.PersistableProduct true "Product payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} catalogapp.ReadableProduct
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/products [post]
func (h *ProductHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a product
// @Description  Update a product of the store. Omitted fields keep their stored value.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.PersistableProduct true "Product payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} catalogapp.ReadableProduct
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a product
// @Description  Delete a product of the store
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) { h.resource.Delete(c) }
