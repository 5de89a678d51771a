package handler

import (
	"github.com/gin-gonic/gin"
	taxapp "github.com/shopizer/backend/internal/application/tax"
)

// TaxClassService is the tax class surface
type TaxClassService interface {
	ResourceService[taxapp.ReadableTaxClass, taxapp.PersistableTaxClass]
	ListService[taxapp.ReadableTaxClass]
	CodeChecker
}

// TaxRateService is the tax rate surface
type TaxRateService interface {
	ResourceService[taxapp.ReadableTaxRate, taxapp.PersistableTaxRate]
	ListService[taxapp.ReadableTaxRate]
	CodeChecker
}

// TaxClassHandler handles tax class endpoints
type TaxClassHandler struct {
	resource[taxapp.ReadableTaxClass, taxapp.PersistableTaxClass]
	classes TaxClassService
}

// NewTaxClassHandler creates a new TaxClassHandler
func NewTaxClassHandler(classes TaxClassService) *TaxClassHandler {
	h := &TaxClassHandler{classes: classes}
	h.svc = classes
	return h
}

// List godoc
// @Summary      List tax classes
// @Description  Retrieve a page of the store tax classes
// @Tags         tax
// @Produce      json
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[taxapp.ReadableTaxClass]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/classes [get]
func (h *TaxClassHandler) List(c *gin.Context) { list(&h.BaseHandler, c, h.classes) }

// Unique godoc
// @Summary      Check tax class code
// @Description  Report whether the store already uses a tax class code
// @Tags         tax
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
// @Router       /private/tax/classes/unique [get]
func (h *TaxClassHandler) Unique(c *gin.Context) { h.unique(c, h.classes) }

// TaxRateHandler handles tax rate endpoints
type TaxRateHandler struct {
	resource[taxapp.ReadableTaxRate, taxapp.PersistableTaxRate]
	rates TaxRateService
}

// NewTaxRateHandler creates a new TaxRateHandler
func NewTaxRateHandler(rates TaxRateService) *TaxRateHandler {
	h := &TaxRateHandler{rates: rates}
	h.svc = rates
	return h
}

// List godoc
// @Summary      List tax rates
// @Description  Retrieve a page of the store tax rates
// @Tags         tax
// @Produce      json
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[taxapp.ReadableTaxRate]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/rates [get]
func (h *TaxRateHandler) List(c *gin.Context) { list(&h.BaseHandler, c, h.rates) }

// Unique godoc
// @Summary      Check tax rate code
// @Description  Report whether the store already uses a tax rate code
// @Tags         tax
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
// @Router       /private/tax/rates/unique [get]
func (h *TaxRateHandler) Unique(c *gin.Context) { h.unique(c, h.rates) }


// Get godoc
// @Summary      Get tax class by ID
// @Description  Retrieve a tax class of the store by its ID
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax class ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} taxapp.ReadableTaxClass
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/classes/{id} [get]
func (h *TaxClassHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a tax class
// @Description  Create a tax class in the store. Descriptions are upserted by language.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request body taxapp.PersistableTaxClass true "Tax class payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} taxapp.ReadableTaxClass
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/classes [post]
func (h *TaxClassHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a tax class
// @Description  Update a tax class of the store. Omitted fields keep their stored value.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax class ID" format(uuid)
// @Param        request body taxapp.PersistableTaxClass true "Tax class payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} taxapp.ReadableTaxClass
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/classes/{id} [put]
func (h *TaxClassHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a tax class
// @Description  Delete a tax class of the store
// @Tags         tax
// @Produce      json
// @Param        id path string true "Tax class ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/classes/{id} [delete]
func (h *TaxClassHandler) Delete(c *gin.Context) { h.resource.Delete(c) }


// Get godoc
// @Summary      Get tax rate by ID
// @Description  Retrieve a tax rate of the store by its ID
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax rate ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} taxapp.ReadableTaxRate
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/rates/{id} [get]
func (h *TaxRateHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a tax rate
// @Description  Create a tax rate in the store. Descriptions are upserted by language.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request body taxapp.PersistableTaxRate true "Tax rate payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} taxapp.ReadableTaxRate
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/rates [post]
func (h *TaxRateHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a tax rate
// @Description  Update a tax rate of the store. Omitted fields keep their stored value.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax rate ID" format(uuid)
// @Param        request body taxapp.PersistableTaxRate true "Tax rate payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} taxapp.ReadableTaxRate
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/rates/{id} [put]
func (h *TaxRateHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a tax rate
// @Description  Delete a tax rate of the store
// @Tags         tax
// @Produce      json
// @Param        id path string true "Tax rate ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/tax/rates/{id} [delete]
func (h *TaxRateHandler) Delete(c *gin.Context) { h.resource.Delete(c) }
