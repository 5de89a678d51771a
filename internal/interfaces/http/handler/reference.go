package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	referenceapp "github.com/shopizer/backend/internal/application/reference"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
)

// ReferenceService serves languages, countries, zones and currencies
type ReferenceService interface {
	Languages(ctx context.Context, store *merchant.Store, lang *reference.Language) ([]referenceapp.ReadableLanguage, error)
	Countries(ctx context.Context, store *merchant.Store, lang *reference.Language) ([]referenceapp.ReadableCountry, error)
	Zones(ctx context.Context, store *merchant.Store, lang *reference.Language, isoCode string) ([]referenceapp.ReadableZone, error)
	Currencies(ctx context.Context) ([]referenceapp.ReadableCurrency, error)
}

// ReferenceHandler handles reference data endpoints
type ReferenceHandler struct {
	BaseHandler
	reference ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(reference ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

// Languages godoc
// @Summary      List languages
// @Description  List the languages supported by the store
// @Tags         reference
// @Produce      json
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {array} referenceapp.ReadableLanguage
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /languages [get]
func (h *ReferenceHandler) Languages(c *gin.Context) {
	store, lang := scope(c)
	out, err := h.reference.Languages(c.Request.Context(), store, lang)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Countries godoc
// @Summary      List countries
// @Description  List countries with names in the request language
// @Tags         reference
// @Produce      json
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {array} referenceapp.ReadableCountry
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /countries [get]
func (h *ReferenceHandler) Countries(c *gin.Context) {
	store, lang := scope(c)
	out, err := h.reference.Countries(c.Request.Context(), store, lang)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Zones godoc
// @Summary      List zones
// @Description  List the zones of a country
// @Tags         reference
// @Produce      json
// @Param        code query string true "Country ISO code"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {array} referenceapp.ReadableZone
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /zones [get]
func (h *ReferenceHandler) Zones(c *gin.Context) {
	store, lang := scope(c)
	out, err := h.reference.Zones(c.Request.Context(), store, lang, c.Query("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// Currencies godoc
// @Summary      List currencies
// @Description  List the supported currencies
// @Tags         reference
// @Produce      json
// @Success      200 {array} referenceapp.ReadableCurrency
// @Failure      500 {object} dto.ErrorResponse
// @Router       /currency [get]
func (h *ReferenceHandler) Currencies(c *gin.Context) {
	out, err := h.reference.Currencies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}
