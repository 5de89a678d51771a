package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/interfaces/http/middleware"
)

// AuthService authenticates administrators and customers
type AuthService interface {
	AdminLogin(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	CustomerLogin(ctx context.Context, store *merchant.Store, input identity.LoginInput) (*identity.LoginResult, error)
	Refresh(ctx context.Context, input identity.RefreshTokenInput) (*identity.LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Profile(ctx context.Context, claims *auth.Claims) (*identity.Principal, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	auth AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// ProfileResponse describes the authenticated principal
type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	Store       string    `json:"store"`
	Active      bool      `json:"active"`
	Authorities []string  `json:"authorities"`
}

// AdminLogin godoc
// @Summary      Administrator login
// @Description  Authenticate an administration user and issue an admin-realm token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Credentials"
// @Success      200 {object} identity.LoginResult
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /private/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req identity.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.auth.AdminLogin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// CustomerLogin godoc
// @Summary      Customer login
// @Description  Authenticate a customer of the store and issue a customer-realm token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Credentials"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} identity.LoginResult
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /customer/login [post]
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	var req identity.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}
	store, _ := scope(c)
	result, err := h.auth.CustomerLogin(c.Request.Context(), store, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshTokenInput true "Refresh token"
// @Success      200 {object} identity.LoginResult
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshTokenInput
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the access token of the request
// @Tags         auth
// @Produce      json
// @Success      204 "No Content"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetJWTClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Profile godoc
// @Summary      Current user profile
// @Description  Describe the authenticated administration user
// @Tags         auth
// @Produce      json
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	principal, err := h.auth.Profile(c.Request.Context(), middleware.GetJWTClaims(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, ProfileResponse{
		ID:          principal.ID,
		UserName:    principal.Username,
		Store:       principal.StoreCode,
		Active:      principal.Active,
		Authorities: principal.Authorities,
	})
}
