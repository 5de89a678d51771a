package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
)

// Authorities granted through the seeded permission groups
const (
	AuthoritySuperAdmin   = identity.RolePrefix + identity.GroupSuperAdmin
	AuthorityAdmin        = identity.RolePrefix + identity.GroupAdmin
	AuthorityAdminCatalog = identity.RolePrefix + identity.GroupAdminCatalog
	AuthorityAdminStore   = identity.RolePrefix + identity.GroupAdminStore
	AuthorityAdminOrder   = identity.RolePrefix + identity.GroupAdminOrder
	AuthorityAdminContent = identity.RolePrefix + identity.GroupAdminContent
	AuthorityCustomer     = identity.RolePrefix + identity.GroupCustomer
)

// RequireAnyAuthority lets the request through when the authenticated
// principal holds at least one of authorities. ROLE_SUPERADMIN passes every
// check.
func RequireAnyAuthority(authorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		if claims.HasAuthority(AuthoritySuperAdmin) || claims.HasAnyAuthority(authorities...) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.ErrCodeForbidden,
			"User "+claims.Username+" lacks the authority required for this operation",
			GetRequestID(c),
		))
	}
}

// HasAuthority reports whether the authenticated principal holds authority
func HasAuthority(c *gin.Context, authority string) bool {
	claims := GetJWTClaims(c)
	return claims != nil && claims.HasAuthority(authority)
}

// RequireStoreAccess rejects principals acting on a store other than their
// own. ROLE_SUPERADMIN may act on any store. Must run after StoreContext and
// JWTAuthMiddleware.
func RequireStoreAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		store := GetStore(c)
		if claims == nil || store == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		if claims.HasAuthority(AuthoritySuperAdmin) || claims.StoreCode == store.Code {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrCodeUnauthorized,
			"User "+claims.Username+" cannot access store "+store.Code,
			GetRequestID(c),
		))
	}
}
