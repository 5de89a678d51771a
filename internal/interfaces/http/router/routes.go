package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/infrastructure/auth"
	"github.com/shopizer/backend/internal/interfaces/http/handler"
	"github.com/shopizer/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers of the shop API
type Handlers struct {
	System       *handler.SystemHandler
	Reference    *handler.ReferenceHandler
	Store        *handler.StoreHandler
	Manufacturer *handler.ManufacturerHandler
	Product      *handler.ProductHandler
	Content      *handler.ContentHandler
	Customer     *handler.CustomerHandler
	Option       *handler.OptionHandler
	OptionValue  *handler.OptionValueHandler
	TaxClass     *handler.TaxClassHandler
	TaxRate      *handler.TaxRateHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
}

// Dependencies are the collaborators of the request pipeline
type Dependencies struct {
	Stores       middleware.StoreResolver
	Languages    middleware.LanguageResolver
	JWT          *auth.JWTService
	Revocations  middleware.RevocationChecker
	LoginLimiter *middleware.RateLimiter
	Logger       *zap.Logger
}

// ShopRoutes builds the storefront, administration and system route groups.
// Every storefront and administration request resolves ?store= and ?lang=.
// Administration routes need an admin-realm token for the resolved store
// and one of the authorities listed per group.
func ShopRoutes(h Handlers, deps Dependencies) []*Section {
	storeContext := middleware.StoreContext(deps.Stores, deps.Languages)
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if deps.LoginLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimit(deps.LoginLimiter), h}
	}

	public := NewSection("storefront", "", storeContext)
	public.GET("/languages", h.Reference.Languages).
		GET("/countries", h.Reference.Countries).
		GET("/zones", h.Reference.Zones).
		GET("/currency", h.Reference.Currencies).
		GET("/store/:code", h.Store.Get).
		GET("/manufacturers", h.Manufacturer.List).
		GET("/manufacturers/:id", h.Manufacturer.Get).
		GET("/products", h.Product.List).
		GET("/products/:id", h.Product.Get).
		GET("/content/pages", h.Content.Pages).
		GET("/content/:code", h.Content.GetByCode).
		POST("/customer/login", limited(h.Auth.CustomerLogin)...).
		POST("/auth/refresh", h.Auth.Refresh)

	private := NewSection("administration", "/private", storeContext)
	private.POST("/login", limited(h.Auth.AdminLogin)...)

	authenticated := []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			JWTService:  deps.JWT,
			Revocations: deps.Revocations,
			Realm:       auth.RealmAdmin,
			Logger:      deps.Logger,
		}),
		middleware.RequireStoreAccess(),
	}
	secured := func(name, prefix string, authorities ...string) *Section {
		chain := authenticated
		if len(authorities) > 0 {
			chain = append(chain[:len(chain):len(chain)], middleware.RequireAnyAuthority(authorities...))
		}
		return private.Nest(name, prefix, chain...)
	}

	secured("session", "").
		GET("/profile", h.Auth.Profile).
		POST("/logout", h.Auth.Logout)

	secured("catalog", "", middleware.AuthorityAdmin, middleware.AuthorityAdminCatalog).
		GET("/manufacturers/unique", h.Manufacturer.Unique).
		POST("/manufacturers", h.Manufacturer.Create).
		PUT("/manufacturers/:id", h.Manufacturer.Update).
		DELETE("/manufacturers/:id", h.Manufacturer.Delete).
		GET("/products/unique", h.Product.Unique).
		POST("/products", h.Product.Create).
		PUT("/products/:id", h.Product.Update).
		DELETE("/products/:id", h.Product.Delete)

	secured("customers", "/customers", middleware.AuthorityAdmin, middleware.AuthorityAdminStore).
		GET("", h.Customer.List).
		POST("", h.Customer.Create).
		GET("/:id", h.Customer.Get).
		PUT("/:id", h.Customer.Update).
		DELETE("/:id", h.Customer.Delete).
		GET("/options", h.Option.List).
		POST("/options", h.Option.Create).
		GET("/options/unique", h.Option.Unique).
		GET("/options/:id", h.Option.Get).
		PUT("/options/:id", h.Option.Update).
		DELETE("/options/:id", h.Option.Delete).
		GET("/options/values", h.OptionValue.List).
		POST("/options/values", h.OptionValue.Create).
		GET("/options/values/unique", h.OptionValue.Unique).
		GET("/options/values/:id", h.OptionValue.Get).
		PUT("/options/values/:id", h.OptionValue.Update).
		DELETE("/options/values/:id", h.OptionValue.Delete)

	secured("tax", "/tax", middleware.AuthorityAdmin, middleware.AuthorityAdminStore).
		GET("/classes", h.TaxClass.List).
		POST("/classes", h.TaxClass.Create).
		GET("/classes/unique", h.TaxClass.Unique).
		GET("/classes/:id", h.TaxClass.Get).
		PUT("/classes/:id", h.TaxClass.Update).
		DELETE("/classes/:id", h.TaxClass.Delete).
		GET("/rates", h.TaxRate.List).
		POST("/rates", h.TaxRate.Create).
		GET("/rates/unique", h.TaxRate.Unique).
		GET("/rates/:id", h.TaxRate.Get).
		PUT("/rates/:id", h.TaxRate.Update).
		DELETE("/rates/:id", h.TaxRate.Delete)

	secured("store", "/store", middleware.AuthorityAdmin, middleware.AuthorityAdminStore).
		GET("/configurations", h.Store.Configurations).
		PUT("/configurations", h.Store.SaveConfiguration).
		GET("/configurations/:key", h.Store.Configuration).
		DELETE("/configurations/:key", h.Store.DeleteConfiguration)

	secured("content", "/content", middleware.AuthorityAdmin, middleware.AuthorityAdminContent).
		GET("", h.Content.List).
		POST("", h.Content.Create).
		GET("/unique", h.Content.Unique).
		GET("/files", h.Content.Files).
		POST("/files", h.Content.Upload).
		DELETE("/files/:name", h.Content.DeleteFile).
		GET("/:id", h.Content.Get).
		PUT("/:id", h.Content.Update).
		DELETE("/:id", h.Content.Delete)

	secured("users", "/users", middleware.AuthorityAdmin).
		GET("", h.User.List).
		POST("", h.User.Create).
		GET("/:id", h.User.Get)

	system := NewSection("system", "/system")
	system.GET("/info", h.System.Info)

	return []*Section{public, private, system}
}
