package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/infrastructure/logger"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
)

// Store context keys
const (
	StoreKey      = "merchant_store"
	StoreCodeKey  = "store_code"
	LanguageKey   = "language"
	StoreParam    = "store"
	LanguageParam = "lang"
)

// StoreResolver loads a store by code. An empty code is the default store.
type StoreResolver interface {
	ResolveStore(ctx context.Context, code string) (*merchant.Store, error)
}

// LanguageResolver loads a supported language by code
type LanguageResolver interface {
	ResolveLanguage(ctx context.Context, code string) (*reference.Language, error)
}

// StoreContext resolves the merchant store (?store=, default DEFAULT) and the
// request language (?lang=, default the store's language) once per request.
// An unknown store answers 404 and an unknown language 400.
func StoreContext(stores StoreResolver, languages LanguageResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		store, err := stores.ResolveStore(ctx, c.Query(StoreParam))
		if err != nil {
			status, body := dto.FromError(err, GetRequestID(c))
			c.AbortWithStatusJSON(status, body)
			return
		}

		lang := store.DefaultLanguage
		if code := c.Query(LanguageParam); code != "" {
			lang, err = languages.ResolveLanguage(ctx, code)
			if err != nil {
				status, body := dto.FromError(err, GetRequestID(c))
				c.AbortWithStatusJSON(status, body)
				return
			}
		}

		c.Set(StoreKey, store)
		c.Set(StoreCodeKey, store.Code)
		c.Set(LanguageKey, lang)
		c.Request = c.Request.WithContext(logger.WithStoreCode(ctx, store.Code))
		c.Next()
	}
}

// GetStore returns the store resolved by StoreContext
func GetStore(c *gin.Context) *merchant.Store {
	if v, ok := c.Get(StoreKey); ok {
		if store, ok := v.(*merchant.Store); ok {
			return store
		}
	}
	return nil
}

// GetLanguage returns the language resolved by StoreContext
func GetLanguage(c *gin.Context) *reference.Language {
	if v, ok := c.Get(LanguageKey); ok {
		if lang, ok := v.(*reference.Language); ok {
			return lang
		}
	}
	return nil
}
