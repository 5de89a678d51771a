// Package mapper holds the contracts shared by the entity/DTO converters of
// every bounded context, plus the helpers they are built from.
package mapper

import (
	"context"

	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ReadableConverter projects an entity into its API representation for a
// store and language.
type ReadableConverter[E any, R any] interface {
	// Convert builds a new readable from source
	Convert(ctx context.Context, source *E, store *merchant.Store, lang *reference.Language) (*R, error)
	// Merge fills target from source and returns it
	Merge(ctx context.Context, source *E, target *R, store *merchant.Store, lang *reference.Language) (*R, error)
}

// PersistableMerger applies an incoming payload onto an entity
type PersistableMerger[P any, E any] interface {
	Merge(ctx context.Context, source *P, target *E, store *merchant.Store, lang *reference.Language) (*E, error)
}

// RequireScope checks the store and language every conversion runs under
func RequireScope(store *merchant.Store, lang *reference.Language) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if lang == nil {
		return shared.NewInvalidArgumentError("Language cannot be null")
	}
	return nil
}

// RequireSource checks that the object being converted is present
func RequireSource[T any](source *T, what string) error {
	if source == nil {
		return shared.NewInvalidArgumentError(what + " cannot be null")
	}
	return nil
}

// RequireTarget checks that the object being merged into is present
func RequireTarget[T any](target *T, what string) error {
	if target == nil {
		return shared.NewInvalidArgumentError(what + " target cannot be null")
	}
	return nil
}

// Patch copies a payload field onto dst when the payload carried it. Absent
// fields leave the stored value alone.
func Patch[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ConvertAll converts items one by one, keeping their order. The first
// failure aborts the conversion.
func ConvertAll[E any, R any](ctx context.Context, c ReadableConverter[E, R], items []E, store *merchant.Store, lang *reference.Language) ([]R, error) {
	out := make([]R, 0, len(items))
	for i := range items {
		r, err := c.Convert(ctx, &items[i], store, lang)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// Options configures a converter
type Options struct {
	LocalePolicy shared.LocalePolicy
}

// Option customizes Options
type Option func(*Options)

// WithLocalePolicy selects how a converter falls back when the requested
// language has no description
func WithLocalePolicy(policy shared.LocalePolicy) Option {
	return func(o *Options) {
		o.LocalePolicy = policy
	}
}

// NewOptions applies opts over the given default policy
func NewOptions(defaultPolicy shared.LocalePolicy, opts ...Option) Options {
	o := Options{LocalePolicy: defaultPolicy}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
