// Package pricing formats monetary amounts for a store's currency and language.
package pricing

import (
	"fmt"

	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as "<ISO code> <localized number>", rounded to
// the currency's standard number of decimals
type Formatter struct {
	fallback language.Tag
}

// NewFormatter creates a formatter that uses fallback for stores without a
// default language
func NewFormatter(fallback language.Tag) *Formatter {
	return &Formatter{fallback: fallback}
}

// Format formats amount in the currency of store
func (f *Formatter) Format(amount decimal.Decimal, store *merchant.Store) (string, error) {
	if store == nil {
		return "", fmt.Errorf("format price: store is required")
	}
	unit, err := currency.ParseISO(store.CurrencyCode)
	if err != nil {
		return "", fmt.Errorf("format price: store %s has invalid currency %q: %w", store.Code, store.CurrencyCode, err)
	}
	scale, _ := currency.Standard.Rounding(unit)

	tag := f.fallback
	if store.DefaultLanguage != nil {
		if t := store.DefaultLanguage.Tag(); t != language.Und {
			tag = t
		}
	}

	rounded := amount.Round(int32(scale))
	p := message.NewPrinter(tag)
	return fmt.Sprintf("%s %s", unit, p.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(scale)))), nil
}

// Round rounds amount to the standard number of decimals of currencyCode
func Round(amount decimal.Decimal, currencyCode string) (decimal.Decimal, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return amount.Round(int32(scale)), nil
}
