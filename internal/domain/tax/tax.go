package tax

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultTaxClassCode is the tax class assigned to products without one
const DefaultTaxClassCode = "DEFAULT"

// TaxClass groups products that are taxed the same way
type TaxClass struct {
	shared.StoreEntity
	Code  string
	Title string
}

// NewTaxClass creates a tax class owned by storeID
func NewTaxClass(storeID uuid.UUID, code, title string) (*TaxClass, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_TAX_CLASS", "Tax class code cannot be empty")
	}
	return &TaxClass{
		StoreEntity: shared.NewStoreEntity(storeID),
		Code:        code,
		Title:       title,
	}, nil
}

// TaxRate is a rate applied to a tax class in a country and optionally a zone
type TaxRate struct {
	shared.StoreEntity
	Code         string
	Rate         decimal.Decimal
	Priority     int
	Compound     bool
	TaxClassID   *uuid.UUID
	TaxClass     *TaxClass
	CountryID    *uuid.UUID
	CountryCode  string
	ZoneID       *uuid.UUID
	ZoneCode     string
	ParentID     *uuid.UUID
	Descriptions shared.DescriptionSet
}

// NewTaxRate creates an empty tax rate owned by storeID
func NewTaxRate(storeID uuid.UUID) *TaxRate {
	return &TaxRate{
		StoreEntity: shared.NewStoreEntity(storeID),
		Rate:        decimal.Zero,
	}
}

// SetRate sets the percentage rate
func (r *TaxRate) SetRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewValidationError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("INVALID_TAX_RATE", "Tax rate cannot exceed 100")
	}
	r.Rate = rate
	return nil
}

// Apply returns the tax due on amount
func (r *TaxRate) Apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate).Div(decimal.NewFromInt(100))
}
