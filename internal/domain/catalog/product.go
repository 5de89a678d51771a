package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item of a store catalog
type Product struct {
	shared.StoreEntity
	Sku            string
	Price          decimal.Decimal
	Quantity       int
	Available      bool
	Shippable      bool
	Virtual        bool
	SortOrder      int
	Weight         decimal.Decimal
	DateAvailable  *time.Time
	ManufacturerID *uuid.UUID
	Manufacturer   *Manufacturer
	TaxClassID     *uuid.UUID
	TaxClassCode   string
	Descriptions   shared.DescriptionSet
}

// NewProduct creates a product owned by storeID
func NewProduct(storeID uuid.UUID, sku string) (*Product, error) {
	if err := validateCode("product", sku); err != nil {
		return nil, err
	}
	return &Product{
		StoreEntity: shared.NewStoreEntity(storeID),
		Sku:         strings.TrimSpace(sku),
		Price:       decimal.Zero,
		Weight:      decimal.Zero,
		Available:   true,
		Shippable:   true,
	}, nil
}

// SetPrice sets the product price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetQuantity sets the available quantity
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	p.Quantity = quantity
	p.Touch()
	return nil
}

// AttachManufacturer links the product to m, which must belong to the same store
func (p *Product) AttachManufacturer(m *Manufacturer) error {
	if m == nil {
		p.ManufacturerID = nil
		p.Manufacturer = nil
		return nil
	}
	if !m.BelongsTo(p.StoreID) {
		return shared.NewValidationError("INVALID_MANUFACTURER", "Manufacturer "+m.Code+" does not belong to the product store")
	}
	id := m.ID
	p.ManufacturerID = &id
	p.Manufacturer = m
	p.Touch()
	return nil
}

// SetTaxClass links the product to a tax class
func (p *Product) SetTaxClass(id uuid.UUID, code string) {
	p.TaxClassID = &id
	p.TaxClassCode = code
	p.Touch()
}

// IsPurchasable reports whether the product can be ordered at t
func (p *Product) IsPurchasable(t time.Time) bool {
	if !p.Available || p.Quantity <= 0 {
		return false
	}
	return p.DateAvailable == nil || !p.DateAvailable.After(t)
}
