package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopspring/decimal"
)

// ReadableManufacturer represents a manufacturer in API responses
type ReadableManufacturer struct {
	ID          uuid.UUID                  `json:"id"`
	Code        string                     `json:"code"`
	Order       int                        `json:"order"`
	Image       string                     `json:"image,omitempty"`
	Description mapper.ReadableDescription `json:"description"`
}

// PersistableManufacturer creates or updates a manufacturer. Omitted order
// and image keep their stored values.
type PersistableManufacturer struct {
	Code         string                          `json:"code" binding:"required,max=100,code"`
	Order        *int                            `json:"order"`
	Image        *string                         `json:"image" binding:"omitempty,max=255"`
	Descriptions []mapper.PersistableDescription `json:"descriptions" binding:"dive"`
}

// ManufacturerListCriteria filters manufacturer listings
type ManufacturerListCriteria struct {
	Name string `form:"name"`
	Code string `form:"code"`
}

// ReadableProduct represents a product in API responses
type ReadableProduct struct {
	ID             uuid.UUID                  `json:"id"`
	Sku            string                     `json:"sku"`
	Price          decimal.Decimal            `json:"price"`
	FinalPrice     string                     `json:"final_price"`
	Quantity       int                        `json:"quantity"`
	Available      bool                       `json:"available"`
	Shippable      bool                       `json:"shippable"`
	Virtual        bool                       `json:"virtual"`
	SortOrder      int                        `json:"sort_order"`
	Weight         decimal.Decimal            `json:"weight"`
	DateAvailable  *time.Time                 `json:"date_available,omitempty"`
	CanBePurchased bool                       `json:"can_be_purchased"`
	Manufacturer   *ReadableManufacturer      `json:"manufacturer,omitempty"`
	TaxClass       string                     `json:"tax_class,omitempty"`
	Description    mapper.ReadableDescription `json:"description"`
}

// PersistableProduct creates or updates a product. Omitted fields keep their
// stored values, and empty manufacturer and tax class codes leave the current
// links in place.
type PersistableProduct struct {
	Sku           string                          `json:"sku" binding:"required,min=1,max=100"`
	Price         *decimal.Decimal                `json:"price"`
	Quantity      *int                            `json:"quantity" binding:"omitempty,gte=0"`
	Available     *bool                           `json:"available"`
	Shippable     *bool                           `json:"shippable"`
	Virtual       *bool                           `json:"virtual"`
	SortOrder     *int                            `json:"sort_order"`
	Weight        *decimal.Decimal                `json:"weight"`
	DateAvailable *time.Time                      `json:"date_available"`
	Manufacturer  string                          `json:"manufacturer" binding:"max=100"`
	TaxClass      string                          `json:"tax_class" binding:"max=100"`
	Descriptions  []mapper.PersistableDescription `json:"descriptions" binding:"dive"`
}

// ProductListCriteria filters product listings
type ProductListCriteria struct {
	Name          string `form:"name"`
	Sku           string `form:"sku"`
	Manufacturer  string `form:"manufacturer"` // manufacturer code
	AvailableOnly bool   `form:"available"`
}
