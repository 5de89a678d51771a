package tax

import (
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopspring/decimal"
)

// ReadableTaxClass represents a tax class in API responses
type ReadableTaxClass struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code"`
	Name  string    `json:"name"`
	Store string    `json:"store"`
}

// PersistableTaxClass creates or updates a tax class. An omitted name keeps
// the current one.
type PersistableTaxClass struct {
	Code string  `json:"code" binding:"required,max=100,code"`
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// ReadableTaxRate represents a tax rate in API responses
type ReadableTaxRate struct {
	ID           uuid.UUID                    `json:"id"`
	Code         string                       `json:"code"`
	Rate         decimal.Decimal              `json:"rate"`
	Priority     int                          `json:"priority"`
	Compound     bool                         `json:"compound"`
	TaxClass     string                       `json:"tax_class,omitempty"`
	Country      string                       `json:"country,omitempty"`
	Zone         string                       `json:"zone,omitempty"`
	Store        string                       `json:"store"`
	Description  mapper.ReadableDescription   `json:"description"`
	Descriptions []mapper.ReadableDescription `json:"descriptions,omitempty"`
}

// PersistableTaxRate creates or updates a tax rate. Omitted fields keep their
// stored values.
type PersistableTaxRate struct {
	Code         string                          `json:"code" binding:"required,max=100,code"`
	Rate         *decimal.Decimal                `json:"rate"`
	Priority     *int                            `json:"priority" binding:"omitempty,gte=0"`
	Compound     *bool                           `json:"compound"`
	TaxClass     string                          `json:"tax_class" binding:"max=100"`
	Country      string                          `json:"country" binding:"omitempty,len=2"`
	Zone         string                          `json:"zone" binding:"max=100"`
	Descriptions []mapper.PersistableDescription `json:"descriptions" binding:"dive"`
}
