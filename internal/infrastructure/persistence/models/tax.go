package models

import (
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/tax"
	"github.com/shopspring/decimal"
)

// TaxClassModel is the persistence model for the TaxClass entity
type TaxClassModel struct {
	StoreOwnedModel
	Code  string `gorm:"type:varchar(10);not null"`
	Title string `gorm:"type:varchar(32)"`
}

// TableName returns the table name for GORM
func (TaxClassModel) TableName() string {
	return "tax_classes"
}

// ToDomain converts the persistence model to a domain TaxClass
func (m *TaxClassModel) ToDomain() *tax.TaxClass {
	return &tax.TaxClass{
		StoreEntity: m.ToStoreEntity(),
		Code:        m.Code,
		Title:       m.Title,
	}
}

// FromDomain populates the persistence model from a domain TaxClass
func (m *TaxClassModel) FromDomain(c *tax.TaxClass) {
	m.FromStoreEntity(c.StoreEntity)
	m.Code = c.Code
	m.Title = c.Title
}

// TaxRateModel is the persistence model for the TaxRate entity
type TaxRateModel struct {
	StoreOwnedModel
	Code         string             `gorm:"type:varchar(32);not null"`
	Rate         decimal.Decimal    `gorm:"type:decimal(7,4);not null"`
	Priority     int                `gorm:"not null;default:0"`
	Compound     bool               `gorm:"not null;default:false"`
	TaxClassID   *uuid.UUID         `gorm:"type:uuid;index"`
	TaxClass     *TaxClassModel     `gorm:"foreignKey:TaxClassID"`
	CountryID    *uuid.UUID         `gorm:"type:uuid"`
	Country      *CountryModel      `gorm:"foreignKey:CountryID"`
	ZoneID       *uuid.UUID         `gorm:"type:uuid"`
	Zone         *ZoneModel         `gorm:"foreignKey:ZoneID"`
	ParentID     *uuid.UUID         `gorm:"type:uuid"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:tax_rate"`
}

// TableName returns the table name for GORM
func (TaxRateModel) TableName() string {
	return "tax_rates"
}

// ToDomain converts the persistence model to a domain TaxRate
func (m *TaxRateModel) ToDomain() *tax.TaxRate {
	r := &tax.TaxRate{
		StoreEntity:  m.ToStoreEntity(),
		Code:         m.Code,
		Rate:         m.Rate,
		Priority:     m.Priority,
		Compound:     m.Compound,
		TaxClassID:   m.TaxClassID,
		CountryID:    m.CountryID,
		ZoneID:       m.ZoneID,
		ParentID:     m.ParentID,
		Descriptions: DescriptionsToDomain(m.Descriptions),
	}
	if m.TaxClass != nil {
		r.TaxClass = m.TaxClass.ToDomain()
	}
	if m.Country != nil {
		r.CountryCode = m.Country.IsoCode
	}
	if m.Zone != nil {
		r.ZoneCode = m.Zone.Code
	}
	return r
}

// FromDomain populates the persistence model from a domain TaxRate.
// Descriptions are persisted separately.
func (m *TaxRateModel) FromDomain(r *tax.TaxRate) {
	m.FromStoreEntity(r.StoreEntity)
	m.Code = r.Code
	m.Rate = r.Rate
	m.Priority = r.Priority
	m.Compound = r.Compound
	m.TaxClassID = r.TaxClassID
	m.CountryID = r.CountryID
	m.ZoneID = r.ZoneID
	m.ParentID = r.ParentID
}
