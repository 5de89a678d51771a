package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ManufacturerModel is the persistence model for the Manufacturer entity
type ManufacturerModel struct {
	StoreOwnedModel
	Code         string             `gorm:"type:varchar(100);not null;index"`
	SortOrder    int                `gorm:"not null;default:0"`
	Image        string             `gorm:"type:varchar(255)"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:manufacturer"`
}

// TableName returns the table name for GORM
func (ManufacturerModel) TableName() string {
	return "manufacturers"
}

// ToDomain converts the persistence model to a domain Manufacturer
func (m *ManufacturerModel) ToDomain() *catalog.Manufacturer {
	return &catalog.Manufacturer{
		StoreEntity:  m.ToStoreEntity(),
		Code:         m.Code,
		SortOrder:    m.SortOrder,
		Image:        m.Image,
		Descriptions: DescriptionsToDomain(m.Descriptions),
	}
}

// FromDomain populates the persistence model from a domain Manufacturer.
// Descriptions are persisted separately.
func (m *ManufacturerModel) FromDomain(mf *catalog.Manufacturer) {
	m.FromStoreEntity(mf.StoreEntity)
	m.Code = mf.Code
	m.SortOrder = mf.SortOrder
	m.Image = mf.Image
}

// ProductModel is the persistence model for the Product entity
type ProductModel struct {
	StoreOwnedModel
	Sku            string             `gorm:"type:varchar(100);not null"`
	Price          decimal.Decimal    `gorm:"type:decimal(19,4);not null"`
	Quantity       int                `gorm:"not null;default:0"`
	Available      bool               `gorm:"not null;default:true"`
	Shippable      bool               `gorm:"not null;default:true"`
	Virtual        bool               `gorm:"not null;default:false"`
	SortOrder      int                `gorm:"not null;default:0"`
	Weight         decimal.Decimal    `gorm:"type:decimal(10,3);not null"`
	DateAvailable  *time.Time
	ManufacturerID *uuid.UUID         `gorm:"type:uuid;index"`
	Manufacturer   *ManufacturerModel `gorm:"foreignKey:ManufacturerID"`
	TaxClassID     *uuid.UUID         `gorm:"type:uuid;index"`
	TaxClass       *TaxClassModel     `gorm:"foreignKey:TaxClassID"`
	Descriptions   []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:product"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		StoreEntity:    m.ToStoreEntity(),
		Sku:            m.Sku,
		Price:          m.Price,
		Quantity:       m.Quantity,
		Available:      m.Available,
		Shippable:      m.Shippable,
		Virtual:        m.Virtual,
		SortOrder:      m.SortOrder,
		Weight:         m.Weight,
		DateAvailable:  m.DateAvailable,
		ManufacturerID: m.ManufacturerID,
		TaxClassID:     m.TaxClassID,
		Descriptions:   DescriptionsToDomain(m.Descriptions),
	}
	if m.Manufacturer != nil {
		p.Manufacturer = m.Manufacturer.ToDomain()
	}
	if m.TaxClass != nil {
		p.TaxClassCode = m.TaxClass.Code
	}
	return p
}

// FromDomain populates the persistence model from a domain Product.
// Descriptions are persisted separately.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromStoreEntity(p.StoreEntity)
	m.Sku = p.Sku
	m.Price = p.Price
	m.Quantity = p.Quantity
	m.Available = p.Available
	m.Shippable = p.Shippable
	m.Virtual = p.Virtual
	m.SortOrder = p.SortOrder
	m.Weight = p.Weight
	m.DateAvailable = p.DateAvailable
	m.ManufacturerID = p.ManufacturerID
	m.TaxClassID = p.TaxClassID
}
