package models

import (
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/reference"
)

// LanguageModel is the persistence model for the Language entity
type LanguageModel struct {
	BaseModel
	Code      string `gorm:"type:varchar(10);not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (LanguageModel) TableName() string {
	return "languages"
}

// ToDomain converts the persistence model to a domain Language
func (m *LanguageModel) ToDomain() *reference.Language {
	return &reference.Language{
		BaseEntity: m.BaseModel.Entity(),
		Code:       m.Code,
		SortOrder:  m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Language
func (m *LanguageModel) FromDomain(l *reference.Language) {
	m.SetEntity(l.BaseEntity)
	m.Code = l.Code
	m.SortOrder = l.SortOrder
}

// CurrencyModel is the persistence model for the Currency entity
type CurrencyModel struct {
	BaseModel
	Code      string `gorm:"type:varchar(3);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(100)"`
	Supported bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency
func (m *CurrencyModel) ToDomain() *reference.Currency {
	return &reference.Currency{
		BaseEntity: m.BaseModel.Entity(),
		Code:       m.Code,
		Name:       m.Name,
		Supported:  m.Supported,
	}
}

// CountryModel is the persistence model for the Country entity
type CountryModel struct {
	BaseModel
	IsoCode      string             `gorm:"type:varchar(2);not null;uniqueIndex"`
	Supported    bool               `gorm:"not null;default:true"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:country"`
	Zones        []ZoneModel        `gorm:"foreignKey:CountryID"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// ToDomain converts the persistence model to a domain Country
func (m *CountryModel) ToDomain() *reference.Country {
	c := &reference.Country{
		BaseEntity:   m.BaseModel.Entity(),
		IsoCode:      m.IsoCode,
		Supported:    m.Supported,
		Descriptions: DescriptionsToDomain(m.Descriptions),
		Zones:        make([]reference.Zone, 0, len(m.Zones)),
	}
	for i := range m.Zones {
		z := m.Zones[i].ToDomain()
		z.CountryCode = m.IsoCode
		c.Zones = append(c.Zones, *z)
	}
	return c
}

// FromDomain populates the persistence model from a domain Country
func (m *CountryModel) FromDomain(c *reference.Country) {
	m.SetEntity(c.BaseEntity)
	m.IsoCode = c.IsoCode
	m.Supported = c.Supported
}

// ZoneModel is the persistence model for the Zone entity
type ZoneModel struct {
	BaseModel
	Code         string             `gorm:"type:varchar(20);not null;uniqueIndex"`
	CountryID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Country      *CountryModel      `gorm:"foreignKey:CountryID"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:zone"`
}

// TableName returns the table name for GORM
func (ZoneModel) TableName() string {
	return "zones"
}

// ToDomain converts the persistence model to a domain Zone
func (m *ZoneModel) ToDomain() *reference.Zone {
	z := &reference.Zone{
		BaseEntity:   m.BaseModel.Entity(),
		Code:         m.Code,
		CountryID:    m.CountryID,
		Descriptions: DescriptionsToDomain(m.Descriptions),
	}
	if m.Country != nil {
		z.CountryCode = m.Country.IsoCode
	}
	return z
}

// FromDomain populates the persistence model from a domain Zone
func (m *ZoneModel) FromDomain(z *reference.Zone) {
	m.SetEntity(z.BaseEntity)
	m.Code = z.Code
	m.CountryID = z.CountryID
}
