package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
)

// StoreModel is the persistence model for the merchant Store entity
type StoreModel struct {
	BaseModel
	Code              string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Email             string          `gorm:"type:varchar(100)"`
	Phone             string          `gorm:"type:varchar(50)"`
	CurrencyCode      string          `gorm:"type:varchar(3);not null"`
	CountryCode       string          `gorm:"type:varchar(2)"`
	ZoneCode          string          `gorm:"type:varchar(20)"`
	City              string          `gorm:"type:varchar(100)"`
	PostalCode        string          `gorm:"type:varchar(20)"`
	Address           string          `gorm:"type:varchar(255)"`
	DomainName        string          `gorm:"type:varchar(255)"`
	DefaultLanguageID *uuid.UUID      `gorm:"type:uuid"`
	DefaultLanguage   *LanguageModel  `gorm:"foreignKey:DefaultLanguageID"`
	Languages         []LanguageModel `gorm:"many2many:store_languages;joinForeignKey:StoreID;joinReferences:LanguageID"`
	InBusinessSince   *time.Time
	Retailer          bool `gorm:"not null;default:false"`
	UseCache          bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store
func (m *StoreModel) ToDomain() *merchant.Store {
	s := &merchant.Store{
		BaseEntity:      m.BaseModel.Entity(),
		Code:            m.Code,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		CurrencyCode:    m.CurrencyCode,
		CountryCode:     m.CountryCode,
		ZoneCode:        m.ZoneCode,
		City:            m.City,
		PostalCode:      m.PostalCode,
		Address:         m.Address,
		DomainName:      m.DomainName,
		InBusinessSince: m.InBusinessSince,
		Retailer:        m.Retailer,
		UseCache:        m.UseCache,
		Languages:       make([]reference.Language, 0, len(m.Languages)),
	}
	if m.DefaultLanguage != nil {
		s.DefaultLanguage = m.DefaultLanguage.ToDomain()
	}
	for i := range m.Languages {
		s.Languages = append(s.Languages, *m.Languages[i].ToDomain())
	}
	return s
}

// FromDomain populates the persistence model from a domain Store.
// Languages are persisted separately through the association.
func (m *StoreModel) FromDomain(s *merchant.Store) {
	m.SetEntity(s.BaseEntity)
	m.Code = s.Code
	m.Name = s.Name
	m.Email = s.Email
	m.Phone = s.Phone
	m.CurrencyCode = s.CurrencyCode
	m.CountryCode = s.CountryCode
	m.ZoneCode = s.ZoneCode
	m.City = s.City
	m.PostalCode = s.PostalCode
	m.Address = s.Address
	m.DomainName = s.DomainName
	m.InBusinessSince = s.InBusinessSince
	m.Retailer = s.Retailer
	m.UseCache = s.UseCache
	m.DefaultLanguageID = nil
	if s.DefaultLanguage != nil {
		id := s.DefaultLanguage.ID
		m.DefaultLanguageID = &id
	}
}

// StoreConfigurationModel is the persistence model for store configuration
// entries. Value holds the encrypted form.
type StoreConfigurationModel struct {
	StoreOwnedModel
	Key   string `gorm:"column:config_key;type:varchar(100);not null"`
	Type  string `gorm:"type:varchar(20);not null;default:'CONFIG'"`
	Value string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StoreConfigurationModel) TableName() string {
	return "store_configurations"
}

// ToDomain converts the persistence model to a domain Configuration carrying value
func (m *StoreConfigurationModel) ToDomain(value string) *merchant.Configuration {
	return &merchant.Configuration{
		StoreEntity: m.ToStoreEntity(),
		Key:         m.Key,
		Type:        merchant.ConfigurationType(m.Type),
		Value:       value,
	}
}

// FromDomain populates the persistence model from c with the stored form of its value
func (m *StoreConfigurationModel) FromDomain(c *merchant.Configuration, storedValue string) {
	m.FromStoreEntity(c.StoreEntity)
	m.Key = c.Key
	m.Type = string(c.Type)
	m.Value = storedValue
}
