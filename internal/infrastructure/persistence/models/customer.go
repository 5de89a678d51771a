package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/customer"
)

// Address kinds of the customer_addresses table
const (
	AddressBilling  = "BILLING"
	AddressDelivery = "DELIVERY"
)

// CustomerModel is the persistence model for the Customer entity
type CustomerModel struct {
	StoreOwnedModel
	Nick              string                   `gorm:"type:varchar(100);not null;index"`
	EmailAddress      string                   `gorm:"type:varchar(100);not null"`
	PasswordHash      string                   `gorm:"type:varchar(255)"`
	Gender            string                   `gorm:"type:varchar(1)"`
	DateOfBirth       *time.Time
	Company           string                   `gorm:"type:varchar(100)"`
	Anonymous         bool                     `gorm:"not null;default:false"`
	DefaultLanguageID *uuid.UUID               `gorm:"type:uuid"`
	DefaultLanguage   *LanguageModel           `gorm:"foreignKey:DefaultLanguageID"`
	Addresses         []CustomerAddressModel   `gorm:"foreignKey:CustomerID"`
	Attributes        []CustomerAttributeModel `gorm:"foreignKey:CustomerID"`
	Groups            []GroupModel             `gorm:"many2many:customer_groups;joinForeignKey:CustomerID;joinReferences:GroupID"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *customer.Customer {
	c := &customer.Customer{
		StoreEntity:       m.ToStoreEntity(),
		Nick:              m.Nick,
		EmailAddress:      m.EmailAddress,
		PasswordHash:      m.PasswordHash,
		Gender:            customer.Gender(m.Gender),
		DateOfBirth:       m.DateOfBirth,
		Company:           m.Company,
		Anonymous:         m.Anonymous,
		DefaultLanguageID: m.DefaultLanguageID,
		Attributes:        make([]customer.Attribute, 0, len(m.Attributes)),
		Groups:            GroupsToDomain(m.Groups),
	}
	if m.DefaultLanguage != nil {
		c.DefaultLanguageCode = m.DefaultLanguage.Code
	}
	for i := range m.Addresses {
		a := m.Addresses[i].ToDomain()
		switch m.Addresses[i].Kind {
		case AddressBilling:
			c.Billing = a
		case AddressDelivery:
			c.Delivery = a
		}
	}
	for i := range m.Attributes {
		c.Attributes = append(c.Attributes, m.Attributes[i].ToDomain())
	}
	return c
}

// FromDomain populates the persistence model from a domain Customer.
// Addresses, attributes and groups are persisted separately.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromStoreEntity(c.StoreEntity)
	m.Nick = c.Nick
	m.EmailAddress = c.EmailAddress
	m.PasswordHash = c.PasswordHash
	m.Gender = string(c.Gender)
	m.DateOfBirth = c.DateOfBirth
	m.Company = c.Company
	m.Anonymous = c.Anonymous
	m.DefaultLanguageID = c.DefaultLanguageID
}

// CustomerAddressModel is a billing or delivery address of a customer
type CustomerAddressModel struct {
	BaseModel
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_address_kind,priority:1"`
	Kind          string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_customer_address_kind,priority:2"`
	FirstName     string    `gorm:"type:varchar(64)"`
	LastName      string    `gorm:"type:varchar(64)"`
	Company       string    `gorm:"type:varchar(100)"`
	Street        string    `gorm:"type:varchar(256)"`
	City          string    `gorm:"type:varchar(100)"`
	PostalCode    string    `gorm:"type:varchar(20)"`
	Phone         string    `gorm:"type:varchar(32)"`
	CountryCode   string    `gorm:"type:varchar(2)"`
	ZoneCode      string    `gorm:"type:varchar(20)"`
	StateProvince string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (CustomerAddressModel) TableName() string {
	return "customer_addresses"
}

// ToDomain converts the persistence model to a domain Address
func (m *CustomerAddressModel) ToDomain() *customer.Address {
	return &customer.Address{
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Company:       m.Company,
		Street:        m.Street,
		City:          m.City,
		PostalCode:    m.PostalCode,
		Phone:         m.Phone,
		CountryCode:   m.CountryCode,
		ZoneCode:      m.ZoneCode,
		StateProvince: m.StateProvince,
	}
}

// CustomerAddressModelFromDomain creates the persistence model of a customer address
func CustomerAddressModelFromDomain(customerID uuid.UUID, kind string, a *customer.Address) CustomerAddressModel {
	return CustomerAddressModel{
		BaseModel:     BaseModel{ID: uuid.New()},
		CustomerID:    customerID,
		Kind:          kind,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Company:       a.Company,
		Street:        a.Street,
		City:          a.City,
		PostalCode:    a.PostalCode,
		Phone:         a.Phone,
		CountryCode:   a.CountryCode,
		ZoneCode:      a.ZoneCode,
		StateProvince: a.StateProvince,
	}
}

// CustomerAttributeModel is the value a customer gave for a customer option
type CustomerAttributeModel struct {
	BaseModel
	CustomerID    uuid.UUID                 `gorm:"type:uuid;not null;index"`
	OptionID      uuid.UUID                 `gorm:"type:uuid;not null"`
	Option        *CustomerOptionModel      `gorm:"foreignKey:OptionID"`
	OptionValueID *uuid.UUID                `gorm:"type:uuid"`
	OptionValue   *CustomerOptionValueModel `gorm:"foreignKey:OptionValueID"`
	TextValue     string                    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CustomerAttributeModel) TableName() string {
	return "customer_attributes"
}

// ToDomain converts the persistence model to a domain Attribute
func (m *CustomerAttributeModel) ToDomain() customer.Attribute {
	a := customer.Attribute{
		ID:            m.ID,
		OptionID:      m.OptionID,
		OptionValueID: m.OptionValueID,
		TextValue:     m.TextValue,
	}
	if m.Option != nil {
		a.Option = m.Option.ToDomain()
	}
	if m.OptionValue != nil {
		a.OptionValue = m.OptionValue.ToDomain()
	}
	return a
}

// CustomerAttributeModelFromDomain creates the persistence model of a customer attribute
func CustomerAttributeModelFromDomain(customerID uuid.UUID, a customer.Attribute) CustomerAttributeModel {
	id := a.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return CustomerAttributeModel{
		BaseModel:     BaseModel{ID: id},
		CustomerID:    customerID,
		OptionID:      a.OptionID,
		OptionValueID: a.OptionValueID,
		TextValue:     a.TextValue,
	}
}

// CustomerOptionModel is the persistence model for the customer Option entity
type CustomerOptionModel struct {
	StoreOwnedModel
	Code         string             `gorm:"type:varchar(100);not null;index"`
	Type         string             `gorm:"type:varchar(10);not null"`
	Active       bool               `gorm:"not null;default:true"`
	Public       bool               `gorm:"not null;default:false"`
	SortOrder    int                `gorm:"not null;default:0"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:customer_option"`
}

// TableName returns the table name for GORM
func (CustomerOptionModel) TableName() string {
	return "customer_options"
}

// ToDomain converts the persistence model to a domain Option
func (m *CustomerOptionModel) ToDomain() *customer.Option {
	return &customer.Option{
		StoreEntity:  m.ToStoreEntity(),
		Code:         m.Code,
		Type:         customer.OptionType(m.Type),
		Active:       m.Active,
		Public:       m.Public,
		SortOrder:    m.SortOrder,
		Descriptions: DescriptionsToDomain(m.Descriptions),
	}
}

// FromDomain populates the persistence model from a domain Option
func (m *CustomerOptionModel) FromDomain(o *customer.Option) {
	m.FromStoreEntity(o.StoreEntity)
	m.Code = o.Code
	m.Type = string(o.Type)
	m.Active = o.Active
	m.Public = o.Public
	m.SortOrder = o.SortOrder
}

// CustomerOptionValueModel is the persistence model for the customer OptionValue entity
type CustomerOptionValueModel struct {
	StoreOwnedModel
	Code         string             `gorm:"type:varchar(100);not null;index"`
	SortOrder    int                `gorm:"not null;default:0"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:customer_option_value"`
}

// TableName returns the table name for GORM
func (CustomerOptionValueModel) TableName() string {
	return "customer_option_values"
}

// ToDomain converts the persistence model to a domain OptionValue
func (m *CustomerOptionValueModel) ToDomain() *customer.OptionValue {
	return &customer.OptionValue{
		StoreEntity:  m.ToStoreEntity(),
		Code:         m.Code,
		SortOrder:    m.SortOrder,
		Descriptions: DescriptionsToDomain(m.Descriptions),
	}
}

// FromDomain populates the persistence model from a domain OptionValue
func (m *CustomerOptionValueModel) FromDomain(v *customer.OptionValue) {
	m.FromStoreEntity(v.StoreEntity)
	m.Code = v.Code
	m.SortOrder = v.SortOrder
}
