package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Gender of a customer
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Address is a billing or delivery address
type Address struct {
	FirstName   string
	LastName    string
	Company     string
	Street      string
	City        string
	PostalCode  string
	Phone       string
	CountryCode string
	ZoneCode    string
	// StateProvince is used when the country has no zone list
	StateProvince string
}

// IsEmpty reports whether no field of the address is set
func (a *Address) IsEmpty() bool {
	return a == nil || *a == (Address{})
}

// Customer is a shopper registered on a merchant store
type Customer struct {
	shared.StoreEntity
	Nick                string
	EmailAddress        string
	PasswordHash        string
	Gender              Gender
	DateOfBirth         *time.Time
	Company             string
	Anonymous           bool
	DefaultLanguageID   *uuid.UUID
	DefaultLanguageCode string
	Billing             *Address
	Delivery            *Address
	Attributes          []Attribute
	Groups              []identity.Group
}

// NewCustomer creates a customer owned by storeID
func NewCustomer(storeID uuid.UUID, email string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewValidationError("INVALID_EMAIL", "Customer email address cannot be empty")
	}
	return &Customer{
		StoreEntity:  shared.NewStoreEntity(storeID),
		EmailAddress: email,
		Nick:         email,
		Attributes:   make([]Attribute, 0),
		Groups:       make([]identity.Group, 0),
	}, nil
}

// GroupIDs returns the ids of the customer's groups
func (c *Customer) GroupIDs() []uuid.UUID {
	return identity.GroupIDs(c.Groups)
}

// AttributeFor returns the attribute bound to optionID
func (c *Customer) AttributeFor(optionID uuid.UUID) (*Attribute, bool) {
	for i := range c.Attributes {
		if c.Attributes[i].OptionID == optionID {
			return &c.Attributes[i], true
		}
	}
	return nil, false
}

// SetAttribute adds or replaces the attribute for attr.OptionID
func (c *Customer) SetAttribute(attr Attribute) {
	if existing, ok := c.AttributeFor(attr.OptionID); ok {
		existing.Option = attr.Option
		existing.OptionValueID = attr.OptionValueID
		existing.OptionValue = attr.OptionValue
		existing.TextValue = attr.TextValue
		return
	}
	if attr.ID == uuid.Nil {
		attr.ID = uuid.New()
	}
	c.Attributes = append(c.Attributes, attr)
}

// Attribute is the value a customer gave for a customer option
type Attribute struct {
	ID            uuid.UUID
	OptionID      uuid.UUID
	Option        *Option
	OptionValueID *uuid.UUID
	OptionValue   *OptionValue
	TextValue     string
}
