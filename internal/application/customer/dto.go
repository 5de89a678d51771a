package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
)

// ReadableAddress represents a billing or delivery address in API responses
type ReadableAddress struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Company       string `json:"company,omitempty"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone,omitempty"`
	Country       string `json:"country"`
	Zone          string `json:"zone,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
}

// PersistableAddress creates or replaces an address
type PersistableAddress struct {
	FirstName     string `json:"first_name" binding:"max=64"`
	LastName      string `json:"last_name" binding:"max=64"`
	Company       string `json:"company" binding:"max=100"`
	Address       string `json:"address" binding:"max=256"`
	City          string `json:"city" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"max=20"`
	Phone         string `json:"phone" binding:"max=32"`
	Country       string `json:"country" binding:"required,len=2"`
	Zone          string `json:"zone" binding:"max=100"`
	StateProvince string `json:"state_province" binding:"max=100"`
}

// ReadableGroup represents a security group
type ReadableGroup struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// ReadableOptionRef is the option side of a customer attribute
type ReadableOptionRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Type string    `json:"type"`
	Name string    `json:"name,omitempty"`
}

// ReadableOptionValueRef is the selected value of a customer attribute
type ReadableOptionValueRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name,omitempty"`
}

// ReadableAttribute represents a customer attribute
type ReadableAttribute struct {
	ID          uuid.UUID               `json:"id"`
	Option      ReadableOptionRef       `json:"option"`
	OptionValue *ReadableOptionValueRef `json:"option_value,omitempty"`
	TextValue   string                  `json:"text_value,omitempty"`
}

// PersistableAttribute sets the value of one customer option
type PersistableAttribute struct {
	Option      string `json:"option" binding:"required"`
	OptionValue string `json:"option_value"`
	TextValue   string `json:"text_value" binding:"max=256"`
}

// ReadableCustomer represents a customer in API responses
type ReadableCustomer struct {
	ID           uuid.UUID           `json:"id"`
	Nick         string              `json:"user_name"`
	EmailAddress string              `json:"email_address"`
	Gender       string              `json:"gender,omitempty"`
	DateOfBirth  *time.Time          `json:"date_of_birth,omitempty"`
	Company      string              `json:"company,omitempty"`
	Language     string              `json:"language,omitempty"`
	Store        string              `json:"store"`
	Billing      *ReadableAddress    `json:"billing,omitempty"`
	Delivery     *ReadableAddress    `json:"delivery,omitempty"`
	Attributes   []ReadableAttribute `json:"attributes,omitempty"`
	Groups       []ReadableGroup     `json:"groups,omitempty"`
}

// PersistableCustomer creates or updates a customer. Gender, date of birth and
// company keep their stored value when omitted; an empty gender clears it.
type PersistableCustomer struct {
	Nick         string                 `json:"user_name" binding:"max=96"`
	EmailAddress string                 `json:"email_address" binding:"required,email"`
	Password     string                 `json:"password" binding:"omitempty,min=6,max=72"`
	Gender       *string                `json:"gender" binding:"omitempty,oneof=M F"`
	DateOfBirth  *time.Time             `json:"date_of_birth"`
	Company      *string                `json:"company" binding:"omitempty,max=100"`
	Language     string                 `json:"language" binding:"omitempty,langcode"`
	Billing      *PersistableAddress    `json:"billing"`
	Delivery     *PersistableAddress    `json:"delivery"`
	Attributes   []PersistableAttribute `json:"attributes" binding:"dive"`
	Groups       []string               `json:"groups"`
}

// CustomerListCriteria filters customer listings
type CustomerListCriteria struct {
	Email string `form:"email"`
	Name  string `form:"name"`
}

// ReadableOption represents a customer option
type ReadableOption struct {
	ID           uuid.UUID                    `json:"id"`
	Code         string                       `json:"code"`
	Type         string                       `json:"type"`
	Active       bool                         `json:"active"`
	Public       bool                         `json:"public"`
	Order        int                          `json:"order"`
	Description  mapper.ReadableDescription   `json:"description"`
	Descriptions []mapper.ReadableDescription `json:"descriptions,omitempty"`
}

// PersistableOption creates or updates a customer option
type PersistableOption struct {
	Code         string                          `json:"code" binding:"required,max=100,code"`
	Type         string                          `json:"type" binding:"omitempty,oneof=Text Select Checkbox Radio"`
	Active       *bool                           `json:"active"`
	Public       *bool                           `json:"public"`
	Order        *int                            `json:"order"`
	Descriptions []mapper.PersistableDescription `json:"descriptions" binding:"dive"`
}

// ReadableOptionValue represents a customer option value
type ReadableOptionValue struct {
	ID           uuid.UUID                    `json:"id"`
	Code         string                       `json:"code"`
	Order        int                          `json:"order"`
	Description  mapper.ReadableDescription   `json:"description"`
	Descriptions []mapper.ReadableDescription `json:"descriptions,omitempty"`
}

// PersistableOptionValue creates or updates a customer option value
type PersistableOptionValue struct {
	Code         string                          `json:"code" binding:"required,max=100,code"`
	Order        *int                            `json:"order"`
	Descriptions []mapper.PersistableDescription `json:"descriptions" binding:"dive"`
}
