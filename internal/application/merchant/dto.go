package merchant

import (
	"time"

	"github.com/google/uuid"
)

// ReadableStore is a merchant store in API responses
type ReadableStore struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Currency           string     `json:"currency"`
	Country            string     `json:"country"`
	Zone               string     `json:"zone"`
	City               string     `json:"city"`
	PostalCode         string     `json:"postal_code"`
	Address            string     `json:"address"`
	DomainName         string     `json:"domain_name"`
	DefaultLanguage    string     `json:"default_language"`
	SupportedLanguages []string   `json:"supported_languages"`
	InBusinessSince    *time.Time `json:"in_business_since,omitempty"`
	Retailer           bool       `json:"retailer"`
	UseCache           bool       `json:"use_cache"`
}

// ReadableConfiguration is a store configuration entry in API responses
type ReadableConfiguration struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PersistableConfiguration sets a store configuration entry
type PersistableConfiguration struct {
	Key   string `json:"key" binding:"required,min=1,max=100"`
	Type  string `json:"type" binding:"omitempty,oneof=CONFIG SOCIAL INTEGRATION"`
	Value string `json:"value" binding:"max=4000"`
}
