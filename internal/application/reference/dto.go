package reference

import (
	"github.com/google/uuid"
)

// ReadableLanguage is a language in API responses
type ReadableLanguage struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	SortOrder int       `json:"sort_order"`
}

// ReadableZone is a zone in API responses
type ReadableZone struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	CountryCode string    `json:"country_code"`
	Name        string    `json:"name"`
}

// ReadableCountry is a country with its zones in API responses
type ReadableCountry struct {
	ID        uuid.UUID      `json:"id"`
	Code      string         `json:"code"`
	Supported bool           `json:"supported"`
	Name      string         `json:"name"`
	Zones     []ReadableZone `json:"zones"`
}

// ReadableCurrency is a supported currency in API responses
type ReadableCurrency struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}
