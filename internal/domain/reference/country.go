package reference

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Country is an ISO 3166 country with localized names
type Country struct {
	shared.BaseEntity
	IsoCode      string
	Supported    bool
	Descriptions shared.DescriptionSet
	Zones        []Zone
}

// NewCountry creates a country
func NewCountry(isoCode string) (*Country, error) {
	isoCode = strings.ToUpper(strings.TrimSpace(isoCode))
	if len(isoCode) != 2 {
		return nil, shared.NewValidationError("INVALID_COUNTRY", "Country code must be a 2-letter ISO code")
	}
	return &Country{
		BaseEntity: shared.NewBaseEntity(),
		IsoCode:    isoCode,
		Supported:  true,
	}, nil
}

// ZoneByCode returns the zone of this country with the given code
func (c *Country) ZoneByCode(code string) (*Zone, bool) {
	for i := range c.Zones {
		if strings.EqualFold(c.Zones[i].Code, code) {
			return &c.Zones[i], true
		}
	}
	return nil, false
}

// Zone is a state, province or region of a country
type Zone struct {
	shared.BaseEntity
	Code         string
	CountryID    uuid.UUID
	CountryCode  string
	Descriptions shared.DescriptionSet
}

// NewZone creates a zone belonging to country
func NewZone(country *Country, code string) (*Zone, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("INVALID_ZONE", "Zone code cannot be empty")
	}
	return &Zone{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		CountryID:   country.ID,
		CountryCode: country.IsoCode,
	}, nil
}

// Currency is an ISO 4217 currency
type Currency struct {
	shared.BaseEntity
	Code      string
	Name      string
	Supported bool
}
