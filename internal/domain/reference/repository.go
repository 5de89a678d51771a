package reference

import (
	"context"

	"github.com/google/uuid"
)

// LanguageRepository defines persistence for languages
type LanguageRepository interface {
	// FindByID finds a language by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Language, error)

	// FindByCode finds a language by its code
	FindByCode(ctx context.Context, code string) (*Language, error)

	// FindAll returns every language ordered by sort order
	FindAll(ctx context.Context) ([]Language, error)

	// Save creates or updates a language
	Save(ctx context.Context, language *Language) error
}

// CountryRepository defines persistence for countries and their zones
type CountryRepository interface {
	// FindByIsoCode finds a country with its descriptions and zones
	FindByIsoCode(ctx context.Context, isoCode string) (*Country, error)

	// FindAll returns every country with descriptions
	FindAll(ctx context.Context) ([]Country, error)

	// Save creates or updates a country
	Save(ctx context.Context, country *Country) error
}

// ZoneRepository defines persistence for zones
type ZoneRepository interface {
	// FindByCode finds a zone by its code
	FindByCode(ctx context.Context, code string) (*Zone, error)

	// FindByCountry returns the zones of a country
	FindByCountry(ctx context.Context, countryIsoCode string) ([]Zone, error)

	// Save creates or updates a zone
	Save(ctx context.Context, zone *Zone) error
}

// CurrencyRepository defines persistence for currencies
type CurrencyRepository interface {
	// FindByCode finds a currency by its ISO code
	FindByCode(ctx context.Context, code string) (*Currency, error)

	// FindAll returns every currency
	FindAll(ctx context.Context) ([]Currency, error)
}
