package merchant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// DefaultStoreCode is the code of the store created at installation
const DefaultStoreCode = "DEFAULT"

// Store is a merchant store, the tenant every catalog, customer and
// content record belongs to
type Store struct {
	shared.BaseEntity
	Code            string
	Name            string
	Email           string
	Phone           string
	CurrencyCode    string
	CountryCode     string
	ZoneCode        string
	City            string
	PostalCode      string
	Address         string
	DomainName      string
	DefaultLanguage *reference.Language
	Languages       []reference.Language
	InBusinessSince *time.Time
	Retailer        bool
	UseCache        bool
}

// NewStore creates a store with its default language
func NewStore(code, name, currencyCode string, defaultLanguage *reference.Language) (*Store, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_STORE", "Store code cannot be empty")
	}
	if len(code) > 100 {
		return nil, shared.NewValidationError("INVALID_STORE", "Store code cannot exceed 100 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_STORE", "Store name cannot be empty")
	}
	if defaultLanguage == nil {
		return nil, shared.NewValidationError("INVALID_STORE", "Store default language is required")
	}
	s := &Store{
		BaseEntity:      shared.NewBaseEntity(),
		Code:            code,
		Name:            name,
		CurrencyCode:    strings.ToUpper(currencyCode),
		DefaultLanguage: defaultLanguage,
		Languages:       []reference.Language{*defaultLanguage},
	}
	return s, nil
}

// SupportsLanguage reports whether the store offers content in lang
func (s *Store) SupportsLanguage(lang *reference.Language) bool {
	if lang == nil {
		return false
	}
	if s.DefaultLanguage.Is(lang) {
		return true
	}
	for i := range s.Languages {
		if s.Languages[i].Is(lang) {
			return true
		}
	}
	return false
}

// Owns reports whether a store-scoped record with storeID belongs to s
func (s *Store) Owns(storeID uuid.UUID) bool {
	return s.ID == storeID
}
