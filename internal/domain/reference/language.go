package reference

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
	"golang.org/x/text/language"
)

// Language is a locale supported by the platform
type Language struct {
	shared.BaseEntity
	Code      string
	SortOrder int
}

// NewLanguage creates a language after checking the code is a well-formed BCP 47 tag
func NewLanguage(code string, sortOrder int) (*Language, error) {
	normalized, err := NormalizeLanguageCode(code)
	if err != nil {
		return nil, err
	}
	return &Language{
		BaseEntity: shared.NewBaseEntity(),
		Code:       normalized,
		SortOrder:  sortOrder,
	}, nil
}

// NormalizeLanguageCode validates code and returns its lower-case base form
func NormalizeLanguageCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", shared.NewValidationError("INVALID_LANGUAGE", "Language code cannot be empty")
	}
	if _, err := language.Parse(code); err != nil {
		return "", shared.NewValidationError("INVALID_LANGUAGE", "Language code "+code+" is not valid")
	}
	return strings.ToLower(code), nil
}

// Tag returns the x/text language tag for the code
func (l *Language) Tag() language.Tag {
	tag, err := language.Parse(l.Code)
	if err != nil {
		return language.Und
	}
	return tag
}

// Is reports whether l and other are the same language
func (l *Language) Is(other *Language) bool {
	if l == nil || other == nil {
		return false
	}
	if l.ID != uuid.Nil && l.ID == other.ID {
		return true
	}
	return strings.EqualFold(l.Code, other.Code)
}
