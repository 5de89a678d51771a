package shared

import (
	"strings"

	"github.com/google/uuid"
)

// LocalePolicy decides which description a converter projects when the
// requested language has no exact match.
type LocalePolicy int

const (
	// LocaleExactOnly leaves localized fields empty when no description matches.
	LocaleExactOnly LocalePolicy = iota
	// LocaleExactOrFirst falls back to the first description in set order.
	LocaleExactOrFirst
)

// String returns the policy name
func (p LocalePolicy) String() string {
	switch p {
	case LocaleExactOnly:
		return "exact_only"
	case LocaleExactOrFirst:
		return "exact_or_first"
	default:
		return "unknown"
	}
}

// Description is the localized text of a described entity in one language
type Description struct {
	ID              uuid.UUID
	ParentID        uuid.UUID
	LanguageID      uuid.UUID
	LanguageCode    string
	Name            string
	Title           string
	Description     string
	FriendlyURL     string
	MetaTitle       string
	MetaKeywords    string
	MetaDescription string
}

// mergeFrom copies non-empty text fields of src into d
func (d *Description) mergeFrom(src Description) {
	if src.Name != "" {
		d.Name = src.Name
	}
	if src.Title != "" {
		d.Title = src.Title
	}
	if src.Description != "" {
		d.Description = src.Description
	}
	if src.FriendlyURL != "" {
		d.FriendlyURL = src.FriendlyURL
	}
	if src.MetaTitle != "" {
		d.MetaTitle = src.MetaTitle
	}
	if src.MetaKeywords != "" {
		d.MetaKeywords = src.MetaKeywords
	}
	if src.MetaDescription != "" {
		d.MetaDescription = src.MetaDescription
	}
	if src.LanguageID != uuid.Nil {
		d.LanguageID = src.LanguageID
	}
}

// DescriptionSet holds at most one description per language, in insertion order
type DescriptionSet []Description

// ForLanguage returns the description whose language matches languageID
func (s DescriptionSet) ForLanguage(languageID uuid.UUID) (*Description, bool) {
	for i := range s {
		if s[i].LanguageID == languageID {
			return &s[i], true
		}
	}
	return nil, false
}

// ForLanguageCode returns the description whose language code matches code
func (s DescriptionSet) ForLanguageCode(code string) (*Description, bool) {
	for i := range s {
		if strings.EqualFold(s[i].LanguageCode, code) {
			return &s[i], true
		}
	}
	return nil, false
}

// Resolve picks the description to project for languageID under policy.
func (s DescriptionSet) Resolve(languageID uuid.UUID, policy LocalePolicy) (*Description, bool) {
	if d, ok := s.ForLanguage(languageID); ok {
		return d, true
	}
	if policy == LocaleExactOrFirst && len(s) > 0 {
		return &s[0], true
	}
	return nil, false
}

// Upsert merges incoming into the set keyed by language code. A matching
// description keeps its ID and receives the non-empty incoming fields; an
// unmatched one is appended with a fresh ID and parentID. Descriptions not
// named by incoming are never removed.
func (s *DescriptionSet) Upsert(parentID uuid.UUID, incoming ...Description) {
	for _, in := range incoming {
		if existing, ok := s.ForLanguageCode(in.LanguageCode); ok {
			existing.mergeFrom(in)
			existing.ParentID = parentID
			continue
		}
		in.ID = uuid.New()
		in.ParentID = parentID
		*s = append(*s, in)
	}
}

// Languages returns the language codes present, in set order
func (s DescriptionSet) Languages() []string {
	codes := make([]string, 0, len(s))
	for _, d := range s {
		codes = append(codes, d.LanguageCode)
	}
	return codes
}
