package mapper

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ReadableDescription is the localized text projected for one language
type ReadableDescription struct {
	ID              *uuid.UUID `json:"id,omitempty"`
	Language        string     `json:"language,omitempty"`
	Name            string     `json:"name"`
	Title           string     `json:"title,omitempty"`
	Description     string     `json:"description,omitempty"`
	FriendlyURL     string     `json:"friendly_url,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaKeywords    string     `json:"meta_keywords,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
}

// PersistableDescription is the localized text sent for one language
type PersistableDescription struct {
	Language        string `json:"language" binding:"required,langcode"`
	Name            string `json:"name" binding:"max=255"`
	Title           string `json:"title" binding:"max=255"`
	Description     string `json:"description"`
	FriendlyURL     string `json:"friendly_url" binding:"max=255"`
	MetaTitle       string `json:"meta_title" binding:"max=255"`
	MetaKeywords    string `json:"meta_keywords" binding:"max=255"`
	MetaDescription string `json:"meta_description"`
}

// LanguageResolver looks a language up by code
type LanguageResolver interface {
	FindByCode(ctx context.Context, code string) (*reference.Language, error)
}

// ToReadableDescription copies d, or returns the zero value for nil
func ToReadableDescription(d *shared.Description) ReadableDescription {
	if d == nil {
		return ReadableDescription{}
	}
	var id *uuid.UUID
	if d.ID != uuid.Nil {
		v := d.ID
		id = &v
	}
	return ReadableDescription{
		ID:              id,
		Language:        d.LanguageCode,
		Name:            d.Name,
		Title:           d.Title,
		Description:     d.Description,
		FriendlyURL:     d.FriendlyURL,
		MetaTitle:       d.MetaTitle,
		MetaKeywords:    d.MetaKeywords,
		MetaDescription: d.MetaDescription,
	}
}

// ProjectDescription picks the description of set matching lang under policy.
// Without a match the zero ReadableDescription is returned.
func ProjectDescription(set shared.DescriptionSet, lang *reference.Language, policy shared.LocalePolicy) ReadableDescription {
	d, ok := set.Resolve(lang.ID, policy)
	if !ok {
		return ReadableDescription{}
	}
	return ToReadableDescription(d)
}

// AllDescriptions projects every description of set, in set order
func AllDescriptions(set shared.DescriptionSet) []ReadableDescription {
	out := make([]ReadableDescription, 0, len(set))
	for i := range set {
		out = append(out, ToReadableDescription(&set[i]))
	}
	return out
}

// ResolveLanguage validates code and loads the language. A malformed or
// unknown code is a validation error naming the code.
func ResolveLanguage(ctx context.Context, languages LanguageResolver, code string) (*reference.Language, error) {
	normalized, err := reference.NormalizeLanguageCode(code)
	if err != nil {
		return nil, err
	}
	lang, err := languages.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("INVALID_LANGUAGE", "Language "+code+" not found")
		}
		return nil, err
	}
	return lang, nil
}

// MergeDescriptions upserts incoming into set. Descriptions are matched by
// language code; matched entries keep their ID and new ones get parentID.
func MergeDescriptions(ctx context.Context, languages LanguageResolver, parentID uuid.UUID, set *shared.DescriptionSet, incoming []PersistableDescription) error {
	resolved := make(map[string]*reference.Language, len(incoming))
	for _, in := range incoming {
		lang, ok := resolved[in.Language]
		if !ok {
			var err error
			lang, err = ResolveLanguage(ctx, languages, in.Language)
			if err != nil {
				return err
			}
			resolved[in.Language] = lang
		}
		set.Upsert(parentID, shared.Description{
			LanguageID:      lang.ID,
			LanguageCode:    lang.Code,
			Name:            in.Name,
			Title:           in.Title,
			Description:     in.Description,
			FriendlyURL:     in.FriendlyURL,
			MetaTitle:       in.MetaTitle,
			MetaKeywords:    in.MetaKeywords,
			MetaDescription: in.MetaDescription,
		})
	}
	return nil
}
