package content

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Type is the placement of a content item
type Type string

const (
	TypeBox     Type = "BOX"
	TypePage    Type = "PAGE"
	TypeSection Type = "SECTION"
)

// ParseType parses a content type name, case-insensitively
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeBox, TypePage, TypeSection:
		return t, nil
	}
	return "", shared.NewValidationError("INVALID_CONTENT_TYPE", "Unknown content type "+s)
}

// Content is a CMS page, box or section of a store
type Content struct {
	shared.StoreEntity
	Code         string
	Type         Type
	Visible      bool
	LinkToMenu   bool
	SortOrder    int
	ProductGroup string
	Descriptions shared.DescriptionSet
}

// NewContent creates a content item owned by storeID
func NewContent(storeID uuid.UUID, code string, typ Type) (*Content, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CONTENT", "Content code cannot be empty")
	}
	if _, err := ParseType(string(typ)); err != nil {
		return nil, err
	}
	return &Content{
		StoreEntity: shared.NewStoreEntity(storeID),
		Code:        code,
		Type:        typ,
		Visible:     true,
	}, nil
}

// File is a static file (image, document) uploaded for a store's content
type File struct {
	StoreCode   string
	Name        string
	ContentType string
	Size        int64
	URL         string
}
