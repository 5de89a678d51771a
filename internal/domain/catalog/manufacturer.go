package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Manufacturer is a brand products of a store can be attached to
type Manufacturer struct {
	shared.StoreEntity
	Code         string
	SortOrder    int
	Image        string
	Descriptions shared.DescriptionSet
}

// NewManufacturer creates a manufacturer owned by storeID
func NewManufacturer(storeID uuid.UUID, code string) (*Manufacturer, error) {
	if err := validateCode("manufacturer", code); err != nil {
		return nil, err
	}
	return &Manufacturer{
		StoreEntity: shared.NewStoreEntity(storeID),
		Code:        strings.TrimSpace(code),
	}, nil
}

// SetCode changes the manufacturer code
func (m *Manufacturer) SetCode(code string) error {
	if err := validateCode("manufacturer", code); err != nil {
		return err
	}
	m.Code = strings.TrimSpace(code)
	m.Touch()
	return nil
}

func validateCode(kind, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewValidationError("INVALID_CODE", kind+" code cannot be empty")
	}
	if len(code) > 100 {
		return shared.NewValidationError("INVALID_CODE", kind+" code cannot exceed 100 characters")
	}
	return nil
}
