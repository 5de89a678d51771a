package customer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// OptionType is the input control used for a customer option
type OptionType string

const (
	OptionTypeText     OptionType = "Text"
	OptionTypeSelect   OptionType = "Select"
	OptionTypeCheckbox OptionType = "Checkbox"
	OptionTypeRadio    OptionType = "Radio"
)

// IsValid reports whether t is a known option type
func (t OptionType) IsValid() bool {
	switch t {
	case OptionTypeText, OptionTypeSelect, OptionTypeCheckbox, OptionTypeRadio:
		return true
	}
	return false
}

// Option is an extra registration field a store asks customers to fill
type Option struct {
	shared.StoreEntity
	Code         string
	Type         OptionType
	Active       bool
	Public       bool
	SortOrder    int
	Descriptions shared.DescriptionSet
}

// NewOption creates a customer option owned by storeID
func NewOption(storeID uuid.UUID, code string, typ OptionType) (*Option, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_OPTION", "Customer option code cannot be empty")
	}
	if typ == "" {
		typ = OptionTypeText
	}
	if !typ.IsValid() {
		return nil, shared.NewValidationError("INVALID_OPTION", "Unknown customer option type "+string(typ))
	}
	return &Option{
		StoreEntity: shared.NewStoreEntity(storeID),
		Code:        code,
		Type:        typ,
		Active:      true,
	}, nil
}

// OptionValue is a selectable value of a Select, Checkbox or Radio option
type OptionValue struct {
	shared.StoreEntity
	Code         string
	SortOrder    int
	Descriptions shared.DescriptionSet
}

// NewOptionValue creates a customer option value owned by storeID
func NewOptionValue(storeID uuid.UUID, code string) (*OptionValue, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_OPTION_VALUE", "Customer option value code cannot be empty")
	}
	return &OptionValue{
		StoreEntity: shared.NewStoreEntity(storeID),
		Code:        code,
	}, nil
}
