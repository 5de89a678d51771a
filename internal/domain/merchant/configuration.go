package merchant

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// ConfigurationType describes how a configuration value is interpreted
type ConfigurationType string

const (
	ConfigurationTypeConfig      ConfigurationType = "CONFIG"
	ConfigurationTypeSocial      ConfigurationType = "SOCIAL"
	ConfigurationTypeIntegration ConfigurationType = "INTEGRATION"
)

// Configuration is a key/value setting of a store. Value is held in
// cleartext in memory and encrypted at rest.
type Configuration struct {
	shared.StoreEntity
	Key   string
	Type  ConfigurationType
	Value string
}

// NewConfiguration creates a store configuration entry
func NewConfiguration(storeID uuid.UUID, key string, typ ConfigurationType, value string) (*Configuration, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewValidationError("INVALID_CONFIGURATION", "Configuration key cannot be empty")
	}
	if typ == "" {
		typ = ConfigurationTypeConfig
	}
	return &Configuration{
		StoreEntity: shared.NewStoreEntity(storeID),
		Key:         key,
		Type:        typ,
		Value:       value,
	}, nil
}
