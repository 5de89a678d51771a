package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// BaseModel holds the identity and audit columns shared by every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) Entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) SetEntity(e shared.BaseEntity) {
	*m = BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// StoreOwnedModel adds the owning store to tables of store-scoped entities
type StoreOwnedModel struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (m *StoreOwnedModel) ToStoreEntity() shared.StoreEntity {
	return shared.StoreEntity{
		BaseEntity: m.BaseModel.Entity(),
		StoreID:    m.StoreID,
	}
}

func (m *StoreOwnedModel) FromStoreEntity(e shared.StoreEntity) {
	m.SetEntity(e.BaseEntity)
	m.StoreID = e.StoreID
}

// All lists every model with referenced tables first, the order AutoMigrate
// needs in sqlite-backed tests.
func All() []any {
	return []any{
		&LanguageModel{},
		&CurrencyModel{},
		&CountryModel{},
		&ZoneModel{},
		&DescriptionModel{},
		&StoreModel{},
		&StoreConfigurationModel{},
		&GroupModel{},
		&PermissionModel{},
		&UserModel{},
		&ManufacturerModel{},
		&TaxClassModel{},
		&TaxRateModel{},
		&ProductModel{},
		&CustomerOptionModel{},
		&CustomerOptionValueModel{},
		&CustomerModel{},
		&CustomerAddressModel{},
		&CustomerAttributeModel{},
		&ContentModel{},
	}
}
