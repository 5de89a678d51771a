package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch updates the modification timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StoreEntity is an entity owned by a single merchant store
type StoreEntity struct {
	BaseEntity
	StoreID uuid.UUID
}

// NewStoreEntity creates a new store-scoped entity
func NewStoreEntity(storeID uuid.UUID) StoreEntity {
	return StoreEntity{
		BaseEntity: NewBaseEntity(),
		StoreID:    storeID,
	}
}

// GetStoreID returns the owning store ID
func (e *StoreEntity) GetStoreID() uuid.UUID {
	return e.StoreID
}

// BelongsTo reports whether the entity is owned by storeID
func (e *StoreEntity) BelongsTo(storeID uuid.UUID) bool {
	return e.StoreID == storeID
}

// StoreOwned is implemented by every store-scoped entity
type StoreOwned interface {
	GetStoreID() uuid.UUID
}

// EnsureSameStore returns notFound when entity belongs to a different store.
func EnsureSameStore(entity StoreOwned, storeID uuid.UUID, notFound error) error {
	if entity.GetStoreID() != storeID {
		return notFound
	}
	return nil
}
