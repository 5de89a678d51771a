package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements merchant.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("DefaultLanguage").
		Preload("Languages", func(db *gorm.DB) *gorm.DB { return db.Order("languages.sort_order") })
}

// FindByID finds a store with its languages
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*merchant.Store, error) {
	var model models.StoreModel
	if err := first(r.preload(r.db.WithContext(ctx)).Where("id = ?", id), &model, "store"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a store by its unique code
func (r *GormStoreRepository) FindByCode(ctx context.Context, code string) (*merchant.Store, error) {
	var model models.StoreModel
	if err := first(r.preload(r.db.WithContext(ctx)).Where("code = ?", code), &model, "store"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every store
func (r *GormStoreRepository) FindAll(ctx context.Context) ([]merchant.Store, error) {
	var ms []models.StoreModel
	if err := r.preload(r.db.WithContext(ctx)).Order("code").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find stores")
	}
	stores := make([]merchant.Store, 0, len(ms))
	for i := range ms {
		stores = append(stores, *ms[i].ToDomain())
	}
	return stores, nil
}

// Save creates or updates a store and replaces its language list
func (r *GormStoreRepository) Save(ctx context.Context, store *merchant.Store) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.StoreModel
		model.FromDomain(store)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save store")
		}
		languages := make([]models.LanguageModel, 0, len(store.Languages))
		for i := range store.Languages {
			var lm models.LanguageModel
			lm.FromDomain(&store.Languages[i])
			languages = append(languages, lm)
		}
		err := tx.Model(&model).Association("Languages").Replace(languages)
		return errors.Wrap(err, "save store languages")
	})
}

// ValueCipher encrypts configuration values at rest
type ValueCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// GormConfigurationRepository implements merchant.ConfigurationRepository using GORM.
// Values are encrypted with cipher before they are written.
type GormConfigurationRepository struct {
	db     *gorm.DB
	cipher ValueCipher
}

// NewGormConfigurationRepository creates a new GormConfigurationRepository
func NewGormConfigurationRepository(db *gorm.DB, cipher ValueCipher) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db, cipher: cipher}
}

func (r *GormConfigurationRepository) toDomain(m *models.StoreConfigurationModel) (*merchant.Configuration, error) {
	value := m.Value
	if value != "" {
		plain, err := r.cipher.Decrypt(value)
		if err != nil {
			return nil, errors.Wrapf(err, "decrypt configuration %s", m.Key)
		}
		value = plain
	}
	return m.ToDomain(value), nil
}

// FindByKey finds a configuration entry of a store
func (r *GormConfigurationRepository) FindByKey(ctx context.Context, storeID uuid.UUID, key string) (*merchant.Configuration, error) {
	var model models.StoreConfigurationModel
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("config_key = ?", key)
	if err := first(q, &model, "configuration"); err != nil {
		return nil, err
	}
	return r.toDomain(&model)
}

// FindByStore returns every configuration entry of a store
func (r *GormConfigurationRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]merchant.Configuration, error) {
	var ms []models.StoreConfigurationModel
	if err := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Order("config_key").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find configurations")
	}
	configs := make([]merchant.Configuration, 0, len(ms))
	for i := range ms {
		c, err := r.toDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		configs = append(configs, *c)
	}
	return configs, nil
}

// Save creates or updates a configuration entry
func (r *GormConfigurationRepository) Save(ctx context.Context, cfg *merchant.Configuration) error {
	stored := cfg.Value
	if stored != "" {
		enc, err := r.cipher.Encrypt(stored)
		if err != nil {
			return errors.Wrapf(err, "encrypt configuration %s", cfg.Key)
		}
		stored = enc
	}
	var model models.StoreConfigurationModel
	model.FromDomain(cfg, stored)
	return errors.Wrap(r.db.WithContext(ctx).Save(&model).Error, "save configuration")
}

// Delete removes a configuration entry
func (r *GormConfigurationRepository) Delete(ctx context.Context, storeID uuid.UUID, key string) error {
	err := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).
		Where("config_key = ?", key).
		Delete(&models.StoreConfigurationModel{}).Error
	return errors.Wrap(err, "delete configuration")
}
