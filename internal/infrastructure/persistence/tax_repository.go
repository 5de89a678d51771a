package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/domain/tax"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaxClassRepository implements tax.TaxClassRepository using GORM
type GormTaxClassRepository struct {
	db *gorm.DB
}

// NewGormTaxClassRepository creates a new GormTaxClassRepository
func NewGormTaxClassRepository(db *gorm.DB) *GormTaxClassRepository {
	return &GormTaxClassRepository{db: db}
}

// FindByID finds a tax class by ID
func (r *GormTaxClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*tax.TaxClass, error) {
	var model models.TaxClassModel
	if err := first(r.db.WithContext(ctx).Where("id = ?", id), &model, "tax class"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a tax class by code within a store
func (r *GormTaxClassRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*tax.TaxClass, error) {
	var model models.TaxClassModel
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	if err := first(q, &model, "tax class"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every tax class of a store
func (r *GormTaxClassRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]tax.TaxClass, error) {
	return r.find(ctx, storeID, shared.PageRequest{})
}

// FindPage returns one page of tax classes plus the total
func (r *GormTaxClassRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]tax.TaxClass, int64, error) {
	total, err := r.Count(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.find(ctx, storeID, page)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormTaxClassRepository) find(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]tax.TaxClass, error) {
	var ms []models.TaxClassModel
	err := r.db.WithContext(ctx).Scopes(StoreScope(storeID), PageScope(page)).Order("code").Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find tax classes")
	}
	classes := make([]tax.TaxClass, 0, len(ms))
	for i := range ms {
		classes = append(classes, *ms[i].ToDomain())
	}
	return classes, nil
}

// Count counts the tax classes of a store
func (r *GormTaxClassRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TaxClassModel{}).Scopes(StoreScope(storeID)).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count tax classes")
	}
	return count, nil
}

// ExistsByCode checks whether a code is taken in a store
func (r *GormTaxClassRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	return exists(q, &models.TaxClassModel{}, "tax class")
}

// Save creates or updates a tax class
func (r *GormTaxClassRepository) Save(ctx context.Context, class *tax.TaxClass) error {
	var model models.TaxClassModel
	model.FromDomain(class)
	return errors.Wrap(r.db.WithContext(ctx).Save(&model).Error, "save tax class")
}

// Delete removes a tax class
func (r *GormTaxClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TaxClassModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete tax class")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormTaxRateRepository implements tax.TaxRateRepository using GORM
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

func (r *GormTaxRateRepository) preload(q *gorm.DB) *gorm.DB {
	return withDescriptions(q, "Descriptions").
		Preload("TaxClass").
		Preload("Country").
		Preload("Zone")
}

// FindByID finds a tax rate with descriptions and tax class
func (r *GormTaxRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*tax.TaxRate, error) {
	var model models.TaxRateModel
	if err := first(r.preload(r.db.WithContext(ctx)).Where("id = ?", id), &model, "tax rate"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a tax rate by code within a store
func (r *GormTaxRateRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*tax.TaxRate, error) {
	var model models.TaxRateModel
	q := r.preload(r.db.WithContext(ctx)).Scopes(StoreScope(storeID)).Where("code = ?", code)
	if err := first(q, &model, "tax rate"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every tax rate of a store ordered by priority
func (r *GormTaxRateRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]tax.TaxRate, error) {
	return r.find(ctx, storeID, shared.PageRequest{})
}

// FindPage returns one page of tax rates plus the total
func (r *GormTaxRateRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]tax.TaxRate, int64, error) {
	total, err := r.Count(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.find(ctx, storeID, page)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormTaxRateRepository) find(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]tax.TaxRate, error) {
	var ms []models.TaxRateModel
	err := r.preload(r.db.WithContext(ctx)).
		Scopes(StoreScope(storeID), PageScope(page)).
		Order("priority, code").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find tax rates")
	}
	rates := make([]tax.TaxRate, 0, len(ms))
	for i := range ms {
		rates = append(rates, *ms[i].ToDomain())
	}
	return rates, nil
}

// Count counts the tax rates of a store
func (r *GormTaxRateRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TaxRateModel{}).Scopes(StoreScope(storeID)).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count tax rates")
	}
	return count, nil
}

// ExistsByCode checks whether a code is taken in a store
func (r *GormTaxRateRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	return exists(q, &models.TaxRateModel{}, "tax rate")
}

// Save creates or updates a tax rate and upserts its descriptions
func (r *GormTaxRateRepository) Save(ctx context.Context, rate *tax.TaxRate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.TaxRateModel
		model.FromDomain(rate)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save tax rate")
		}
		return saveDescriptions(tx, models.OwnerTaxRate, rate.ID, rate.Descriptions)
	})
}

// Delete removes a tax rate and its descriptions
func (r *GormTaxRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDescriptions(tx, models.OwnerTaxRate, id); err != nil {
			return err
		}
		result := tx.Delete(&models.TaxRateModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete tax rate")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
