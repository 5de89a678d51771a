package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerOptionRepository implements customer.OptionRepository using GORM
type GormCustomerOptionRepository struct {
	db *gorm.DB
}

// NewGormCustomerOptionRepository creates a new GormCustomerOptionRepository
func NewGormCustomerOptionRepository(db *gorm.DB) *GormCustomerOptionRepository {
	return &GormCustomerOptionRepository{db: db}
}

// FindByID finds a customer option with descriptions
func (r *GormCustomerOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Option, error) {
	var model models.CustomerOptionModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").Where("id = ?", id)
	if err := first(q, &model, "customer option"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a customer option by code within a store
func (r *GormCustomerOptionRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*customer.Option, error) {
	var model models.CustomerOptionModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").Scopes(StoreScope(storeID)).Where("code = ?", code)
	if err := first(q, &model, "customer option"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every customer option of a store
func (r *GormCustomerOptionRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]customer.Option, error) {
	return r.find(ctx, storeID, shared.PageRequest{})
}

// FindPage returns one page of customer options plus the total
func (r *GormCustomerOptionRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]customer.Option, int64, error) {
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

func (r *GormCustomerOptionRepository) find(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]customer.Option, error) {
	var ms []models.CustomerOptionModel
	err := withDescriptions(r.db.WithContext(ctx), "Descriptions").
		Scopes(StoreScope(storeID), PageScope(page)).
		Order("sort_order, code").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find customer options")
	}
	options := make([]customer.Option, 0, len(ms))
	for i := range ms {
		options = append(options, *ms[i].ToDomain())
	}
	return options, nil
}

// Count counts the customer options of a store
func (r *GormCustomerOptionRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerOptionModel{}).Scopes(StoreScope(storeID)).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count customer options")
	}
	return count, nil
}

// ExistsByCode checks whether a code is taken in a store
func (r *GormCustomerOptionRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	return exists(q, &models.CustomerOptionModel{}, "customer option")
}

// Save creates or updates a customer option and upserts its descriptions
func (r *GormCustomerOptionRepository) Save(ctx context.Context, option *customer.Option) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CustomerOptionModel
		model.FromDomain(option)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save customer option")
		}
		return saveDescriptions(tx, models.OwnerCustomerOption, option.ID, option.Descriptions)
	})
}

// Delete removes a customer option, its descriptions and the attributes using it
func (r *GormCustomerOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_id = ?", id).Delete(&models.CustomerAttributeModel{}).Error; err != nil {
			return errors.Wrap(err, "delete customer option attributes")
		}
		if err := deleteDescriptions(tx, models.OwnerCustomerOption, id); err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerOptionModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete customer option")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GormCustomerOptionValueRepository implements customer.OptionValueRepository using GORM
type GormCustomerOptionValueRepository struct {
	db *gorm.DB
}

// NewGormCustomerOptionValueRepository creates a new GormCustomerOptionValueRepository
func NewGormCustomerOptionValueRepository(db *gorm.DB) *GormCustomerOptionValueRepository {
	return &GormCustomerOptionValueRepository{db: db}
}

// FindByID finds a customer option value with descriptions
func (r *GormCustomerOptionValueRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.OptionValue, error) {
	var model models.CustomerOptionValueModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").Where("id = ?", id)
	if err := first(q, &model, "customer option value"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a customer option value by code within a store
func (r *GormCustomerOptionValueRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*customer.OptionValue, error) {
	var model models.CustomerOptionValueModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").Scopes(StoreScope(storeID)).Where("code = ?", code)
	if err := first(q, &model, "customer option value"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every customer option value of a store
func (r *GormCustomerOptionValueRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]customer.OptionValue, error) {
	return r.find(ctx, storeID, shared.PageRequest{})
}

// FindPage returns one page of customer option values plus the total
func (r *GormCustomerOptionValueRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]customer.OptionValue, int64, error) {
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

func (r *GormCustomerOptionValueRepository) find(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]customer.OptionValue, error) {
	var ms []models.CustomerOptionValueModel
	err := withDescriptions(r.db.WithContext(ctx), "Descriptions").
		Scopes(StoreScope(storeID), PageScope(page)).
		Order("sort_order, code").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find customer option values")
	}
	values := make([]customer.OptionValue, 0, len(ms))
	for i := range ms {
		values = append(values, *ms[i].ToDomain())
	}
	return values, nil
}

// Count counts the customer option values of a store
func (r *GormCustomerOptionValueRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerOptionValueModel{}).Scopes(StoreScope(storeID)).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count customer option values")
	}
	return count, nil
}

// ExistsByCode checks whether a code is taken in a store
func (r *GormCustomerOptionValueRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	return exists(q, &models.CustomerOptionValueModel{}, "customer option value")
}

// Save creates or updates a customer option value and upserts its descriptions
func (r *GormCustomerOptionValueRepository) Save(ctx context.Context, value *customer.OptionValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CustomerOptionValueModel
		model.FromDomain(value)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save customer option value")
		}
		return saveDescriptions(tx, models.OwnerCustomerOptionValue, value.ID, value.Descriptions)
	})
}

// Delete removes a customer option value and its descriptions
func (r *GormCustomerOptionValueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.CustomerAttributeModel{}).
			Where("option_value_id = ?", id).
			Update("option_value_id", nil).Error
		if err != nil {
			return errors.Wrap(err, "detach customer option value")
		}
		if err := deleteDescriptions(tx, models.OwnerCustomerOptionValue, id); err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerOptionValueModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete customer option value")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
