package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormManufacturerRepository implements catalog.ManufacturerRepository using GORM
type GormManufacturerRepository struct {
	db *gorm.DB
}

// NewGormManufacturerRepository creates a new GormManufacturerRepository
func NewGormManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{db: db}
}

func (r *GormManufacturerRepository) filtered(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.ManufacturerModel{}).Scopes(StoreScope(storeID))
	if criteria.Code != "" {
		q = q.Where("code = ?", criteria.Code)
	}
	return nameLike(q, models.OwnerManufacturer, "manufacturers", criteria.Name)
}

func manufacturersToDomain(ms []models.ManufacturerModel) []catalog.Manufacturer {
	out := make([]catalog.Manufacturer, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out
}

// FindByID finds a manufacturer with descriptions
func (r *GormManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	var model models.ManufacturerModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").Where("id = ?", id)
	if err := first(q, &model, "manufacturer"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a manufacturer by code within a store
func (r *GormManufacturerRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*catalog.Manufacturer, error) {
	var model models.ManufacturerModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").
		Scopes(StoreScope(storeID)).
		Where("code = ?", code)
	if err := first(q, &model, "manufacturer"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every manufacturer of a store matching criteria
func (r *GormManufacturerRepository) FindAll(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria) ([]catalog.Manufacturer, error) {
	return r.find(ctx, storeID, criteria, shared.PageRequest{})
}

// FindPage returns one page of manufacturers plus the total match count
func (r *GormManufacturerRepository) FindPage(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria, page shared.PageRequest) ([]catalog.Manufacturer, int64, error) {
	total, err := r.Count(ctx, storeID, criteria)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.find(ctx, storeID, criteria, page)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormManufacturerRepository) find(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria, page shared.PageRequest) ([]catalog.Manufacturer, error) {
	var ms []models.ManufacturerModel
	err := withDescriptions(r.filtered(ctx, storeID, criteria), "Descriptions").
		Scopes(PageScope(page)).
		Order("sort_order, code").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find manufacturers")
	}
	return manufacturersToDomain(ms), nil
}

// Count counts manufacturers matching criteria
func (r *GormManufacturerRepository) Count(ctx context.Context, storeID uuid.UUID, criteria catalog.ManufacturerCriteria) (int64, error) {
	var count int64
	if err := r.filtered(ctx, storeID, criteria).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count manufacturers")
	}
	return count, nil
}

// ExistsByCode checks whether a code is taken in a store
func (r *GormManufacturerRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	return exists(q, &models.ManufacturerModel{}, "manufacturer")
}

// Save creates or updates a manufacturer and upserts its descriptions
func (r *GormManufacturerRepository) Save(ctx context.Context, m *catalog.Manufacturer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ManufacturerModel
		model.FromDomain(m)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save manufacturer")
		}
		return saveDescriptions(tx, models.OwnerManufacturer, m.ID, m.Descriptions)
	})
}

// Delete removes a manufacturer and its descriptions
func (r *GormManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDescriptions(tx, models.OwnerManufacturer, id); err != nil {
			return err
		}
		result := tx.Delete(&models.ManufacturerModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete manufacturer")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountProducts counts products attached to a manufacturer
func (r *GormManufacturerRepository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("manufacturer_id = ?", id).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count manufacturer products")
	}
	return count, nil
}
