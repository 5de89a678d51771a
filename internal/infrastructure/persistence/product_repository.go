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

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// preload materializes the full product aggregate: descriptions, tax class
// and the manufacturer with its own descriptions
func (r *GormProductRepository) preload(q *gorm.DB) *gorm.DB {
	q = withDescriptions(q, "Descriptions")
	q = withDescriptions(q.Preload("Manufacturer"), "Manufacturer.Descriptions")
	return q.Preload("TaxClass")
}

func (r *GormProductRepository) filtered(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(StoreScope(storeID))
	if criteria.Sku != "" {
		q = q.Where("sku = ?", criteria.Sku)
	}
	if criteria.ManufacturerID != nil {
		q = q.Where("manufacturer_id = ?", *criteria.ManufacturerID)
	}
	if criteria.AvailableOnly {
		q = q.Where("available = ?", true)
	}
	return nameLike(q, models.OwnerProduct, "products", criteria.Name)
}

// FindByID finds a product with descriptions and manufacturer
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := first(r.preload(r.db.WithContext(ctx)).Where("id = ?", id), &model, "product"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySku finds a product by sku within a store
func (r *GormProductRepository) FindBySku(ctx context.Context, storeID uuid.UUID, sku string) (*catalog.Product, error) {
	var model models.ProductModel
	q := r.preload(r.db.WithContext(ctx)).Scopes(StoreScope(storeID)).Where("sku = ?", sku)
	if err := first(q, &model, "product"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every product of a store matching criteria
func (r *GormProductRepository) FindAll(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria) ([]catalog.Product, error) {
	return r.find(ctx, storeID, criteria, shared.PageRequest{})
}

// FindPage returns one page of products plus the total match count
func (r *GormProductRepository) FindPage(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria, page shared.PageRequest) ([]catalog.Product, int64, error) {
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

func (r *GormProductRepository) find(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria, page shared.PageRequest) ([]catalog.Product, error) {
	var ms []models.ProductModel
	err := r.preload(r.filtered(ctx, storeID, criteria)).
		Scopes(PageScope(page)).
		Order("sort_order, sku").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	products := make([]catalog.Product, 0, len(ms))
	for i := range ms {
		products = append(products, *ms[i].ToDomain())
	}
	return products, nil
}

// Count counts products matching criteria
func (r *GormProductRepository) Count(ctx context.Context, storeID uuid.UUID, criteria catalog.ProductCriteria) (int64, error) {
	var count int64
	if err := r.filtered(ctx, storeID, criteria).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

// ExistsBySku checks whether a sku is taken in a store
func (r *GormProductRepository) ExistsBySku(ctx context.Context, storeID uuid.UUID, sku string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("sku = ?", sku)
	return exists(q, &models.ProductModel{}, "product")
}

// Save creates or updates a product and upserts its descriptions
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ProductModel
		model.FromDomain(p)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save product")
		}
		return saveDescriptions(tx, models.OwnerProduct, p.ID, p.Descriptions)
	})
}

// Delete removes a product and its descriptions
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDescriptions(tx, models.OwnerProduct, id); err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete product")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
