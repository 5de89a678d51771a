package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/content"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContentRepository implements content.Repository using GORM
type GormContentRepository struct {
	db *gorm.DB
}

// NewGormContentRepository creates a new GormContentRepository
func NewGormContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

func contentsToDomain(ms []models.ContentModel) []content.Content {
	out := make([]content.Content, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out
}

// FindByID finds a content item with descriptions
func (r *GormContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Content, error) {
	var model models.ContentModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").Where("id = ?", id)
	if err := first(q, &model, "content"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a content item by code within a store
func (r *GormContentRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*content.Content, error) {
	var model models.ContentModel
	q := withDescriptions(r.db.WithContext(ctx), "Descriptions").
		Scopes(StoreScope(storeID)).
		Where("code = ?", code)
	if err := first(q, &model, "content"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByType returns the content items of a store with type typ
func (r *GormContentRepository) FindByType(ctx context.Context, storeID uuid.UUID, typ content.Type) ([]content.Content, error) {
	return r.find(ctx, storeID, typ, shared.PageRequest{})
}

// FindPage returns one page of content items of type typ plus the total
func (r *GormContentRepository) FindPage(ctx context.Context, storeID uuid.UUID, typ content.Type, page shared.PageRequest) ([]content.Content, int64, error) {
	total, err := r.Count(ctx, storeID, typ)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.find(ctx, storeID, typ, page)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormContentRepository) find(ctx context.Context, storeID uuid.UUID, typ content.Type, page shared.PageRequest) ([]content.Content, error) {
	var ms []models.ContentModel
	err := withDescriptions(r.db.WithContext(ctx), "Descriptions").
		Scopes(StoreScope(storeID), PageScope(page)).
		Where("type = ?", string(typ)).
		Order("sort_order, code").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find content")
	}
	return contentsToDomain(ms), nil
}

// Count counts the content items of a store with type typ
func (r *GormContentRepository) Count(ctx context.Context, storeID uuid.UUID, typ content.Type) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContentModel{}).
		Scopes(StoreScope(storeID)).
		Where("type = ?", string(typ)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count content")
	}
	return count, nil
}

// ExistsByCode checks whether a code is taken in a store
func (r *GormContentRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	q := r.db.WithContext(ctx).Scopes(StoreScope(storeID)).Where("code = ?", code)
	return exists(q, &models.ContentModel{}, "content")
}

// Save creates or updates a content item and upserts its descriptions
func (r *GormContentRepository) Save(ctx context.Context, c *content.Content) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ContentModel
		model.FromDomain(c)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save content")
		}
		return saveDescriptions(tx, models.OwnerContent, c.ID, c.Descriptions)
	})
}

// Delete removes a content item and its descriptions
func (r *GormContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDescriptions(tx, models.OwnerContent, id); err != nil {
			return err
		}
		result := tx.Delete(&models.ContentModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete content")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
