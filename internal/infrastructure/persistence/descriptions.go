package persistence

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var descriptionUpdateColumns = []string{
	"language_id", "sort_order", "name", "title", "description", "friendly_url",
	"meta_title", "meta_keywords", "meta_description", "updated_at",
}

// withDescriptions preloads the descriptions at path, in set order, with their languages
func withDescriptions(q *gorm.DB, path string) *gorm.DB {
	return q.Preload(path, func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Preload(path + ".Language")
}

// saveDescriptions upserts set by description ID and links every entry to
// parentID. IDs assigned here are written back into set.
func saveDescriptions(tx *gorm.DB, ownerType string, parentID uuid.UUID, set shared.DescriptionSet) error {
	if len(set) == 0 {
		return nil
	}
	ms := models.DescriptionModelsFromDomain(ownerType, parentID, set)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(descriptionUpdateColumns),
	}).Create(&ms).Error
	if err != nil {
		return errors.Wrapf(err, "save %s descriptions", ownerType)
	}
	for i := range set {
		set[i].ID = ms[i].ID
		set[i].ParentID = parentID
	}
	return nil
}

// deleteDescriptions removes every description of the given owners
func deleteDescriptions(tx *gorm.DB, ownerType string, parentIDs ...uuid.UUID) error {
	if len(parentIDs) == 0 {
		return nil
	}
	err := tx.Where("owner_type = ? AND parent_id IN ?", ownerType, parentIDs).
		Delete(&models.DescriptionModel{}).Error
	return errors.Wrapf(err, "delete %s descriptions", ownerType)
}

// nameLike restricts q to owners having a description whose name contains name
func nameLike(q *gorm.DB, ownerType, table, name string) *gorm.DB {
	if name == "" {
		return q
	}
	return q.Where(
		"EXISTS (SELECT 1 FROM descriptions d WHERE d.owner_type = ? AND d.parent_id = "+table+".id AND LOWER(d.name) LIKE ?)",
		ownerType, containsPattern(name),
	)
}
