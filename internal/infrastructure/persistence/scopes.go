package persistence

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// StoreScope restricts a query to the records owned by one store
func StoreScope(storeID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("store_id = ?", storeID)
	}
}

// PageScope applies offset and limit for page. An unpaged request is not limited.
func PageScope(page shared.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Unpaged() {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Limit())
	}
}

// containsPattern builds a case-insensitive LIKE pattern
func containsPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// first loads the first row of q into dest, translating a missing row to shared.ErrNotFound
func first(q *gorm.DB, dest any, what string) error {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return errors.Wrapf(err, "find %s", what)
}

// findOne loads the single row matching q. More than one match is a data
// integrity error, never silently resolved to the first.
func findOne[M any](q *gorm.DB, what string) (*M, error) {
	var rows []M
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "find %s", what)
	}
	switch len(rows) {
	case 0:
		return nil, shared.ErrNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, shared.ErrDataIntegrity.WithMessage("More than one %s matches", what)
	}
}

// exists reports whether q matches at least one row of model
func exists(q *gorm.DB, model any, what string) (bool, error) {
	var count int64
	if err := q.Model(model).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "check %s exists", what)
	}
	return count > 0, nil
}
