package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("Store").
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("name") })
}

// FindByID finds a user with groups
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := first(r.preload(r.db.WithContext(ctx)).Where("id = ?", id), &model, "user"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername returns the single user with username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	model, err := findOne[models.UserModel](
		r.preload(r.db.WithContext(ctx)).Where("username = ?", strings.TrimSpace(username)),
		"user",
	)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPage returns one page of users of a store plus the total
func (r *GormUserRepository) FindPage(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]identity.User, int64, error) {
	total, err := r.Count(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	users, err := r.find(ctx, storeID, page)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindAll returns every user of a store
func (r *GormUserRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]identity.User, error) {
	return r.find(ctx, storeID, shared.PageRequest{})
}

func (r *GormUserRepository) find(ctx context.Context, storeID uuid.UUID, page shared.PageRequest) ([]identity.User, error) {
	var ms []models.UserModel
	err := r.preload(r.db.WithContext(ctx)).
		Scopes(StoreScope(storeID), PageScope(page)).
		Order("username").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find users")
	}
	users := make([]identity.User, 0, len(ms))
	for i := range ms {
		users = append(users, *ms[i].ToDomain())
	}
	return users, nil
}

// Count counts the users of a store
func (r *GormUserRepository) Count(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Scopes(StoreScope(storeID)).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return count, nil
}

// ExistsByUsername checks whether a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(r.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)), &models.UserModel{}, "user")
}

// Save creates or updates a user and replaces its group memberships
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.UserModel
		model.FromDomain(user)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save user")
		}
		return errors.Wrap(replaceGroups(tx, &model, user.Groups), "save user groups")
	})
}

// Delete removes a user and its group memberships
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.UserModel{StoreOwnedModel: models.StoreOwnedModel{BaseModel: models.BaseModel{ID: id}}}
		if err := tx.Model(&model).Association("Groups").Clear(); err != nil {
			return errors.Wrap(err, "clear user groups")
		}
		result := tx.Delete(&models.UserModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete user")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// replaceGroups sets the group memberships of owner to exactly groups
func replaceGroups(tx *gorm.DB, owner any, groups []identity.Group) error {
	association := tx.Model(owner).Association("Groups")
	if len(groups) == 0 {
		return association.Clear()
	}
	return association.Replace(models.GroupModelsFromDomain(groups))
}

// GormGroupRepository implements identity.GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// FindByIDs returns the groups with the given ids, ordered by name
func (r *GormGroupRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Group, error) {
	if len(ids) == 0 {
		return []identity.Group{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

// FindByNames returns the groups with the given names, ordered by name
func (r *GormGroupRepository) FindByNames(ctx context.Context, names []string) ([]identity.Group, error) {
	if len(names) == 0 {
		return []identity.Group{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("name IN ?", names))
}

// FindByType returns the groups of one type
func (r *GormGroupRepository) FindByType(ctx context.Context, typ identity.GroupType) ([]identity.Group, error) {
	return r.find(r.db.WithContext(ctx).Where("type = ?", string(typ)))
}

func (r *GormGroupRepository) find(q *gorm.DB) ([]identity.Group, error) {
	var ms []models.GroupModel
	if err := q.Order("name").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find groups")
	}
	return models.GroupsToDomain(ms), nil
}

// Save creates or updates a group
func (r *GormGroupRepository) Save(ctx context.Context, group *identity.Group) error {
	var model models.GroupModel
	model.FromDomain(group)
	return errors.Wrap(r.db.WithContext(ctx).Save(&model).Error, "save group")
}

// GormPermissionRepository implements identity.PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// permissionGrantRow is one (permission, group) pair of the grant join
type permissionGrantRow struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	GroupID   uuid.UUID
}

// FindByGroupIDs loads the permissions granted to any of groupIDs with one
// join over group_permissions. A permission granted to several of the
// groups appears once, carrying every matching group id.
func (r *GormPermissionRepository) FindByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]identity.Permission, error) {
	if len(groupIDs) == 0 {
		return []identity.Permission{}, nil
	}

	var rows []permissionGrantRow
	err := r.db.WithContext(ctx).
		Table("permissions").
		Select("permissions.id, permissions.name, permissions.created_at, permissions.updated_at, group_permissions.group_id").
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Where("group_permissions.group_id IN ?", groupIDs).
		Order("permissions.name, group_permissions.group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "find permissions by groups")
	}

	index := make(map[uuid.UUID]int, len(rows))
	permissions := make([]identity.Permission, 0, len(rows))
	for _, row := range rows {
		if i, ok := index[row.ID]; ok {
			permissions[i].GroupIDs = append(permissions[i].GroupIDs, row.GroupID)
			continue
		}
		index[row.ID] = len(permissions)
		permissions = append(permissions, identity.Permission{
			BaseEntity: shared.BaseEntity{ID: row.ID, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt},
			Name:       row.Name,
			GroupIDs:   []uuid.UUID{row.GroupID},
		})
	}
	return permissions, nil
}

// FindAll returns every permission with its group grants
func (r *GormPermissionRepository) FindAll(ctx context.Context) ([]identity.Permission, error) {
	var ms []models.PermissionModel
	if err := r.db.WithContext(ctx).Preload("Groups").Order("name").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find permissions")
	}
	permissions := make([]identity.Permission, 0, len(ms))
	for i := range ms {
		permissions = append(permissions, ms[i].ToDomain())
	}
	return permissions, nil
}

// Save creates or updates a permission and replaces its group grants
func (r *GormPermissionRepository) Save(ctx context.Context, permission *identity.Permission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PermissionModel{
			BaseModel: models.BaseModel{
				ID:        permission.ID,
				CreatedAt: permission.CreatedAt,
				UpdatedAt: permission.UpdatedAt,
			},
			Name: permission.Name,
		}
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save permission")
		}
		groups := make([]models.GroupModel, 0, len(permission.GroupIDs))
		for _, id := range permission.GroupIDs {
			groups = append(groups, models.GroupModel{BaseModel: models.BaseModel{ID: id}})
		}
		err := tx.Model(&model).Association("Groups").Replace(groups)
		return errors.Wrap(err, "save permission groups")
	})
}
