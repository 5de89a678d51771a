package models

import (
	"time"

	"github.com/shopizer/backend/internal/domain/identity"
)

// GroupModel is the persistence model for the Group entity
type GroupModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts the persistence model to a domain Group
func (m *GroupModel) ToDomain() identity.Group {
	return identity.Group{
		BaseEntity: m.BaseModel.Entity(),
		Name:       m.Name,
		Type:       identity.GroupType(m.Type),
	}
}

// FromDomain populates the persistence model from a domain Group
func (m *GroupModel) FromDomain(g *identity.Group) {
	m.SetEntity(g.BaseEntity)
	m.Name = g.Name
	m.Type = string(g.Type)
}

// GroupsToDomain converts group models to domain groups
func GroupsToDomain(ms []GroupModel) []identity.Group {
	groups := make([]identity.Group, 0, len(ms))
	for i := range ms {
		groups = append(groups, ms[i].ToDomain())
	}
	return groups
}

// GroupModelsFromDomain creates persistence models for groups
func GroupModelsFromDomain(groups []identity.Group) []GroupModel {
	ms := make([]GroupModel, 0, len(groups))
	for i := range groups {
		var m GroupModel
		m.FromDomain(&groups[i])
		ms = append(ms, m)
	}
	return ms
}

// PermissionModel is the persistence model for the Permission entity
type PermissionModel struct {
	BaseModel
	Name   string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Groups []GroupModel `gorm:"many2many:group_permissions;joinForeignKey:PermissionID;joinReferences:GroupID"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}

// ToDomain converts the persistence model to a domain Permission
func (m *PermissionModel) ToDomain() identity.Permission {
	p := identity.Permission{
		BaseEntity: m.BaseModel.Entity(),
		Name:       m.Name,
	}
	for _, g := range m.Groups {
		p.GroupIDs = append(p.GroupIDs, g.ID)
	}
	return p
}

// UserModel is the persistence model for the administration User entity
type UserModel struct {
	StoreOwnedModel
	Store               *StoreModel  `gorm:"foreignKey:StoreID"`
	Username            string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email               string       `gorm:"type:varchar(100)"`
	FirstName           string       `gorm:"type:varchar(100)"`
	LastName            string       `gorm:"type:varchar(100)"`
	PasswordHash        string       `gorm:"type:varchar(255);not null"`
	Active              bool         `gorm:"not null;default:true"`
	DefaultLanguageCode string       `gorm:"type:varchar(10)"`
	Groups              []GroupModel `gorm:"many2many:user_groups;joinForeignKey:UserID;joinReferences:GroupID"`
	LastAccess          *time.Time
	LoginAccess         *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
// StoreCode is only set when Store was preloaded.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		StoreEntity:         m.ToStoreEntity(),
		Username:            m.Username,
		Email:               m.Email,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		PasswordHash:        m.PasswordHash,
		Active:              m.Active,
		DefaultLanguageCode: m.DefaultLanguageCode,
		Groups:              GroupsToDomain(m.Groups),
		LastAccess:          m.LastAccess,
		LoginAccess:         m.LoginAccess,
	}
	if m.Store != nil {
		u.StoreCode = m.Store.Code
	}
	return u
}

// FromDomain populates the persistence model from a domain User.
// Group memberships are persisted through the association.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromStoreEntity(u.StoreEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.PasswordHash = u.PasswordHash
	m.Active = u.Active
	m.DefaultLanguageCode = u.DefaultLanguageCode
	m.LastAccess = u.LastAccess
	m.LoginAccess = u.LoginAccess
}
