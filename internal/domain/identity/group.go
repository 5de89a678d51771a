package identity

import (
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// GroupType separates administration groups from customer groups
type GroupType string

const (
	GroupTypeAdmin    GroupType = "ADMIN"
	GroupTypeCustomer GroupType = "CUSTOMER"
)

// Well-known group names
const (
	GroupSuperAdmin   = "SUPERADMIN"
	GroupAdmin        = "ADMIN"
	GroupAdminCatalog = "ADMIN_CATALOGUE"
	GroupAdminStore   = "ADMIN_STORE"
	GroupAdminOrder   = "ADMIN_ORDER"
	GroupAdminContent = "ADMIN_CONTENT"
	GroupCustomer     = "CUSTOMER"
)

// Group is a named set of permissions users or customers are members of
type Group struct {
	shared.BaseEntity
	Name string
	Type GroupType
}

// NewGroup creates a group
func NewGroup(name string, typ GroupType) (*Group, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_GROUP", "Group name cannot be empty")
	}
	if typ != GroupTypeAdmin && typ != GroupTypeCustomer {
		return nil, shared.NewValidationError("INVALID_GROUP", "Group type must be ADMIN or CUSTOMER")
	}
	return &Group{BaseEntity: shared.NewBaseEntity(), Name: name, Type: typ}, nil
}

func groupIDs(groups []Group) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// GroupIDs returns the ids of groups in order
func GroupIDs(groups []Group) []uuid.UUID {
	return groupIDs(groups)
}
