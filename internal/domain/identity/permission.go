package identity

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Authority markers carried by every authenticated principal
const (
	AuthorityAuthenticated = "AUTH"
	RolePrefix             = "ROLE_"
)

// Permission is a named right granted to groups
type Permission struct {
	shared.BaseEntity
	Name     string
	GroupIDs []uuid.UUID
}

// Authorities flattens permissions into the authority set of a principal:
// AUTH followed by ROLE_<name> for each distinct permission name, sorted.
func Authorities(permissions []Permission) []string {
	seen := make(map[string]struct{}, len(permissions))
	roles := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if p.Name == "" {
			continue
		}
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		roles = append(roles, RolePrefix+p.Name)
	}
	sort.Strings(roles)
	return append([]string{AuthorityAuthenticated}, roles...)
}
