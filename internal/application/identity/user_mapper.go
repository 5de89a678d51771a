package identity

import (
	"context"
	"strings"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// UserConverter converts administration users with their authorities
type UserConverter struct {
	permissions identity.PermissionRepository
}

// NewUserConverter creates a UserConverter
func NewUserConverter(permissions identity.PermissionRepository) *UserConverter {
	return &UserConverter{permissions: permissions}
}

// Convert implements mapper.ReadableConverter
func (c *UserConverter) Convert(ctx context.Context, source *identity.User, store *merchant.Store, lang *reference.Language) (*ReadableUser, error) {
	return c.Merge(ctx, source, &ReadableUser{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *UserConverter) Merge(ctx context.Context, source *identity.User, target *ReadableUser, store *merchant.Store, lang *reference.Language) (*ReadableUser, error) {
	if err := mapper.RequireSource(source, "User"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "User"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.UserName = source.Username
	target.EmailAddress = source.Email
	target.FirstName = source.FirstName
	target.LastName = source.LastName
	target.DefaultLanguage = source.DefaultLanguageCode
	target.Active = source.Active
	target.Merchant = source.StoreCode
	target.LastAccess = source.LastAccess
	target.LoginAccess = source.LoginAccess

	target.Groups = make([]ReadableGroup, 0, len(source.Groups))
	for _, g := range source.Groups {
		target.Groups = append(target.Groups, ReadableGroup{ID: g.ID, Name: g.Name, Type: string(g.Type)})
	}
	authorities, err := loadAuthorities(ctx, c.permissions, source.GroupIDs())
	if err != nil {
		return nil, shared.NewConversionError("Cannot load permissions of user "+source.Username, err)
	}
	target.Permissions = authorities
	return target, nil
}

// UserMerger applies PersistableUser payloads
type UserMerger struct {
	languages mapper.LanguageResolver
	groups    identity.GroupRepository
	encoder   identity.PasswordEncoder
}

// NewUserMerger creates a UserMerger
func NewUserMerger(languages mapper.LanguageResolver, groups identity.GroupRepository, encoder identity.PasswordEncoder) *UserMerger {
	return &UserMerger{languages: languages, groups: groups, encoder: encoder}
}

// Merge implements mapper.PersistableMerger. An empty password keeps the
// current credential.
func (m *UserMerger) Merge(ctx context.Context, source *PersistableUser, target *identity.User, store *merchant.Store, lang *reference.Language) (*identity.User, error) {
	if err := mapper.RequireSource(source, "User"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "User"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	if err := identity.ValidateUsername(source.UserName); err != nil {
		return nil, err
	}
	target.Username = strings.TrimSpace(source.UserName)
	if source.EmailAddress != nil {
		if err := target.SetEmail(*source.EmailAddress); err != nil {
			return nil, err
		}
	}
	mapper.Patch(&target.FirstName, source.FirstName)
	mapper.Patch(&target.LastName, source.LastName)
	mapper.Patch(&target.Active, source.Active)

	switch {
	case source.DefaultLanguage != "":
		l, err := mapper.ResolveLanguage(ctx, m.languages, source.DefaultLanguage)
		if err != nil {
			return nil, err
		}
		target.DefaultLanguageCode = l.Code
	case target.DefaultLanguageCode == "":
		target.DefaultLanguageCode = lang.Code
	}

	if source.Password != "" {
		if err := identity.ValidatePassword(source.Password); err != nil {
			return nil, err
		}
		hash, err := m.encoder.Encode(source.Password)
		if err != nil {
			return nil, shared.NewServiceError("Cannot encode password", err)
		}
		target.PasswordHash = hash
	}

	groups, err := m.resolveGroups(ctx, source.Groups)
	if err != nil {
		return nil, err
	}
	target.SetGroups(groups)
	return target, nil
}

func (m *UserMerger) resolveGroups(ctx context.Context, names []string) ([]identity.Group, error) {
	if len(names) == 0 {
		return nil, shared.NewValidationError("INVALID_GROUP", "A user must belong to at least one group")
	}
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	groups, err := m.groups.FindByNames(ctx, unique)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]identity.Group, len(groups))
	for _, g := range groups {
		byName[g.Name] = g
	}
	out := make([]identity.Group, 0, len(unique))
	for _, n := range unique {
		g, ok := byName[n]
		if !ok {
			return nil, shared.NewValidationError("INVALID_GROUP", "Group "+n+" not found")
		}
		if g.Type != identity.GroupTypeAdmin {
			return nil, shared.NewValidationError("INVALID_GROUP", "Group "+n+" is not an administration group")
		}
		out = append(out, g)
	}
	return out, nil
}
