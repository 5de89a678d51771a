package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// CustomerConverter converts customers with their addresses, attributes and groups
type CustomerConverter struct {
	opts mapper.Options
}

// NewCustomerConverter creates a CustomerConverter. Attribute names use an
// exact language match by default.
func NewCustomerConverter(opts ...mapper.Option) *CustomerConverter {
	return &CustomerConverter{opts: mapper.NewOptions(shared.LocaleExactOnly, opts...)}
}

// Convert implements mapper.ReadableConverter
func (c *CustomerConverter) Convert(ctx context.Context, source *customer.Customer, store *merchant.Store, lang *reference.Language) (*ReadableCustomer, error) {
	return c.Merge(ctx, source, &ReadableCustomer{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (c *CustomerConverter) Merge(_ context.Context, source *customer.Customer, target *ReadableCustomer, store *merchant.Store, lang *reference.Language) (*ReadableCustomer, error) {
	if err := mapper.RequireSource(source, "Customer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Customer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	target.ID = source.ID
	target.Nick = source.Nick
	target.EmailAddress = source.EmailAddress
	target.Gender = string(source.Gender)
	target.DateOfBirth = source.DateOfBirth
	target.Company = source.Company
	target.Language = source.DefaultLanguageCode
	target.Store = store.Code

	if !source.Billing.IsEmpty() {
		target.Billing = toReadableAddress(source.Billing)
	}
	if !source.Delivery.IsEmpty() {
		target.Delivery = toReadableAddress(source.Delivery)
	}

	if len(source.Attributes) > 0 {
		target.Attributes = make([]ReadableAttribute, 0, len(source.Attributes))
		for _, a := range source.Attributes {
			target.Attributes = append(target.Attributes, c.attribute(a, lang))
		}
	}

	if len(source.Groups) > 0 {
		target.Groups = toReadableGroups(source.Groups)
	}
	return target, nil
}

func (c *CustomerConverter) attribute(a customer.Attribute, lang *reference.Language) ReadableAttribute {
	out := ReadableAttribute{ID: a.ID, TextValue: a.TextValue}
	out.Option.ID = a.OptionID
	if a.Option != nil {
		out.Option.Code = a.Option.Code
		out.Option.Type = string(a.Option.Type)
		out.Option.Name = mapper.ProjectDescription(a.Option.Descriptions, lang, c.opts.LocalePolicy).Name
	}
	if a.OptionValueID != nil {
		value := &ReadableOptionValueRef{ID: *a.OptionValueID}
		if a.OptionValue != nil {
			value.Code = a.OptionValue.Code
			value.Name = mapper.ProjectDescription(a.OptionValue.Descriptions, lang, c.opts.LocalePolicy).Name
		}
		out.OptionValue = value
	}
	return out
}

func toReadableAddress(a *customer.Address) *ReadableAddress {
	return &ReadableAddress{
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Company:       a.Company,
		Address:       a.Street,
		City:          a.City,
		PostalCode:    a.PostalCode,
		Phone:         a.Phone,
		Country:       a.CountryCode,
		Zone:          a.ZoneCode,
		StateProvince: a.StateProvince,
	}
}

func toReadableGroups(groups []identity.Group) []ReadableGroup {
	out := make([]ReadableGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, ReadableGroup{ID: g.ID, Name: g.Name, Type: string(g.Type)})
	}
	return out
}

// CustomerMerger applies PersistableCustomer payloads, resolving languages,
// countries, zones, customer options and groups
type CustomerMerger struct {
	languages    mapper.LanguageResolver
	countries    reference.CountryRepository
	options      customer.OptionRepository
	optionValues customer.OptionValueRepository
	groups       identity.GroupRepository
	encoder      identity.PasswordEncoder
}

// NewCustomerMerger creates a CustomerMerger
func NewCustomerMerger(
	languages mapper.LanguageResolver,
	countries reference.CountryRepository,
	options customer.OptionRepository,
	optionValues customer.OptionValueRepository,
	groups identity.GroupRepository,
	encoder identity.PasswordEncoder,
) *CustomerMerger {
	return &CustomerMerger{
		languages:    languages,
		countries:    countries,
		options:      options,
		optionValues: optionValues,
		groups:       groups,
		encoder:      encoder,
	}
}

// Merge implements mapper.PersistableMerger
func (m *CustomerMerger) Merge(ctx context.Context, source *PersistableCustomer, target *customer.Customer, store *merchant.Store, lang *reference.Language) (*customer.Customer, error) {
	if err := mapper.RequireSource(source, "Customer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireTarget(target, "Customer"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(source.EmailAddress))
	if email == "" {
		return nil, shared.NewValidationError("INVALID_EMAIL", "Customer email address cannot be empty")
	}
	target.EmailAddress = email
	if nick := strings.TrimSpace(source.Nick); nick != "" {
		target.Nick = nick
	} else if target.Nick == "" {
		target.Nick = email
	}

	if source.Password != "" {
		if err := identity.ValidatePassword(source.Password); err != nil {
			return nil, err
		}
		hash, err := m.encoder.Encode(source.Password)
		if err != nil {
			return nil, shared.NewServiceError("Cannot encode customer password", err)
		}
		target.PasswordHash = hash
	}

	if source.Gender != nil {
		switch g := customer.Gender(*source.Gender); g {
		case "", customer.GenderMale, customer.GenderFemale:
			target.Gender = g
		default:
			return nil, shared.NewValidationError("INVALID_GENDER", "Unknown gender "+*source.Gender)
		}
	}
	if source.DateOfBirth != nil {
		target.DateOfBirth = source.DateOfBirth
	}
	mapper.Patch(&target.Company, source.Company)

	if source.Language != "" {
		l, err := mapper.ResolveLanguage(ctx, m.languages, source.Language)
		if err != nil {
			return nil, err
		}
		target.DefaultLanguageID = &l.ID
		target.DefaultLanguageCode = l.Code
	} else if target.DefaultLanguageID == nil {
		id := lang.ID
		target.DefaultLanguageID = &id
		target.DefaultLanguageCode = lang.Code
	}

	if source.Billing != nil {
		addr, err := m.address(ctx, source.Billing)
		if err != nil {
			return nil, err
		}
		target.Billing = addr
	}
	if source.Delivery != nil {
		addr, err := m.address(ctx, source.Delivery)
		if err != nil {
			return nil, err
		}
		target.Delivery = addr
	}

	for _, a := range source.Attributes {
		attr, err := m.attribute(ctx, store.ID, a)
		if err != nil {
			return nil, err
		}
		target.SetAttribute(attr)
	}

	if len(source.Groups) > 0 {
		groups, err := m.resolveGroups(ctx, source.Groups)
		if err != nil {
			return nil, err
		}
		target.Groups = groups
	}

	target.Touch()
	return target, nil
}

func (m *CustomerMerger) address(ctx context.Context, src *PersistableAddress) (*customer.Address, error) {
	country, err := m.countries.FindByIsoCode(ctx, strings.ToUpper(strings.TrimSpace(src.Country)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("INVALID_COUNTRY", "Country "+src.Country+" not found")
		}
		return nil, err
	}
	addr := &customer.Address{
		FirstName:     src.FirstName,
		LastName:      src.LastName,
		Company:       src.Company,
		Street:        src.Address,
		City:          src.City,
		PostalCode:    src.PostalCode,
		Phone:         src.Phone,
		CountryCode:   country.IsoCode,
		StateProvince: src.StateProvince,
	}
	if src.Zone == "" {
		return addr, nil
	}
	if zone, ok := country.ZoneByCode(src.Zone); ok {
		addr.ZoneCode = zone.Code
		return addr, nil
	}
	if len(country.Zones) > 0 {
		return nil, shared.NewValidationError("INVALID_ZONE", "Zone "+src.Zone+" not found in country "+country.IsoCode)
	}
	// countries without a zone list keep free text
	addr.StateProvince = src.Zone
	return addr, nil
}

func (m *CustomerMerger) attribute(ctx context.Context, storeID uuid.UUID, src PersistableAttribute) (customer.Attribute, error) {
	option, err := m.options.FindByCode(ctx, storeID, src.Option)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return customer.Attribute{}, shared.NewValidationError("INVALID_CUSTOMER_OPTION", "Customer option "+src.Option+" not found")
		}
		return customer.Attribute{}, err
	}
	attr := customer.Attribute{OptionID: option.ID, Option: option, TextValue: src.TextValue}
	if src.OptionValue != "" {
		value, err := m.optionValues.FindByCode(ctx, storeID, src.OptionValue)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return customer.Attribute{}, shared.NewValidationError("INVALID_CUSTOMER_OPTION_VALUE", "Customer option value "+src.OptionValue+" not found")
			}
			return customer.Attribute{}, err
		}
		attr.OptionValueID = &value.ID
		attr.OptionValue = value
	}
	return attr, nil
}

func (m *CustomerMerger) resolveGroups(ctx context.Context, names []string) ([]identity.Group, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
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
	for _, name := range unique {
		g, ok := byName[name]
		if !ok {
			return nil, shared.NewValidationError("INVALID_GROUP", "Group "+name+" not found")
		}
		if g.Type != identity.GroupTypeCustomer {
			return nil, shared.NewValidationError("INVALID_GROUP", "Group "+name+" is not a customer group")
		}
		out = append(out, g)
	}
	return out, nil
}
