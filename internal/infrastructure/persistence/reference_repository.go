package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLanguageRepository implements reference.LanguageRepository using GORM
type GormLanguageRepository struct {
	db *gorm.DB
}

// NewGormLanguageRepository creates a new GormLanguageRepository
func NewGormLanguageRepository(db *gorm.DB) *GormLanguageRepository {
	return &GormLanguageRepository{db: db}
}

// FindByID finds a language by ID
func (r *GormLanguageRepository) FindByID(ctx context.Context, id uuid.UUID) (*reference.Language, error) {
	var model models.LanguageModel
	if err := first(r.db.WithContext(ctx).Where("id = ?", id), &model, "language"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a language by its code, case-insensitively
func (r *GormLanguageRepository) FindByCode(ctx context.Context, code string) (*reference.Language, error) {
	var model models.LanguageModel
	q := r.db.WithContext(ctx).Where("code = ?", strings.ToLower(strings.TrimSpace(code)))
	if err := first(q, &model, "language"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every language ordered by sort order
func (r *GormLanguageRepository) FindAll(ctx context.Context) ([]reference.Language, error) {
	var ms []models.LanguageModel
	if err := r.db.WithContext(ctx).Order("sort_order, code").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find languages")
	}
	languages := make([]reference.Language, 0, len(ms))
	for i := range ms {
		languages = append(languages, *ms[i].ToDomain())
	}
	return languages, nil
}

// Save creates or updates a language
func (r *GormLanguageRepository) Save(ctx context.Context, language *reference.Language) error {
	var model models.LanguageModel
	model.FromDomain(language)
	return errors.Wrap(r.db.WithContext(ctx).Save(&model).Error, "save language")
}

// GormCountryRepository implements reference.CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

func (r *GormCountryRepository) preload(q *gorm.DB) *gorm.DB {
	q = withDescriptions(q, "Descriptions")
	q = q.Preload("Zones", func(db *gorm.DB) *gorm.DB { return db.Order("code") })
	return withDescriptions(q, "Zones.Descriptions")
}

// FindByIsoCode finds a country with its descriptions and zones
func (r *GormCountryRepository) FindByIsoCode(ctx context.Context, isoCode string) (*reference.Country, error) {
	var model models.CountryModel
	q := r.preload(r.db.WithContext(ctx)).Where("iso_code = ?", strings.ToUpper(strings.TrimSpace(isoCode)))
	if err := first(q, &model, "country"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every country with descriptions and zones
func (r *GormCountryRepository) FindAll(ctx context.Context) ([]reference.Country, error) {
	var ms []models.CountryModel
	if err := r.preload(r.db.WithContext(ctx)).Order("iso_code").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find countries")
	}
	countries := make([]reference.Country, 0, len(ms))
	for i := range ms {
		countries = append(countries, *ms[i].ToDomain())
	}
	return countries, nil
}

// Save creates or updates a country and its descriptions
func (r *GormCountryRepository) Save(ctx context.Context, country *reference.Country) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CountryModel
		model.FromDomain(country)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save country")
		}
		return saveDescriptions(tx, models.OwnerCountry, country.ID, country.Descriptions)
	})
}

// GormZoneRepository implements reference.ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

func (r *GormZoneRepository) preload(q *gorm.DB) *gorm.DB {
	return withDescriptions(q.Preload("Country"), "Descriptions")
}

// FindByCode finds a zone by its code
func (r *GormZoneRepository) FindByCode(ctx context.Context, code string) (*reference.Zone, error) {
	var model models.ZoneModel
	q := r.preload(r.db.WithContext(ctx)).Where("code = ?", strings.ToUpper(strings.TrimSpace(code)))
	if err := first(q, &model, "zone"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCountry returns the zones of a country ordered by code
func (r *GormZoneRepository) FindByCountry(ctx context.Context, countryIsoCode string) ([]reference.Zone, error) {
	var ms []models.ZoneModel
	err := r.preload(r.db.WithContext(ctx)).
		Joins("JOIN countries ON countries.id = zones.country_id").
		Where("countries.iso_code = ?", strings.ToUpper(strings.TrimSpace(countryIsoCode))).
		Order("zones.code").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find zones by country")
	}
	zones := make([]reference.Zone, 0, len(ms))
	for i := range ms {
		zones = append(zones, *ms[i].ToDomain())
	}
	return zones, nil
}

// Save creates or updates a zone and its descriptions
func (r *GormZoneRepository) Save(ctx context.Context, zone *reference.Zone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ZoneModel
		model.FromDomain(zone)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save zone")
		}
		return saveDescriptions(tx, models.OwnerZone, zone.ID, zone.Descriptions)
	})
}

// GormCurrencyRepository implements reference.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByCode finds a currency by its ISO code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*reference.Currency, error) {
	var model models.CurrencyModel
	q := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(strings.TrimSpace(code)))
	if err := first(q, &model, "currency"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every currency
func (r *GormCurrencyRepository) FindAll(ctx context.Context) ([]reference.Currency, error) {
	var ms []models.CurrencyModel
	if err := r.db.WithContext(ctx).Order("code").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "find currencies")
	}
	currencies := make([]reference.Currency, 0, len(ms))
	for i := range ms {
		currencies = append(currencies, *ms[i].ToDomain())
	}
	return currencies, nil
}
