package reference

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/cache"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	cacheLanguages  = "ref:languages"
	cacheCountries  = "ref:countries"
	cacheCurrencies = "ref:currencies"
)

// Service serves reference data. Entities are cached as loaded so every
// store and language shares one entry.
type Service struct {
	languages  reference.LanguageRepository
	countries  reference.CountryRepository
	zones      reference.ZoneRepository
	currencies reference.CurrencyRepository
	cache      cache.Cache
	ttl        time.Duration
	metrics    *telemetry.ShopMetrics
	logger     *zap.Logger

	languageConverter LanguageConverter
	countryConverter  *CountryConverter
	zoneConverter     *ZoneConverter
}

// NewService creates a reference data service. c may be nil to disable caching.
func NewService(
	languages reference.LanguageRepository,
	countries reference.CountryRepository,
	zones reference.ZoneRepository,
	currencies reference.CurrencyRepository,
	c cache.Cache,
	ttl time.Duration,
	metrics *telemetry.ShopMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		languages:        languages,
		countries:        countries,
		zones:            zones,
		currencies:       currencies,
		cache:            c,
		ttl:              ttl,
		metrics:          metrics,
		logger:           logger,
		countryConverter: NewCountryConverter(),
		zoneConverter:    NewZoneConverter(),
	}
}

func (s *Service) allLanguages(ctx context.Context) ([]reference.Language, error) {
	langs, hit, err := cache.GetOrLoad(ctx, s.cache, cacheLanguages, s.ttl, s.languages.FindAll)
	s.metrics.RecordCacheLookup(ctx, cacheLanguages, hit)
	if err != nil {
		s.logger.Error("Failed to load languages", zap.Error(err))
		return nil, shared.NewServiceError("Cannot load languages", err)
	}
	return langs, nil
}

// ResolveLanguage returns the language with code. A malformed or unknown
// code is a validation error.
func (s *Service) ResolveLanguage(ctx context.Context, code string) (*reference.Language, error) {
	normalized, err := reference.NormalizeLanguageCode(code)
	if err != nil {
		return nil, err
	}
	langs, err := s.allLanguages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range langs {
		if strings.EqualFold(langs[i].Code, normalized) {
			return &langs[i], nil
		}
	}
	return nil, shared.NewValidationError("INVALID_LANGUAGE", "Language "+code+" is not supported")
}

// Languages lists every language
func (s *Service) Languages(ctx context.Context, store *merchant.Store, lang *reference.Language) ([]ReadableLanguage, error) {
	langs, err := s.allLanguages(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ConvertAll[reference.Language, ReadableLanguage](ctx, s.languageConverter, langs, store, lang)
}

// Countries lists every country with its zones, named in lang
func (s *Service) Countries(ctx context.Context, store *merchant.Store, lang *reference.Language) ([]ReadableCountry, error) {
	countries, hit, err := cache.GetOrLoad(ctx, s.cache, cacheCountries, s.ttl, s.countries.FindAll)
	s.metrics.RecordCacheLookup(ctx, cacheCountries, hit)
	if err != nil {
		s.logger.Error("Failed to load countries", zap.Error(err))
		return nil, shared.NewServiceError("Cannot load countries", err)
	}
	return mapper.ConvertAll[reference.Country, ReadableCountry](ctx, s.countryConverter, countries, store, lang)
}

// Zones lists the zones of the country with isoCode, named in lang
func (s *Service) Zones(ctx context.Context, store *merchant.Store, lang *reference.Language, isoCode string) ([]ReadableZone, error) {
	isoCode = strings.ToUpper(strings.TrimSpace(isoCode))
	if isoCode == "" {
		return nil, shared.NewInvalidArgumentError("Country code is required")
	}
	key := "ref:zones:" + isoCode
	zones, hit, err := cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]reference.Zone, error) {
		return s.zones.FindByCountry(ctx, isoCode)
	})
	s.metrics.RecordCacheLookup(ctx, "ref:zones", hit)
	if err != nil {
		s.logger.Error("Failed to load zones", zap.String("country", isoCode), zap.Error(err))
		return nil, shared.NewServiceError("Cannot load zones of "+isoCode, err)
	}
	return mapper.ConvertAll[reference.Zone, ReadableZone](ctx, s.zoneConverter, zones, store, lang)
}

// Currencies lists the supported currencies ordered by code
func (s *Service) Currencies(ctx context.Context) ([]ReadableCurrency, error) {
	currencies, hit, err := cache.GetOrLoad(ctx, s.cache, cacheCurrencies, s.ttl, s.currencies.FindAll)
	s.metrics.RecordCacheLookup(ctx, cacheCurrencies, hit)
	if err != nil {
		s.logger.Error("Failed to load currencies", zap.Error(err))
		return nil, shared.NewServiceError("Cannot load currencies", err)
	}
	out := make([]ReadableCurrency, 0, len(currencies))
	for _, c := range currencies {
		if !c.Supported {
			continue
		}
		out = append(out, ReadableCurrency{ID: c.ID, Code: c.Code, Name: c.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
