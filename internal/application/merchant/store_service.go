package merchant

import (
	"context"
	"errors"
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

// StoreConverter converts stores
type StoreConverter struct{}

// Convert implements mapper.ReadableConverter
func (c StoreConverter) Convert(ctx context.Context, source *merchant.Store, store *merchant.Store, lang *reference.Language) (*ReadableStore, error) {
	return c.Merge(ctx, source, &ReadableStore{}, store, lang)
}

// Merge implements mapper.ReadableConverter
func (StoreConverter) Merge(_ context.Context, source *merchant.Store, target *ReadableStore, store *merchant.Store, lang *reference.Language) (*ReadableStore, error) {
	if err := mapper.RequireSource(source, "Store"); err != nil {
		return nil, err
	}
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	target.ID = source.ID
	target.Code = source.Code
	target.Name = source.Name
	target.Email = source.Email
	target.Phone = source.Phone
	target.Currency = source.CurrencyCode
	target.Country = source.CountryCode
	target.Zone = source.ZoneCode
	target.City = source.City
	target.PostalCode = source.PostalCode
	target.Address = source.Address
	target.DomainName = source.DomainName
	target.InBusinessSince = source.InBusinessSince
	target.Retailer = source.Retailer
	target.UseCache = source.UseCache
	if source.DefaultLanguage != nil {
		target.DefaultLanguage = source.DefaultLanguage.Code
	}
	target.SupportedLanguages = make([]string, 0, len(source.Languages))
	for _, l := range source.Languages {
		target.SupportedLanguages = append(target.SupportedLanguages, l.Code)
	}
	return target, nil
}

// StoreService resolves stores and manages their configuration
type StoreService struct {
	stores    merchant.StoreRepository
	configs   merchant.ConfigurationRepository
	cache     cache.Cache
	ttl       time.Duration
	metrics   *telemetry.ShopMetrics
	logger    *zap.Logger
	converter StoreConverter
}

// NewStoreService creates a StoreService. c may be nil to disable caching.
func NewStoreService(
	stores merchant.StoreRepository,
	configs merchant.ConfigurationRepository,
	c cache.Cache,
	ttl time.Duration,
	metrics *telemetry.ShopMetrics,
	logger *zap.Logger,
) *StoreService {
	return &StoreService{
		stores:  stores,
		configs: configs,
		cache:   c,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func storeNotFound(code string) error {
	return shared.NewNotFoundError("STORE_NOT_FOUND", "Store "+code+" not found")
}

// ResolveStore returns the store with code
func (s *StoreService) ResolveStore(ctx context.Context, code string) (*merchant.Store, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = merchant.DefaultStoreCode
	}
	store, hit, err := cache.GetOrLoad(ctx, s.cache, "store:"+code, s.ttl, func(ctx context.Context) (*merchant.Store, error) {
		return s.stores.FindByCode(ctx, code)
	})
	s.metrics.RecordCacheLookup(ctx, "store", hit)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, storeNotFound(code)
		}
		s.logger.Error("Failed to load store", zap.String("store", code), zap.Error(err))
		return nil, shared.NewServiceError("Cannot load store "+code, err)
	}
	return store, nil
}

// Get returns the readable store with code
func (s *StoreService) Get(ctx context.Context, code string, lang *reference.Language) (*ReadableStore, error) {
	store, err := s.ResolveStore(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, store, store, lang)
}

func toReadableConfiguration(cfg *merchant.Configuration) ReadableConfiguration {
	return ReadableConfiguration{Key: cfg.Key, Type: string(cfg.Type), Value: cfg.Value}
}

// Configurations lists the configuration entries of store
func (s *StoreService) Configurations(ctx context.Context, store *merchant.Store) ([]ReadableConfiguration, error) {
	if store == nil {
		return nil, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	cfgs, err := s.configs.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ReadableConfiguration, 0, len(cfgs))
	for i := range cfgs {
		out = append(out, toReadableConfiguration(&cfgs[i]))
	}
	return out, nil
}

// Configuration returns the configuration entry of store named key
func (s *StoreService) Configuration(ctx context.Context, store *merchant.Store, key string) (*ReadableConfiguration, error) {
	if store == nil {
		return nil, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	cfg, err := s.configs.FindByKey(ctx, store.ID, key)
	if err != nil {
		return nil, err
	}
	out := toReadableConfiguration(cfg)
	return &out, nil
}

// SaveConfiguration creates or replaces the configuration entry named req.Key
func (s *StoreService) SaveConfiguration(ctx context.Context, store *merchant.Store, req PersistableConfiguration) (*ReadableConfiguration, error) {
	if store == nil {
		return nil, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	cfg, err := s.configs.FindByKey(ctx, store.ID, req.Key)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		cfg, err = merchant.NewConfiguration(store.ID, req.Key, merchant.ConfigurationType(req.Type), req.Value)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		cfg.Value = req.Value
		if req.Type != "" {
			cfg.Type = merchant.ConfigurationType(req.Type)
		}
		cfg.Touch()
	}

	if err := s.configs.Save(ctx, cfg); err != nil {
		s.logger.Error("Failed to save configuration", zap.String("store", store.Code), zap.String("key", req.Key), zap.Error(err))
		return nil, err
	}
	out := toReadableConfiguration(cfg)
	return &out, nil
}

// DeleteConfiguration removes the configuration entry of store named key
func (s *StoreService) DeleteConfiguration(ctx context.Context, store *merchant.Store, key string) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.configs.Delete(ctx, store.ID, key)
}
