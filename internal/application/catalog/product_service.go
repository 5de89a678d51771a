package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

func productNotFound(id uuid.UUID) error {
	return shared.NewNotFoundError("PRODUCT_NOT_FOUND", "Product "+id.String()+" not found")
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo      catalog.ProductRepository
	manufacturerRepo catalog.ManufacturerRepository
	converter        mapper.ReadableConverter[catalog.Product, ReadableProduct]
	merger           mapper.PersistableMerger[PersistableProduct, catalog.Product]
	logger           *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	manufacturerRepo catalog.ManufacturerRepository,
	converter mapper.ReadableConverter[catalog.Product, ReadableProduct],
	merger mapper.PersistableMerger[PersistableProduct, catalog.Product],
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:      productRepo,
		manufacturerRepo: manufacturerRepo,
		converter:        converter,
		merger:           merger,
		logger:           logger,
	}
}

// criteria translates listing filters. An unknown manufacturer code matches
// no product.
func (s *ProductService) criteria(ctx context.Context, store *merchant.Store, in ProductListCriteria) (catalog.ProductCriteria, bool, error) {
	c := catalog.ProductCriteria{Name: in.Name, Sku: in.Sku, AvailableOnly: in.AvailableOnly}
	if in.Manufacturer == "" {
		return c, true, nil
	}
	m, err := s.manufacturerRepo.FindByCode(ctx, store.ID, in.Manufacturer)
	if errors.Is(err, shared.ErrNotFound) {
		return c, false, nil
	}
	if err != nil {
		return c, false, err
	}
	c.ManufacturerID = &m.ID
	return c, true, nil
}

// List returns the products of store. page == 0 && count == 0 lists all.
func (s *ProductService) List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria ProductListCriteria, page, count int) (*shared.Paginated[ReadableProduct], error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	c, ok, err := s.criteria(ctx, store, criteria)
	if err != nil {
		return nil, err
	}
	if !ok {
		empty := shared.NewPaginated[ReadableProduct](nil, 0, page, count)
		return &empty, nil
	}

	src := mapper.Source[catalog.Product]{
		All: func(ctx context.Context) ([]catalog.Product, error) {
			return s.productRepo.FindAll(ctx, store.ID, c)
		},
		Count: func(ctx context.Context) (int64, error) {
			return s.productRepo.Count(ctx, store.ID, c)
		},
		Page: func(ctx context.Context, p shared.PageRequest) ([]catalog.Product, int64, error) {
			return s.productRepo.FindPage(ctx, store.ID, c, p)
		},
	}
	return mapper.List(ctx, src, s.converter, store, lang, page, count)
}

func (s *ProductService) load(ctx context.Context, store *merchant.Store, id uuid.UUID) (*catalog.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, productNotFound(id)
		}
		return nil, err
	}
	if err := shared.EnsureSameStore(p, store.ID, productNotFound(id)); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a product of store
func (s *ProductService) Get(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID) (*ReadableProduct, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	p, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, p, store, lang)
}

// Exists reports whether store has a product with sku
func (s *ProductService) Exists(ctx context.Context, store *merchant.Store, sku string) (bool, error) {
	if store == nil {
		return false, shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	return s.productRepo.ExistsBySku(ctx, store.ID, sku)
}

// Create creates a product in store
func (s *ProductService) Create(ctx context.Context, store *merchant.Store, lang *reference.Language, req PersistableProduct) (*ReadableProduct, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	exists, err := s.productRepo.ExistsBySku(ctx, store.ID, req.Sku)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Product with sku %s already exists", req.Sku)
	}

	p, err := catalog.NewProduct(store.ID, req.Sku)
	if err != nil {
		return nil, err
	}
	if _, err := s.merger.Merge(ctx, &req, p, store, lang); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save product", zap.String("sku", req.Sku), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, p, store, lang)
}

// Update updates a product of store
func (s *ProductService) Update(ctx context.Context, store *merchant.Store, lang *reference.Language, id uuid.UUID, req PersistableProduct) (*ReadableProduct, error) {
	if err := mapper.RequireScope(store, lang); err != nil {
		return nil, err
	}
	p, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if req.Sku != p.Sku {
		exists, err := s.productRepo.ExistsBySku(ctx, store.ID, req.Sku)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrAlreadyExists.WithMessage("Product with sku %s already exists", req.Sku)
		}
	}

	if _, err := s.merger.Merge(ctx, &req, p, store, lang); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to update product", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return s.converter.Convert(ctx, p, store, lang)
}

// Delete removes a product of store
func (s *ProductService) Delete(ctx context.Context, store *merchant.Store, id uuid.UUID) error {
	if store == nil {
		return shared.NewInvalidArgumentError("Merchant store cannot be null")
	}
	if _, err := s.load(ctx, store, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
