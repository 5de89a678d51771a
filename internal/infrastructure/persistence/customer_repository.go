package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// preload materializes the customer aggregate: addresses, groups, default
// language and attributes with their options and option values
func (r *GormCustomerRepository) preload(q *gorm.DB) *gorm.DB {
	q = q.Preload("DefaultLanguage").
		Preload("Addresses").
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Preload("Attributes.Option").
		Preload("Attributes.OptionValue")
	q = withDescriptions(q, "Attributes.Option.Descriptions")
	return withDescriptions(q, "Attributes.OptionValue.Descriptions")
}

func (r *GormCustomerRepository) filtered(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Scopes(StoreScope(storeID))
	if criteria.Email != "" {
		q = q.Where("LOWER(email_address) LIKE ?", containsPattern(criteria.Email))
	}
	if criteria.Name != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM customer_addresses a WHERE a.customer_id = customers.id AND (LOWER(a.first_name) LIKE ? OR LOWER(a.last_name) LIKE ?))",
			containsPattern(criteria.Name), containsPattern(criteria.Name),
		)
	}
	return q
}

// FindByID finds a customer with addresses, attributes and groups
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := first(r.preload(r.db.WithContext(ctx)).Where("id = ?", id), &model, "customer"); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNick returns the single customer with nick across stores
func (r *GormCustomerRepository) FindByNick(ctx context.Context, nick string) (*customer.Customer, error) {
	model, err := findOne[models.CustomerModel](
		r.preload(r.db.WithContext(ctx)).Where("nick = ?", strings.TrimSpace(nick)),
		"customer",
	)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNickForStore finds a customer by nick within a store
func (r *GormCustomerRepository) FindByNickForStore(ctx context.Context, storeID uuid.UUID, nick string) (*customer.Customer, error) {
	model, err := findOne[models.CustomerModel](
		r.preload(r.db.WithContext(ctx)).Scopes(StoreScope(storeID)).Where("nick = ?", strings.TrimSpace(nick)),
		"customer",
	)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every customer of a store matching criteria
func (r *GormCustomerRepository) FindAll(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria) ([]customer.Customer, error) {
	return r.find(ctx, storeID, criteria, shared.PageRequest{})
}

// FindPage returns one page of customers plus the total
func (r *GormCustomerRepository) FindPage(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria, page shared.PageRequest) ([]customer.Customer, int64, error) {
	total, err := r.Count(ctx, storeID, criteria)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.find(ctx, storeID, criteria, page)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormCustomerRepository) find(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria, page shared.PageRequest) ([]customer.Customer, error) {
	var ms []models.CustomerModel
	err := r.preload(r.filtered(ctx, storeID, criteria)).
		Scopes(PageScope(page)).
		Order("created_at, id").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "find customers")
	}
	customers := make([]customer.Customer, 0, len(ms))
	for i := range ms {
		customers = append(customers, *ms[i].ToDomain())
	}
	return customers, nil
}

// Count counts customers matching criteria
func (r *GormCustomerRepository) Count(ctx context.Context, storeID uuid.UUID, criteria customer.Criteria) (int64, error) {
	var count int64
	if err := r.filtered(ctx, storeID, criteria).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return count, nil
}

// Save creates or updates a customer, replacing its addresses, attributes and groups
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CustomerModel
		model.FromDomain(c)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return errors.Wrap(err, "save customer")
		}

		if err := tx.Where("customer_id = ?", c.ID).Delete(&models.CustomerAddressModel{}).Error; err != nil {
			return errors.Wrap(err, "clear customer addresses")
		}
		addresses := make([]models.CustomerAddressModel, 0, 2)
		if !c.Billing.IsEmpty() {
			addresses = append(addresses, models.CustomerAddressModelFromDomain(c.ID, models.AddressBilling, c.Billing))
		}
		if !c.Delivery.IsEmpty() {
			addresses = append(addresses, models.CustomerAddressModelFromDomain(c.ID, models.AddressDelivery, c.Delivery))
		}
		if len(addresses) > 0 {
			if err := tx.Create(&addresses).Error; err != nil {
				return errors.Wrap(err, "save customer addresses")
			}
		}

		if err := tx.Where("customer_id = ?", c.ID).Delete(&models.CustomerAttributeModel{}).Error; err != nil {
			return errors.Wrap(err, "clear customer attributes")
		}
		if len(c.Attributes) > 0 {
			attrs := make([]models.CustomerAttributeModel, 0, len(c.Attributes))
			for i := range c.Attributes {
				attr := models.CustomerAttributeModelFromDomain(c.ID, c.Attributes[i])
				c.Attributes[i].ID = attr.ID
				attrs = append(attrs, attr)
			}
			if err := tx.Omit(clause.Associations).Create(&attrs).Error; err != nil {
				return errors.Wrap(err, "save customer attributes")
			}
		}

		return errors.Wrap(replaceGroups(tx, &model, c.Groups), "save customer groups")
	})
}

// Delete removes a customer with its addresses, attributes and group memberships
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CustomerModel{StoreOwnedModel: models.StoreOwnedModel{BaseModel: models.BaseModel{ID: id}}}
		if err := tx.Model(&model).Association("Groups").Clear(); err != nil {
			return errors.Wrap(err, "clear customer groups")
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerAddressModel{}).Error; err != nil {
			return errors.Wrap(err, "delete customer addresses")
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerAttributeModel{}).Error; err != nil {
			return errors.Wrap(err, "delete customer attributes")
		}
		result := tx.Delete(&models.CustomerModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete customer")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
