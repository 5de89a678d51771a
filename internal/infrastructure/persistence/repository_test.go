package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/customer"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// every pooled connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedLanguages(t *testing.T, db *gorm.DB, codes ...string) map[string]*reference.Language {
	repo := NewGormLanguageRepository(db)
	langs := make(map[string]*reference.Language, len(codes))
	for i, code := range codes {
		l, err := reference.NewLanguage(code, i)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), l))
		langs[code] = l
	}
	return langs
}

func TestGormManufacturerRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	langs := seedLanguages(t, db, "en", "fr")
	repo := NewGormManufacturerRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	m, err := catalog.NewManufacturer(storeID, "acme")
	require.NoError(t, err)
	m.Descriptions.Upsert(m.ID,
		shared.Description{LanguageID: langs["fr"].ID, LanguageCode: "fr", Name: "Acmé"},
		shared.Description{LanguageID: langs["en"].ID, LanguageCode: "en", Name: "Acme"},
	)
	require.NoError(t, repo.Save(ctx, m))

	found, err := repo.FindByCode(ctx, storeID, "acme")
	require.NoError(t, err)
	assert.Equal(t, m.ID, found.ID)
	require.Len(t, found.Descriptions, 2)
	assert.Equal(t, []string{"fr", "en"}, found.Descriptions.Languages())
	assert.Equal(t, "Acmé", found.Descriptions[0].Name)

	t.Run("upsert keeps description identity", func(t *testing.T) {
		frID := found.Descriptions[0].ID
		found.Descriptions.Upsert(found.ID, shared.Description{LanguageCode: "fr", Title: "Fabricant"})
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, found.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Descriptions, 2)
		fr, ok := reloaded.Descriptions.ForLanguageCode("fr")
		require.True(t, ok)
		assert.Equal(t, frID, fr.ID)
		assert.Equal(t, "Acmé", fr.Name)
		assert.Equal(t, "Fabricant", fr.Title)

		var count int64
		require.NoError(t, db.Model(&models.DescriptionModel{}).Where("parent_id = ?", found.ID).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("filters by description name", func(t *testing.T) {
		items, total, err := repo.FindPage(ctx, storeID, catalog.ManufacturerCriteria{Name: "ACM"}, shared.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, items, 1)

		items, total, err = repo.FindPage(ctx, storeID, catalog.ManufacturerCriteria{Name: "nothing"}, shared.PageRequest{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)
	})
}

func TestGormManufacturerRepository_StoreIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormManufacturerRepository(db)
	ctx := context.Background()
	storeA, storeB := uuid.New(), uuid.New()

	for _, code := range []string{"a1", "a2", "a3"} {
		m, err := catalog.NewManufacturer(storeA, code)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, m))
	}
	other, err := catalog.NewManufacturer(storeB, "b1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	_, err = repo.FindByCode(ctx, storeA, "b1")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	exists, err := repo.ExistsByCode(ctx, storeB, "a1")
	require.NoError(t, err)
	assert.False(t, exists)

	all, total, err := repo.FindPage(ctx, storeA, catalog.ManufacturerCriteria{}, shared.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	page, total, err := repo.FindPage(ctx, storeA, catalog.ManufacturerCriteria{}, shared.PageRequest{Page: 1, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "a3", page[0].Code)

	require.NoError(t, repo.Delete(ctx, other.ID))
	assert.ErrorIs(t, repo.Delete(ctx, other.ID), shared.ErrNotFound)
}

func TestGormCustomerRepository_FindByNick(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	storeA, storeB := uuid.New(), uuid.New()

	c, err := customer.NewCustomer(storeA, "jane@example.com")
	require.NoError(t, err)
	c.Billing = &customer.Address{FirstName: "Jane", LastName: "Doe", City: "Montreal"}
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByNick(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	require.NotNil(t, found.Billing)
	assert.Equal(t, "Montreal", found.Billing.City)
	assert.Nil(t, found.Delivery)

	t.Run("name criteria searches addresses", func(t *testing.T) {
		items, err := repo.FindAll(ctx, storeA, customer.Criteria{Name: "doe"})
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("same nick in another store is a data integrity error", func(t *testing.T) {
		dup, err := customer.NewCustomer(storeB, "jane@example.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, dup))

		_, err = repo.FindByNick(ctx, "jane@example.com")
		assert.ErrorIs(t, err, shared.ErrDataIntegrity)

		scoped, err := repo.FindByNickForStore(ctx, storeB, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, dup.ID, scoped.ID)
	})

	t.Run("unknown nick is not found", func(t *testing.T) {
		_, err := repo.FindByNick(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPermissionRepository_FindByGroupIDs(t *testing.T) {
	db := setupTestDB(t)
	groups := NewGormGroupRepository(db)
	permissions := NewGormPermissionRepository(db)
	ctx := context.Background()

	g1, err := identity.NewGroup("G1", identity.GroupTypeAdmin)
	require.NoError(t, err)
	g2, err := identity.NewGroup("G2", identity.GroupTypeAdmin)
	require.NoError(t, err)
	require.NoError(t, groups.Save(ctx, g1))
	require.NoError(t, groups.Save(ctx, g2))

	grants := map[string][]uuid.UUID{
		"A": {g1.ID},
		"B": {g1.ID, g2.ID},
		"C": {g2.ID},
	}
	for name, ids := range grants {
		p := identity.Permission{BaseEntity: shared.NewBaseEntity(), Name: name, GroupIDs: ids}
		require.NoError(t, permissions.Save(ctx, &p))
	}

	found, err := permissions.FindByGroupIDs(ctx, []uuid.UUID{g1.ID, g2.ID})
	require.NoError(t, err)
	require.Len(t, found, 3)

	names := make([]string, 0, len(found))
	for _, p := range found {
		names = append(names, p.Name)
	}
	assert.Equal(t, "A,B,C", strings.Join(names, ","))
	assert.Len(t, found[1].GroupIDs, 2)
	assert.Equal(t, []string{"AUTH", "ROLE_A", "ROLE_B", "ROLE_C"}, identity.Authorities(found))

	only, err := permissions.FindByGroupIDs(ctx, []uuid.UUID{g2.ID})
	require.NoError(t, err)
	assert.Len(t, only, 2)

	none, err := permissions.FindByGroupIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormUserRepository_SaveReplacesGroups(t *testing.T) {
	db := setupTestDB(t)
	langs := seedLanguages(t, db, "en")
	stores := NewGormStoreRepository(db)
	groups := NewGormGroupRepository(db)
	users := NewGormUserRepository(db)
	ctx := context.Background()

	store, err := merchant.NewStore(merchant.DefaultStoreCode, "Default store", "CAD", langs["en"])
	require.NoError(t, err)
	require.NoError(t, stores.Save(ctx, store))

	admin, _ := identity.NewGroup(identity.GroupAdmin, identity.GroupTypeAdmin)
	catalogGroup, _ := identity.NewGroup(identity.GroupAdminCatalog, identity.GroupTypeAdmin)
	require.NoError(t, groups.Save(ctx, admin))
	require.NoError(t, groups.Save(ctx, catalogGroup))

	u, err := identity.NewUser(store.ID, store.Code, "admin", "$2a$04$hash")
	require.NoError(t, err)
	u.SetGroups([]identity.Group{*admin, *catalogGroup})
	require.NoError(t, users.Save(ctx, u))

	found, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, merchant.DefaultStoreCode, found.StoreCode)
	assert.Len(t, found.Groups, 2)

	found.SetGroups([]identity.Group{*catalogGroup})
	require.NoError(t, users.Save(ctx, found))

	reloaded, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Groups, 1)
	assert.Equal(t, identity.GroupAdminCatalog, reloaded.Groups[0].Name)

	taken, err := users.ExistsByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, taken)
}

type reverseCipher struct{}

func (reverseCipher) Encrypt(s string) (string, error) { return "enc:" + reverse(s), nil }
func (reverseCipher) Decrypt(s string) (string, error) {
	return reverse(strings.TrimPrefix(s, "enc:")), nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func TestGormConfigurationRepository_EncryptsValues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConfigurationRepository(db, reverseCipher{})
	ctx := context.Background()
	storeID := uuid.New()

	cfg, err := merchant.NewConfiguration(storeID, "facebook_page_url", merchant.ConfigurationTypeSocial, "https://fb.example/shop")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cfg))

	var raw models.StoreConfigurationModel
	require.NoError(t, db.Where("config_key = ?", "facebook_page_url").First(&raw).Error)
	assert.True(t, strings.HasPrefix(raw.Value, "enc:"))

	found, err := repo.FindByKey(ctx, storeID, "facebook_page_url")
	require.NoError(t, err)
	assert.Equal(t, "https://fb.example/shop", found.Value)

	_, err = repo.FindByKey(ctx, uuid.New(), "facebook_page_url")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
