package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopizer/backend/internal/domain/catalog"
	"github.com/shopizer/backend/internal/domain/identity"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/shopizer/backend/internal/infrastructure/crypto"
	"github.com/shopizer/backend/internal/infrastructure/persistence"
)

const testEncryptionKey = "00112233445566778899aabbccddeeff"

func TestSeededReferenceData(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	tdb := NewSharedTestDB(t)
	ctx := context.Background()

	store := tdb.DefaultStore()
	require.NotNil(t, store.DefaultLanguage)
	assert.Equal(t, "en", store.DefaultLanguage.Code)
	assert.Len(t, store.Languages, 2)

	zones, err := persistence.NewGormZoneRepository(tdb.DB).FindByCountry(ctx, "CA")
	require.NoError(t, err)
	assert.Len(t, zones, 3)

	country, err := persistence.NewGormCountryRepository(tdb.DB).FindByIsoCode(ctx, "US")
	require.NoError(t, err)
	assert.Len(t, country.Descriptions, 2)

	_, err = persistence.NewGormStoreRepository(tdb.DB).FindByCode(ctx, "MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConfigurationRepository_EncryptsAtRest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	tdb := NewSharedTestDB(t)
	ctx := context.Background()
	store := tdb.CreateStore("CFG_STORE")

	encryptor, err := crypto.NewEncryptor(testEncryptionKey)
	require.NoError(t, err)
	repo := persistence.NewGormConfigurationRepository(tdb.DB, encryptor)

	cfg, err := merchant.NewConfiguration(store.ID, "paypal.secret", merchant.ConfigurationTypeIntegration, "s3cr3t")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cfg))

	var raw string
	require.NoError(t, tdb.DB.Raw(
		"SELECT value FROM store_configurations WHERE store_id = ? AND config_key = ?", store.ID, "paypal.secret",
	).Scan(&raw).Error)
	assert.NotEmpty(t, raw)
	assert.NotContains(t, raw, "s3cr3t")

	found, err := repo.FindByKey(ctx, store.ID, "paypal.secret")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", found.Value)
	assert.Equal(t, merchant.ConfigurationTypeIntegration, found.Type)

	other, err := crypto.NewEncryptor("ffeeddccbbaa99887766554433221100")
	require.NoError(t, err)
	wrong, err := persistence.NewGormConfigurationRepository(tdb.DB, other).FindByKey(ctx, store.ID, "paypal.secret")
	if err == nil {
		assert.NotEqual(t, "s3cr3t", wrong.Value)
	}

	require.NoError(t, repo.Delete(ctx, store.ID, "paypal.secret"))
	_, err = repo.FindByKey(ctx, store.ID, "paypal.secret")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestManufacturerRepository_Paging(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	tdb := NewSharedTestDB(t)
	ctx := context.Background()
	store := tdb.CreateStore("PAGING")
	en := tdb.Language("en")
	repo := persistence.NewGormManufacturerRepository(tdb.DB)

	for i := 0; i < 5; i++ {
		m, err := catalog.NewManufacturer(store.ID, fmt.Sprintf("brand-%d", i))
		require.NoError(t, err)
		m.SortOrder = i
		m.Descriptions = shared.DescriptionSet{{
			LanguageID:   en.ID,
			LanguageCode: en.Code,
			Name:         fmt.Sprintf("Brand %d", i),
		}}
		require.NoError(t, repo.Save(ctx, m))
	}

	t.Run("unpaged returns everything", func(t *testing.T) {
		items, total, err := repo.FindPage(ctx, store.ID, catalog.ManufacturerCriteria{}, shared.PageRequest{})
		require.NoError(t, err)
		assert.Len(t, items, 5)
		assert.Equal(t, int64(5), total)
	})

	t.Run("page total counts every match", func(t *testing.T) {
		items, total, err := repo.FindPage(ctx, store.ID, catalog.ManufacturerCriteria{}, shared.PageRequest{Page: 1, Count: 2})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, int64(5), total)
		assert.Equal(t, "brand-2", items[0].Code)
		assert.Equal(t, "Brand 2", items[0].Descriptions[0].Name)
	})

	t.Run("past the last page", func(t *testing.T) {
		items, total, err := repo.FindPage(ctx, store.ID, catalog.ManufacturerCriteria{}, shared.PageRequest{Page: 9, Count: 2})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, int64(5), total)
	})

	t.Run("other stores are not visible", func(t *testing.T) {
		count, err := repo.Count(ctx, tdb.DefaultStore().ID, catalog.ManufacturerCriteria{Code: "brand-1"})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestPermissionRepository_SeededAuthorities(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	tdb := NewSharedTestDB(t)
	ctx := context.Background()

	groups, err := persistence.NewGormGroupRepository(tdb.DB).FindByNames(ctx, []string{identity.GroupAdminCatalog, identity.GroupAdmin})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}

	permissions, err := persistence.NewGormPermissionRepository(tdb.DB).FindByGroupIDs(ctx, ids)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"AUTH",
		"ROLE_ADMIN",
		"ROLE_ADMIN_CATALOGUE",
		"ROLE_ADMIN_CONTENT",
		"ROLE_ADMIN_ORDER",
		"ROLE_ADMIN_STORE",
		"ROLE_AUTH",
	}, identity.Authorities(permissions))
}
