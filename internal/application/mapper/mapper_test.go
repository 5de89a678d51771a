package mapper

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLanguageResolver struct {
	mock.Mock
}

func (m *MockLanguageResolver) FindByCode(ctx context.Context, code string) (*reference.Language, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.Language), args.Error(1)
}

type item struct {
	Name string
}

type readableItem struct {
	Label string
}

type itemConverter struct {
	failOn string
}

func (c itemConverter) Convert(ctx context.Context, source *item, store *merchant.Store, lang *reference.Language) (*readableItem, error) {
	return c.Merge(ctx, source, &readableItem{}, store, lang)
}

func (c itemConverter) Merge(_ context.Context, source *item, target *readableItem, store *merchant.Store, lang *reference.Language) (*readableItem, error) {
	if err := RequireScope(store, lang); err != nil {
		return nil, err
	}
	if source.Name == c.failOn {
		return nil, shared.NewConversionError("Cannot convert "+source.Name, nil)
	}
	target.Label = source.Name + "@" + lang.Code
	return target, nil
}

func testScope(t *testing.T) (*merchant.Store, *reference.Language) {
	t.Helper()
	en, err := reference.NewLanguage("en", 0)
	require.NoError(t, err)
	store, err := merchant.NewStore("DEFAULT", "Default store", "CAD", en)
	require.NoError(t, err)
	return store, en
}

func TestRequireScope(t *testing.T) {
	store, lang := testScope(t)

	assert.NoError(t, RequireScope(store, lang))

	err := RequireScope(nil, lang)
	assert.Equal(t, shared.KindInvalidArgument, shared.KindOf(err))

	err = RequireScope(store, nil)
	assert.Equal(t, shared.KindInvalidArgument, shared.KindOf(err))
}

func TestRequireSource(t *testing.T) {
	var m *item
	err := RequireSource(m, "Manufacturer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidArgument))
	assert.Equal(t, "Manufacturer cannot be null", err.Error())

	assert.NoError(t, RequireSource(&item{}, "Manufacturer"))
}

func TestConvertAll_PreservesOrder(t *testing.T) {
	store, lang := testScope(t)
	items := []item{{Name: "c"}, {Name: "a"}, {Name: "b"}}

	out, err := ConvertAll[item, readableItem](context.Background(), itemConverter{}, items, store, lang)

	require.NoError(t, err)
	assert.Equal(t, []readableItem{{Label: "c@en"}, {Label: "a@en"}, {Label: "b@en"}}, out)
}

func TestConvertAll_StopsOnFailure(t *testing.T) {
	store, lang := testScope(t)
	items := []item{{Name: "a"}, {Name: "bad"}}

	out, err := ConvertAll[item, readableItem](context.Background(), itemConverter{failOn: "bad"}, items, store, lang)

	assert.Nil(t, out)
	assert.Equal(t, shared.KindConversion, shared.KindOf(err))
}

func TestNewOptions(t *testing.T) {
	assert.Equal(t, shared.LocaleExactOrFirst, NewOptions(shared.LocaleExactOrFirst).LocalePolicy)
	assert.Equal(t, shared.LocaleExactOnly, NewOptions(shared.LocaleExactOrFirst, WithLocalePolicy(shared.LocaleExactOnly)).LocalePolicy)
}

func TestProjectDescription(t *testing.T) {
	_, en := testScope(t)
	de, _ := reference.NewLanguage("de", 2)
	set := shared.DescriptionSet{
		{ID: uuid.New(), LanguageID: uuid.New(), LanguageCode: "fr", Name: "Chaise"},
		{ID: uuid.New(), LanguageID: en.ID, LanguageCode: "en", Name: "Chair", Title: "A chair"},
	}

	exact := ProjectDescription(set, en, shared.LocaleExactOnly)
	assert.Equal(t, "Chair", exact.Name)
	assert.Equal(t, "A chair", exact.Title)
	assert.Equal(t, "en", exact.Language)

	assert.Equal(t, ReadableDescription{}, ProjectDescription(set, de, shared.LocaleExactOnly))
	assert.Equal(t, "Chaise", ProjectDescription(set, de, shared.LocaleExactOrFirst).Name)
}

func TestMergeDescriptions(t *testing.T) {
	ctx := context.Background()
	fr, _ := reference.NewLanguage("fr", 1)
	en, _ := reference.NewLanguage("en", 0)
	parentID := uuid.New()
	frID := uuid.New()
	set := shared.DescriptionSet{{ID: frID, ParentID: parentID, LanguageID: fr.ID, LanguageCode: "fr", Name: "Chaise"}}

	languages := new(MockLanguageResolver)
	languages.On("FindByCode", ctx, "fr").Return(fr, nil).Once()
	languages.On("FindByCode", ctx, "en").Return(en, nil).Once()

	err := MergeDescriptions(ctx, languages, parentID, &set, []PersistableDescription{
		{Language: "fr", Name: "Fauteuil"},
		{Language: "EN", Name: "Armchair"},
	})

	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, frID, set[0].ID)
	assert.Equal(t, "Fauteuil", set[0].Name)
	assert.Equal(t, en.ID, set[1].LanguageID)
	assert.Equal(t, "en", set[1].LanguageCode)
	assert.Equal(t, parentID, set[1].ParentID)
	assert.NotEqual(t, uuid.Nil, set[1].ID)
	languages.AssertExpectations(t)
}

func TestMergeDescriptions_UnknownLanguage(t *testing.T) {
	ctx := context.Background()
	languages := new(MockLanguageResolver)
	languages.On("FindByCode", ctx, "xx").Return(nil, shared.ErrNotFound)

	var set shared.DescriptionSet
	err := MergeDescriptions(ctx, languages, uuid.New(), &set, []PersistableDescription{{Language: "xx", Name: "?"}})

	require.Error(t, err)
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	assert.Contains(t, err.Error(), "xx")
	assert.Empty(t, set)
}

func TestMergeDescriptions_MalformedLanguage(t *testing.T) {
	languages := new(MockLanguageResolver)
	var set shared.DescriptionSet

	err := MergeDescriptions(context.Background(), languages, uuid.New(), &set, []PersistableDescription{{Language: "not a tag"}})

	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	languages.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}

func itemSource(all []item) (Source[item], *int) {
	calls := 0
	return Source[item]{
		All: func(context.Context) ([]item, error) {
			calls++
			return all, nil
		},
		Count: func(context.Context) (int64, error) {
			calls++
			return int64(len(all)), nil
		},
		Page: func(_ context.Context, p shared.PageRequest) ([]item, int64, error) {
			calls++
			end := p.Offset() + p.Limit()
			if end > len(all) {
				end = len(all)
			}
			return all[p.Offset():end], int64(len(all)), nil
		},
	}, &calls
}

func TestList_Unpaged(t *testing.T) {
	store, lang := testScope(t)
	src, calls := itemSource([]item{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	page, err := List[item, readableItem](context.Background(), src, itemConverter{}, store, lang, 0, 0)

	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 2, *calls)
}

func TestList_Paged(t *testing.T) {
	store, lang := testScope(t)
	src, calls := itemSource([]item{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	page, err := List[item, readableItem](context.Background(), src, itemConverter{}, store, lang, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, []readableItem{{Label: "c@en"}}, page.Items)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, *calls)
}

func TestList_RejectsNegativePaging(t *testing.T) {
	store, lang := testScope(t)
	src, _ := itemSource(nil)

	_, err := List[item, readableItem](context.Background(), src, itemConverter{}, store, lang, -1, 10)

	assert.Equal(t, shared.KindInvalidArgument, shared.KindOf(err))
}

func TestPatch(t *testing.T) {
	order := 3
	Patch(&order, nil)
	assert.Equal(t, 3, order)

	zero := 0
	Patch(&order, &zero)
	assert.Equal(t, 0, order)
}
