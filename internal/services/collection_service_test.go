package services

import (
	"testing"

	"threadswap_backend/internal/models"
	"threadswap_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectionFixture struct {
	service     CollectionService
	collections *fakeCollectionRepo
	wardrobe    *fakeWardrobeRepo
	curator     *models.User
	items       []*models.WardrobeItem
}

func newCollectionFixture(t *testing.T) *collectionFixture {
	t.Helper()
	curator := &models.User{BaseModel: models.BaseModel{ID: "curator-1"}, Tier: models.TierBasic}
	items := []*models.WardrobeItem{
		{OwnerID: curator.ID, Title: "Linen Shirt"},
		{OwnerID: curator.ID, Title: "Wool Coat"},
		{OwnerID: curator.ID, Title: "Silk Scarf"},
	}
	wardrobe := newFakeWardrobeRepo(items...)
	collections := newFakeCollectionRepo()
	return &collectionFixture{
		service:     NewCollectionService(collections, wardrobe),
		collections: collections,
		wardrobe:    wardrobe,
		curator:     curator,
		items:       items,
	}
}

func TestCreateCollection(t *testing.T) {
	t.Run("defaults to public", func(t *testing.T) {
		f := newCollectionFixture(t)

		collection, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{Name: "Fall Looks"})

		require.NoError(t, err)
		assert.True(t, collection.IsPublic)
		assert.NotEmpty(t, collection.ID)
	})

	t.Run("basic tier caps at three", func(t *testing.T) {
		f := newCollectionFixture(t)
		for i := 0; i < 3; i++ {
			_, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{Name: "Board"})
			require.NoError(t, err)
		}

		_, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{Name: "One Too Many"})

		assert.ErrorIs(t, err, apperrors.ErrTierLimit)
	})
}

func TestCollectionVisibility(t *testing.T) {
	f := newCollectionFixture(t)
	private := false
	hidden, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{
		Name: "Drafts", IsPublic: &private,
	})
	require.NoError(t, err)

	t.Run("owner sees a private collection", func(t *testing.T) {
		got, err := f.service.Get(f.curator.ID, hidden.ID)
		require.NoError(t, err)
		assert.Equal(t, hidden.ID, got.ID)
	})

	t.Run("stranger gets the same 404 as a missing one", func(t *testing.T) {
		_, err := f.service.Get("stranger", hidden.ID)
		assert.Equal(t, 404, httpCode(t, err))

		_, missingErr := f.service.Get("stranger", "no-such-collection")
		assert.Equal(t, 404, httpCode(t, missingErr))
	})
}

func TestCollectionMembership(t *testing.T) {
	f := newCollectionFixture(t)
	collection, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{Name: "Capsule"})
	require.NoError(t, err)

	t.Run("items append in order", func(t *testing.T) {
		require.NoError(t, f.service.AddItem(f.curator.ID, collection.ID, f.items[0].ID))
		require.NoError(t, f.service.AddItem(f.curator.ID, collection.ID, f.items[1].ID))

		got, err := f.service.Get(f.curator.ID, collection.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 2)
		assert.Equal(t, f.items[0].ID, got.Items[0].ItemID)
		assert.Equal(t, 0, got.Items[0].Position)
		assert.Equal(t, 1, got.Items[1].Position)
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		err := f.service.AddItem(f.curator.ID, collection.ID, f.items[0].ID)
		assert.Equal(t, 409, httpCode(t, err))
	})

	t.Run("someone else's item looks absent", func(t *testing.T) {
		foreign := &models.WardrobeItem{OwnerID: "somebody-else", Title: "Not Yours"}
		require.NoError(t, f.wardrobe.Create(foreign))

		err := f.service.AddItem(f.curator.ID, collection.ID, foreign.ID)
		assert.Equal(t, 404, httpCode(t, err))
	})

	t.Run("deleted item looks absent", func(t *testing.T) {
		require.NoError(t, f.wardrobe.SoftDelete(f.items[2].ID))

		err := f.service.AddItem(f.curator.ID, collection.ID, f.items[2].ID)
		assert.Equal(t, 404, httpCode(t, err))
	})

	t.Run("only the curator mutates membership", func(t *testing.T) {
		err := f.service.AddItem("stranger", collection.ID, f.items[1].ID)
		assert.Equal(t, 404, httpCode(t, err))

		err = f.service.RemoveItem("stranger", collection.ID, f.items[0].ID)
		assert.Equal(t, 404, httpCode(t, err))
	})

	t.Run("remove shrinks the set", func(t *testing.T) {
		require.NoError(t, f.service.RemoveItem(f.curator.ID, collection.ID, f.items[1].ID))

		got, err := f.service.Get(f.curator.ID, collection.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 1)

		err = f.service.RemoveItem(f.curator.ID, collection.ID, f.items[1].ID)
		assert.Equal(t, 404, httpCode(t, err))
	})
}

func TestReorderCollection(t *testing.T) {
	f := newCollectionFixture(t)
	collection, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{Name: "Capsule"})
	require.NoError(t, err)
	require.NoError(t, f.service.AddItem(f.curator.ID, collection.ID, f.items[0].ID))
	require.NoError(t, f.service.AddItem(f.curator.ID, collection.ID, f.items[1].ID))
	require.NoError(t, f.service.AddItem(f.curator.ID, collection.ID, f.items[2].ID))

	t.Run("full permutation applies", func(t *testing.T) {
		err := f.service.Reorder(f.curator.ID, collection.ID, ReorderInput{
			ItemIDs: []string{f.items[2].ID, f.items[0].ID, f.items[1].ID},
		})

		require.NoError(t, err)
		got, err := f.service.Get(f.curator.ID, collection.ID)
		require.NoError(t, err)
		assert.Equal(t, f.items[2].ID, got.Items[0].ItemID)
		assert.Equal(t, f.items[0].ID, got.Items[1].ItemID)
		assert.Equal(t, f.items[1].ID, got.Items[2].ItemID)
	})

	t.Run("partial list rejected", func(t *testing.T) {
		err := f.service.Reorder(f.curator.ID, collection.ID, ReorderInput{
			ItemIDs: []string{f.items[0].ID},
		})
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("outside item rejected", func(t *testing.T) {
		err := f.service.Reorder(f.curator.ID, collection.ID, ReorderInput{
			ItemIDs: []string{f.items[0].ID, f.items[1].ID, "not-a-member"},
		})
		assert.Equal(t, 400, httpCode(t, err))
	})
}

func TestDeleteCollection(t *testing.T) {
	f := newCollectionFixture(t)
	collection, err := f.service.Create(f.curator.ID, models.TierBasic, CreateCollectionInput{Name: "Capsule"})
	require.NoError(t, err)
	require.NoError(t, f.service.AddItem(f.curator.ID, collection.ID, f.items[0].ID))

	err = f.service.Delete("stranger", collection.ID)
	assert.Equal(t, 404, httpCode(t, err))

	require.NoError(t, f.service.Delete(f.curator.ID, collection.ID))
	_, err = f.service.Get(f.curator.ID, collection.ID)
	assert.Equal(t, 404, httpCode(t, err))

	// The items themselves survive.
	item, err := f.wardrobe.FindByID(f.items[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.ItemStatusDeleted, item.Status)
}
