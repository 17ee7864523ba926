package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
)

func seedUser(t *testing.T, s *Store, id, email string) models.User {
	t.Helper()
	user := models.User{
		ID:         id,
		Username:   "user-" + id,
		Email:      email,
		Password:   "pw",
		Favourites: []models.Restaurant{},
		WantToTry:  []models.Restaurant{},
		Tags:       []string{},
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "u1", "a@x.com")

	err := s.CreateUser(context.Background(), models.User{ID: "u2", Email: "a@x.com"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestAddTagSetSemantics(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "a@x.com")

	require.NoError(t, s.AddTag(ctx, "u1", "t1"))
	require.NoError(t, s.AddTag(ctx, "u1", "t1"))
	require.NoError(t, s.AddTag(ctx, "u1", "t2"))

	user, err := s.UserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, user.Tags)

	assert.ErrorIs(t, s.AddTag(ctx, "nobody", "t1"), store.ErrNotFound)
}

func TestRemoveTagFromAll(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "a@x.com")
	seedUser(t, s, "u2", "b@x.com")
	seedUser(t, s, "u3", "c@x.com")
	require.NoError(t, s.AddTag(ctx, "u1", "shared"))
	require.NoError(t, s.AddTag(ctx, "u2", "shared"))
	require.NoError(t, s.AddTag(ctx, "u3", "other"))

	modified, err := s.RemoveTagFromAll(ctx, "shared")
	require.NoError(t, err)
	assert.EqualValues(t, 2, modified)

	for _, id := range []string{"u1", "u2"} {
		user, err := s.UserByID(ctx, id)
		require.NoError(t, err)
		assert.NotContains(t, user.Tags, "shared")
	}
	user, err := s.UserByID(ctx, "u3")
	require.NoError(t, err)
	assert.Contains(t, user.Tags, "other")
}

func TestListEntryLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "a@x.com")
	entry := models.Restaurant{ID: "r1", Name: "Noodle Bar", UserID: "u1", ListType: models.ListFavourites}

	require.NoError(t, s.PushListEntry(ctx, "u1", models.ListFavourites, entry))

	owner, err := s.OwnerOfListEntry(ctx, models.ListFavourites, "r1")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner.ID)

	// Entry lives in favourites only.
	_, err = s.OwnerOfListEntry(ctx, models.ListWantToTry, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	removed, err := s.PullListEntry(ctx, "u1", models.ListFavourites, "r1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.PullListEntry(ctx, "u1", models.ListFavourites, "r1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRestaurantsByOwnerOrderAndFilter(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, r := range []models.Restaurant{
		{ID: "r1", Name: "First", UserID: "u1", ListType: models.ListFavourites},
		{ID: "r2", Name: "Second", UserID: "u1", ListType: models.ListWantToTry},
		{ID: "r3", Name: "Third", UserID: "u1", ListType: models.ListFavourites},
		{ID: "r4", Name: "Other", UserID: "u2", ListType: models.ListFavourites},
	} {
		require.NoError(t, s.InsertRestaurant(ctx, r))
	}

	favs, err := s.RestaurantsByOwner(ctx, "u1", models.ListFavourites)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "r1", favs[0].ID)
	assert.Equal(t, "r3", favs[1].ID)

	empty, err := s.RestaurantsByOwner(ctx, "u2", models.ListWantToTry)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTagsByIDsDropsUnresolved(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.InsertTag(ctx, models.Tag{ID: "t1", Name: "Sushi", UserID: "u1"}))

	tags, err := s.TagsByIDs(ctx, []string{"t1", "ghost"})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Sushi", tags[0].Name)
}

func TestDeleteMissingRecords(t *testing.T) {
	s := New()
	ctx := context.Background()
	assert.ErrorIs(t, s.DeleteRestaurant(ctx, "ghost"), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTag(ctx, "ghost"), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, "ghost"), store.ErrNotFound)
}
