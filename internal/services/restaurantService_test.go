package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanveal/bitelist/internal/apperr"
	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
	"github.com/jordanveal/bitelist/internal/store/memstore"
)

func newRestaurantFixture(t *testing.T) (*memstore.Store, *RestaurantService, models.User) {
	t.Helper()
	st := memstore.New()
	svc := NewRestaurantService(st, st)
	alice := models.User{
		ID:         "alice",
		Username:   "alice",
		Email:      "a@x.com",
		Password:   "pw",
		Favourites: []models.Restaurant{},
		WantToTry:  []models.Restaurant{},
		Tags:       []string{},
	}
	require.NoError(t, st.CreateUser(context.Background(), alice))
	return st, svc, alice
}

func TestCreateRestaurantAppearsExactlyOnce(t *testing.T) {
	st, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	created, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Pasta Place",
		UserID:   alice.ID,
		ListType: models.ListFavourites,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.ListFavourites, created.ListType)

	listed, err := svc.ListRestaurants(ctx, alice.ID, models.ListFavourites)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Pasta Place", listed[0].Name)

	// The denormalized snapshot appears exactly once in the chosen array
	// and not at all in the other one.
	user, err := st.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	count := 0
	for _, entry := range user.Favourites {
		if entry.ID == created.ID {
			count++
			assert.Equal(t, "Pasta Place", entry.Name, "snapshot must be the full record, not an id stub")
		}
	}
	assert.Equal(t, 1, count)
	assert.Empty(t, user.WantToTry)
}

func TestCreateRestaurantUniqueIDs(t *testing.T) {
	_, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		created, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{
			Name:     "Spot",
			UserID:   alice.ID,
			ListType: models.ListWantToTry,
		})
		require.NoError(t, err)
		assert.False(t, seen[created.ID])
		seen[created.ID] = true
	}
}

func TestCreateRestaurantValidation(t *testing.T) {
	_, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	_, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{UserID: alice.ID, ListType: models.ListFavourites})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, err = svc.CreateRestaurant(ctx, CreateRestaurantInput{Name: "X", UserID: alice.ID, ListType: "bucketList"})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, err = svc.CreateRestaurant(ctx, CreateRestaurantInput{Name: "X", UserID: "nobody", ListType: models.ListFavourites})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListRestaurantsEmptyIsSuccess(t *testing.T) {
	_, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	// An existing user with no matches gets an empty slice, not NotFound.
	listed, err := svc.ListRestaurants(ctx, alice.ID, models.ListFavourites)
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)

	_, err = svc.ListRestaurants(ctx, "nobody", models.ListFavourites)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeleteRestaurantRemovesBothCopies(t *testing.T) {
	st, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	created, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Doomed Diner",
		UserID:   alice.ID,
		ListType: models.ListWantToTry,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRestaurant(ctx, created.ID, models.ListWantToTry))

	_, err = st.RestaurantByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	user, err := st.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, user.WantToTry)

	assert.Equal(t, apperr.NotFound,
		apperr.KindOf(svc.DeleteRestaurant(ctx, created.ID, models.ListWantToTry)))
}

func TestMoveRestaurantRoundTrip(t *testing.T) {
	st, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	created, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Wanderer",
		Notes:    "try the dumplings",
		UserID:   alice.ID,
		ListType: models.ListWantToTry,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MoveRestaurant(ctx, created.ID, models.ListWantToTry, models.ListFavourites))

	moved, err := st.RestaurantByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListFavourites, moved.ListType)

	user, err := st.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, user.WantToTry)
	require.Len(t, user.Favourites, 1)
	// Destination entry is a full snapshot, not an id-only stub.
	assert.Equal(t, "Wanderer", user.Favourites[0].Name)
	assert.Equal(t, "try the dumplings", user.Favourites[0].Notes)
	assert.Equal(t, models.ListFavourites, user.Favourites[0].ListType)

	// Moving back restores the original state.
	require.NoError(t, svc.MoveRestaurant(ctx, created.ID, models.ListFavourites, models.ListWantToTry))

	restored, err := st.RestaurantByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListWantToTry, restored.ListType)

	user, err = st.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Favourites)
	require.Len(t, user.WantToTry, 1)
	assert.Equal(t, created.ID, user.WantToTry[0].ID)
}

func TestMoveRestaurantNotInSourceListLeavesStateUnchanged(t *testing.T) {
	st, svc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	created, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Settled",
		UserID:   alice.ID,
		ListType: models.ListFavourites,
	})
	require.NoError(t, err)

	err = svc.MoveRestaurant(ctx, created.ID, models.ListWantToTry, models.ListFavourites)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	unchanged, err := st.RestaurantByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListFavourites, unchanged.ListType)

	user, err := st.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, user.Favourites, 1)
	assert.Empty(t, user.WantToTry)
}

func TestMoveRestaurantValidation(t *testing.T) {
	_, svc, _ := newRestaurantFixture(t)
	ctx := context.Background()

	err := svc.MoveRestaurant(ctx, "r1", models.ListFavourites, "bucketList")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	err = svc.MoveRestaurant(ctx, "ghost", models.ListFavourites, models.ListWantToTry)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

// pushFailer breaks list-array appends.
type pushFailer struct {
	store.UserStore
}

func (f pushFailer) PushListEntry(ctx context.Context, userID string, list models.ListType, entry models.Restaurant) error {
	return errors.New("users collection unavailable")
}

func TestCreateRestaurantPartialFailure(t *testing.T) {
	st := memstore.New()
	svc := NewRestaurantService(st, pushFailer{st})
	ctx := context.Background()
	require.NoError(t, st.CreateUser(ctx, models.User{ID: "alice", Email: "a@x.com"}))

	_, err := svc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Invisible",
		UserID:   "alice",
		ListType: models.ListFavourites,
	})
	assert.Equal(t, apperr.PartialFailure, apperr.KindOf(err))

	// The canonical record exists but no list shows it.
	all, err := st.RestaurantsByOwner(ctx, "alice", models.ListFavourites)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	user, err := st.UserByID(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, user.Favourites)
}

func TestMoveRestaurantPartialFailureOnPush(t *testing.T) {
	st, baseSvc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	created, err := baseSvc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Stuck",
		UserID:   alice.ID,
		ListType: models.ListWantToTry,
	})
	require.NoError(t, err)

	svc := NewRestaurantService(st, pushFailer{st})
	err = svc.MoveRestaurant(ctx, created.ID, models.ListWantToTry, models.ListFavourites)
	assert.Equal(t, apperr.PartialFailure, apperr.KindOf(err))

	// Canonical listType already says favourites; the arrays disagree.
	stuck, err := st.RestaurantByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListFavourites, stuck.ListType)
}

// deleteFailer breaks canonical restaurant deletes.
type deleteFailer struct {
	store.RestaurantStore
}

func (f deleteFailer) DeleteRestaurant(ctx context.Context, id string) error {
	return errors.New("restaurants collection unavailable")
}

func TestDeleteRestaurantPartialFailure(t *testing.T) {
	st, baseSvc, alice := newRestaurantFixture(t)
	ctx := context.Background()

	created, err := baseSvc.CreateRestaurant(ctx, CreateRestaurantInput{
		Name:     "Half Gone",
		UserID:   alice.ID,
		ListType: models.ListFavourites,
	})
	require.NoError(t, err)

	svc := NewRestaurantService(deleteFailer{st}, st)
	err = svc.DeleteRestaurant(ctx, created.ID, models.ListFavourites)
	assert.Equal(t, apperr.PartialFailure, apperr.KindOf(err))

	// List entry was pulled before the canonical delete failed.
	user, err := st.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Favourites)
	_, err = st.RestaurantByID(ctx, created.ID)
	assert.NoError(t, err)
}
