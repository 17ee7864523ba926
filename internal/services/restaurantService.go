package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jordanveal/bitelist/internal/apperr"
	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
)

// RestaurantService keeps canonical restaurant records in sync with the
// denormalized snapshots embedded in each owner's favourites/wantToTry
// arrays. Every multi-step write here is sequential and non-transactional:
// the first failing step after a successful write surfaces as PartialFailure.
type RestaurantService struct {
	restaurants store.RestaurantStore
	users       store.UserStore
}

func NewRestaurantService(restaurants store.RestaurantStore, users store.UserStore) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, users: users}
}

// CreateRestaurantInput carries the caller-supplied restaurant fields.
type CreateRestaurantInput struct {
	Name     string
	Number   string
	Address  string
	Website  string
	Notes    string
	UserID   string
	ListType models.ListType
}

// CreateRestaurant inserts the canonical record, then appends a full
// snapshot of it to the owner's chosen list.
func (s *RestaurantService) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (models.Restaurant, error) {
	if in.Name == "" || in.UserID == "" || in.ListType == "" {
		return models.Restaurant{}, apperr.New(apperr.InvalidArgument, "name, user ID, and list type are required")
	}
	if !in.ListType.Valid() {
		return models.Restaurant{}, apperr.New(apperr.InvalidArgument, "invalid list type")
	}

	if _, err := s.users.UserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Restaurant{}, apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return models.Restaurant{}, apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	restaurant := models.Restaurant{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Number:   in.Number,
		Address:  in.Address,
		Website:  in.Website,
		Notes:    in.Notes,
		Tags:     []string{},
		UserID:   in.UserID,
		ListType: in.ListType,
	}

	if err := s.restaurants.InsertRestaurant(ctx, restaurant); err != nil {
		return models.Restaurant{}, apperr.Wrap(apperr.Internal, "failed to add restaurant", err)
	}

	// Canonical record committed; if the snapshot push fails the restaurant
	// exists but is invisible in the owner's list view.
	if err := s.users.PushListEntry(ctx, in.UserID, in.ListType, restaurant); err != nil {
		return models.Restaurant{}, apperr.Wrap(apperr.PartialFailure, "restaurant created but not added to the user's list", err)
	}

	return restaurant, nil
}

// ListRestaurants returns the canonical records for one of a user's lists.
// An existing user with no matches gets an empty slice, not an error.
func (s *RestaurantService) ListRestaurants(ctx context.Context, userID string, list models.ListType) ([]models.Restaurant, error) {
	if !list.Valid() {
		return nil, apperr.New(apperr.InvalidArgument, "invalid list type")
	}

	if _, err := s.users.UserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	restaurants, err := s.restaurants.RestaurantsByOwner(ctx, userID, list)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch restaurants", err)
	}
	return restaurants, nil
}

// DeleteRestaurant removes the denormalized entry first, then the canonical
// record. The owner is located through the list array itself.
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id string, list models.ListType) error {
	if id == "" || list == "" {
		return apperr.New(apperr.InvalidArgument, "restaurant ID and list type are required")
	}
	if !list.Valid() {
		return apperr.New(apperr.InvalidArgument, "invalid list type")
	}

	owner, err := s.users.OwnerOfListEntry(ctx, list, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "restaurant not found in any user's list")
		}
		return apperr.Wrap(apperr.Internal, "failed to look up owner", err)
	}

	removed, err := s.users.PullListEntry(ctx, owner.ID, list, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove restaurant from the list", err)
	}
	if !removed {
		// The entry vanished between lookup and pull. Do not delete the
		// canonical record on top of an already inconsistent state.
		return apperr.New(apperr.Internal, "list entry disappeared before removal")
	}

	if err := s.restaurants.DeleteRestaurant(ctx, id); err != nil {
		return apperr.Wrap(apperr.PartialFailure, "list entry removed but canonical record remains", err)
	}
	return nil
}

// MoveRestaurant moves a restaurant between the two lists: set the canonical
// listType, pull the entry from the old array, push a full snapshot to the
// new one. The restaurant must actually be present in fromList; otherwise
// nothing is touched.
func (s *RestaurantService) MoveRestaurant(ctx context.Context, id string, fromList, toList models.ListType) error {
	if id == "" || fromList == "" || toList == "" {
		return apperr.New(apperr.InvalidArgument, "restaurant ID, fromList, and toList are required")
	}
	if !toList.Valid() || !fromList.Valid() {
		return apperr.New(apperr.InvalidArgument, "invalid list type")
	}

	restaurant, err := s.restaurants.RestaurantByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "restaurant not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to look up restaurant", err)
	}

	owner, err := s.users.UserByID(ctx, restaurant.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	present := false
	for _, entry := range owner.List(fromList) {
		if entry.ID == id {
			present = true
			break
		}
	}
	if !present {
		return apperr.New(apperr.NotFound, "restaurant not found in the source list")
	}

	if err := s.restaurants.SetListType(ctx, id, toList); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update restaurant list type", err)
	}

	// From here on the canonical listType already says toList; a failure
	// leaves it disagreeing with the arrays.
	removed, err := s.users.PullListEntry(ctx, owner.ID, fromList, id)
	if err != nil {
		return apperr.Wrap(apperr.PartialFailure, "list type updated but entry not removed from the source list", err)
	}
	if !removed {
		return apperr.New(apperr.PartialFailure, "list type updated but the source list entry had already vanished")
	}

	restaurant.ListType = toList
	if err := s.users.PushListEntry(ctx, owner.ID, toList, restaurant); err != nil {
		return apperr.Wrap(apperr.PartialFailure, "restaurant removed from the source list but not added to the destination", err)
	}
	return nil
}
