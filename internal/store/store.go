// Package store defines the persistence operations the services need,
// independent of the backing engine. The mongostore implementation is used in
// production; memstore backs the unit tests.
package store

import (
	"context"
	"errors"

	"github.com/jordanveal/bitelist/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness conflict.
var ErrDuplicate = errors.New("record already exists")

// UserStore owns the users collection, including the denormalized list
// arrays and the tag-id set embedded in each user document.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	UserByID(ctx context.Context, id string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id string, fields map[string]any) error
	DeleteUser(ctx context.Context, id string) error

	// AddTag adds tagID to the user's tag set. Adding an id that is already
	// present is a no-op, not an error. Returns ErrNotFound if the user does
	// not exist.
	AddTag(ctx context.Context, userID, tagID string) error
	// RemoveTagFromAll pulls tagID from every user referencing it and
	// returns how many users were modified. Zero is not an error.
	RemoveTagFromAll(ctx context.Context, tagID string) (int64, error)

	// PushListEntry appends a restaurant snapshot to the named list array.
	PushListEntry(ctx context.Context, userID string, list models.ListType, entry models.Restaurant) error
	// PullListEntry removes the entry with the given restaurant id from the
	// named list array and reports whether an entry was actually removed.
	PullListEntry(ctx context.Context, userID string, list models.ListType, restaurantID string) (bool, error)
	// OwnerOfListEntry finds the user whose named list array contains an
	// entry with the given restaurant id.
	OwnerOfListEntry(ctx context.Context, list models.ListType, restaurantID string) (models.User, error)
}

// RestaurantStore owns the canonical restaurant records.
type RestaurantStore interface {
	InsertRestaurant(ctx context.Context, r models.Restaurant) error
	RestaurantByID(ctx context.Context, id string) (models.Restaurant, error)
	RestaurantsByOwner(ctx context.Context, userID string, list models.ListType) ([]models.Restaurant, error)
	SetListType(ctx context.Context, id string, list models.ListType) error
	SetPhoto(ctx context.Context, id string, photo models.Photo) error
	DeleteRestaurant(ctx context.Context, id string) error
}

// TagStore owns the canonical tag records.
type TagStore interface {
	InsertTag(ctx context.Context, t models.Tag) error
	// TagsByIDs resolves ids to tag records. Ids that no longer resolve are
	// silently dropped from the result.
	TagsByIDs(ctx context.Context, ids []string) ([]models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}
