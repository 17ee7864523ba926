// Package mongostore implements the store interfaces on MongoDB collections.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
)

type Store struct {
	users       *mongo.Collection
	restaurants *mongo.Collection
	tags        *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:       db.Collection("users"),
		restaurants: db.Collection("restaurants"),
		tags:        db.Collection("tags"),
	}
}

// EnsureIndexes creates the unique email index. Safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	// Check-then-insert, with the unique index as the backstop for races.
	err := s.users.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return store.ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	_, err = s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

func (s *Store) UserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, store.ErrNotFound
	}
	return user, err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, store.ErrNotFound
	}
	return user, err
}

func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AddTag(ctx context.Context, userID, tagID string) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{"tags": tagID}})
	if err != nil {
		return err
	}
	// ModifiedCount stays 0 when the id is already in the set; only a
	// missing user is an error.
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) RemoveTagFromAll(ctx context.Context, tagID string) (int64, error) {
	res, err := s.users.UpdateMany(ctx, bson.M{"tags": tagID}, bson.M{"$pull": bson.M{"tags": tagID}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) PushListEntry(ctx context.Context, userID string, list models.ListType, entry models.Restaurant) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{string(list): entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) PullListEntry(ctx context.Context, userID string, list models.ListType, restaurantID string) (bool, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{string(list): bson.M{"_id": restaurantID}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (s *Store) OwnerOfListEntry(ctx context.Context, list models.ListType, restaurantID string) (models.User, error) {
	var user models.User
	filter := bson.M{string(list): bson.M{"$elemMatch": bson.M{"_id": restaurantID}}}
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, store.ErrNotFound
	}
	return user, err
}

func (s *Store) InsertRestaurant(ctx context.Context, r models.Restaurant) error {
	_, err := s.restaurants.InsertOne(ctx, r)
	return err
}

func (s *Store) RestaurantByID(ctx context.Context, id string) (models.Restaurant, error) {
	var r models.Restaurant
	err := s.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Restaurant{}, store.ErrNotFound
	}
	return r, err
}

func (s *Store) RestaurantsByOwner(ctx context.Context, userID string, list models.ListType) ([]models.Restaurant, error) {
	cursor, err := s.restaurants.Find(ctx, bson.M{"userId": userID, "listType": list})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *Store) SetListType(ctx context.Context, id string, list models.ListType) error {
	res, err := s.restaurants.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"listType": list}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SetPhoto(ctx context.Context, id string, photo models.Photo) error {
	res, err := s.restaurants.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photo": photo}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	res, err := s.restaurants.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) InsertTag(ctx context.Context, t models.Tag) error {
	_, err := s.tags.InsertOne(ctx, t)
	return err
}

func (s *Store) TagsByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	cursor, err := s.tags.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	res, err := s.tags.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
