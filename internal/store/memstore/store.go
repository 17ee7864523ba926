// Package memstore is a map-backed implementation of the store interfaces.
// It exists for tests and local development without a MongoDB instance.
package memstore

import (
	"context"
	"sync"

	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
)

type Store struct {
	mu          sync.RWMutex
	users       map[string]models.User
	restaurants map[string]models.Restaurant
	tags        map[string]models.Tag
	// order preserves insertion order for deterministic listings.
	restaurantOrder []string
}

func New() *Store {
	return &Store{
		users:       make(map[string]models.User),
		restaurants: make(map[string]models.Restaurant),
		tags:        make(map[string]models.Tag),
	}
}

func cloneUser(u models.User) models.User {
	u.Favourites = append([]models.Restaurant(nil), u.Favourites...)
	u.WantToTry = append([]models.Restaurant(nil), u.WantToTry...)
	u.Tags = append([]string(nil), u.Tags...)
	return u
}

func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *Store) UserByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "username":
			if v, ok := value.(string); ok {
				user.Username = v
			}
		case "email":
			if v, ok := value.(string); ok {
				user.Email = v
			}
		case "password":
			if v, ok := value.(string); ok {
				user.Password = v
			}
		}
	}
	s.users[id] = user
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) AddTag(ctx context.Context, userID, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	for _, existing := range user.Tags {
		if existing == tagID {
			return nil
		}
	}
	user.Tags = append(append([]string(nil), user.Tags...), tagID)
	s.users[userID] = user
	return nil
}

func (s *Store) RemoveTagFromAll(ctx context.Context, tagID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for id, user := range s.users {
		kept := user.Tags[:0:0]
		for _, existing := range user.Tags {
			if existing != tagID {
				kept = append(kept, existing)
			}
		}
		if len(kept) != len(user.Tags) {
			user.Tags = kept
			s.users[id] = user
			modified++
		}
	}
	return modified, nil
}

func (s *Store) PushListEntry(ctx context.Context, userID string, list models.ListType, entry models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	if list == models.ListWantToTry {
		user.WantToTry = append(append([]models.Restaurant(nil), user.WantToTry...), entry)
	} else {
		user.Favourites = append(append([]models.Restaurant(nil), user.Favourites...), entry)
	}
	s.users[userID] = user
	return nil
}

func (s *Store) PullListEntry(ctx context.Context, userID string, list models.ListType, restaurantID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	entries := user.List(list)
	kept := entries[:0:0]
	for _, entry := range entries {
		if entry.ID != restaurantID {
			kept = append(kept, entry)
		}
	}
	removed := len(kept) != len(entries)
	if list == models.ListWantToTry {
		user.WantToTry = kept
	} else {
		user.Favourites = kept
	}
	s.users[userID] = user
	return removed, nil
}

func (s *Store) OwnerOfListEntry(ctx context.Context, list models.ListType, restaurantID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		for _, entry := range user.List(list) {
			if entry.ID == restaurantID {
				return cloneUser(user), nil
			}
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) InsertRestaurant(ctx context.Context, r models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[r.ID]; !ok {
		s.restaurantOrder = append(s.restaurantOrder, r.ID)
	}
	s.restaurants[r.ID] = r
	return nil
}

func (s *Store) RestaurantByID(ctx context.Context, id string) (models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return models.Restaurant{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Store) RestaurantsByOwner(ctx context.Context, userID string, list models.ListType) ([]models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []models.Restaurant{}
	for _, id := range s.restaurantOrder {
		r, ok := s.restaurants[id]
		if ok && r.UserID == userID && r.ListType == list {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *Store) SetListType(ctx context.Context, id string, list models.ListType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return store.ErrNotFound
	}
	r.ListType = list
	s.restaurants[id] = r
	return nil
}

func (s *Store) SetPhoto(ctx context.Context, id string, photo models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Photo = &photo
	s.restaurants[id] = r
	return nil
}

func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.restaurants, id)
	for i, existing := range s.restaurantOrder {
		if existing == id {
			s.restaurantOrder = append(s.restaurantOrder[:i], s.restaurantOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) InsertTag(ctx context.Context, t models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[t.ID] = t
	return nil
}

func (s *Store) TagsByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []models.Tag{}
	for _, id := range ids {
		if t, ok := s.tags[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.tags, id)
	return nil
}
