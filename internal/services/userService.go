package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jordanveal/bitelist/internal/apperr"
	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
	"github.com/jordanveal/bitelist/internal/utils"
)

// UserService handles sign-up, login, and the user CRUD operations.
type UserService struct {
	users     store.UserStore
	tags      store.TagStore
	jwtSecret string
}

func NewUserService(users store.UserStore, tags store.TagStore, jwtSecret string) *UserService {
	return &UserService{users: users, tags: tags, jwtSecret: jwtSecret}
}

// GenerateJWT generates a JWT token carrying the user id.
func (s *UserService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 4).Unix(), // Token expires in 4 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// CreateUser registers a new user with the built-in category tags.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, apperr.New(apperr.InvalidArgument, "username, email, and password are required")
	}

	_, err := s.users.UserByEmail(ctx, email)
	if err == nil {
		return models.User{}, apperr.New(apperr.Conflict, "this email is already in use")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, apperr.Wrap(apperr.Internal, "failed to check existing users", err)
	}

	user := models.User{
		ID:         uuid.NewString(),
		Username:   username,
		Email:      email,
		Password:   password, // plaintext baseline, see models.User
		Favourites: []models.Restaurant{},
		WantToTry:  []models.Restaurant{},
		Tags:       []string{},
	}

	// Mint canonical records for the default category tags and reference
	// them by id, so every id in the user's tag set resolves.
	defaults := make([]models.Tag, len(models.DefaultTagNames))
	for i, name := range models.DefaultTagNames {
		defaults[i] = models.Tag{ID: uuid.NewString(), Name: name, UserID: user.ID}
		user.Tags = append(user.Tags, defaults[i].ID)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, apperr.New(apperr.Conflict, "this email is already in use")
		}
		return models.User{}, apperr.Wrap(apperr.Internal, "failed to create user", err)
	}

	// The user record is already committed; a failed tag insert leaves a
	// dangling id that reads drop silently, so classify it honestly.
	tasks := make([]utils.ParallelTask, len(defaults))
	for i, tag := range defaults {
		tag := tag
		tasks[i] = func() error { return s.tags.InsertTag(ctx, tag) }
	}
	if err := utils.RunParallelTasks(tasks); err != nil {
		return models.User{}, apperr.Wrap(apperr.PartialFailure, "user created but default tags were not fully seeded", err)
	}

	return user.Snapshot(), nil
}

// Authenticate checks email and password and returns a snapshot plus a
// session token. The error message is identical for an unknown email and a
// wrong password so callers cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", apperr.New(apperr.InvalidArgument, "email and password are required")
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, "", apperr.New(apperr.InvalidCredentials, "invalid email or password")
		}
		return models.User{}, "", apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	// Plaintext comparison: insecure baseline kept from the original
	// application. Do not ship this without moving to a salted hash.
	if user.Password != password {
		return models.User{}, "", apperr.New(apperr.InvalidCredentials, "invalid email or password")
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return models.User{}, "", apperr.Wrap(apperr.Internal, "failed to sign session token", err)
	}

	return user.Snapshot(), token, nil
}

// GetUser returns a snapshot of the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return models.User{}, apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}
	return user.Snapshot(), nil
}

// UpdateUser applies the given profile fields. Only username, email, and
// password may change; ids and the denormalized arrays are managed elsewhere.
func (s *UserService) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return apperr.New(apperr.InvalidArgument, "no fields to update")
	}
	allowed := map[string]any{}
	for _, key := range []string{"username", "email", "password"} {
		if value, ok := fields[key]; ok {
			allowed[key] = value
		}
	}
	if len(allowed) == 0 {
		return apperr.New(apperr.InvalidArgument, "no updatable fields provided")
	}

	if err := s.users.UpdateUser(ctx, id, allowed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return apperr.Wrap(apperr.Internal, "failed to update user", err)
	}
	return nil
}

// DeleteUser removes the user record.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return apperr.Wrap(apperr.Internal, "failed to delete user", err)
	}
	return nil
}
