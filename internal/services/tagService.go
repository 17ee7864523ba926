package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/jordanveal/bitelist/internal/apperr"
	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
)

// TagService maintains canonical tag records and the tag-id sets embedded in
// user documents. The two live in different collections and are written
// without a transaction; failures between the writes are reported as
// PartialFailure rather than hidden.
type TagService struct {
	tags  store.TagStore
	users store.UserStore
}

func NewTagService(tags store.TagStore, users store.UserStore) *TagService {
	return &TagService{tags: tags, users: users}
}

// CreateTag inserts a canonical tag and links its id into the user's tag
// set. The user is verified up front; linking uses set semantics, so calling
// this twice for the same id never duplicates the entry.
func (s *TagService) CreateTag(ctx context.Context, name, userID string) (models.Tag, error) {
	if name == "" || userID == "" {
		return models.Tag{}, apperr.New(apperr.InvalidArgument, "name and user ID are required")
	}

	if _, err := s.users.UserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Tag{}, apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return models.Tag{}, apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	tag := models.Tag{ID: uuid.NewString(), Name: name, UserID: userID}
	if err := s.tags.InsertTag(ctx, tag); err != nil {
		return models.Tag{}, apperr.Wrap(apperr.Internal, "failed to add tag", err)
	}

	// The canonical record exists now. If the link step fails the tag is
	// orphaned: no user references it, and only a repair pass would find it.
	if err := s.users.AddTag(ctx, userID, tag.ID); err != nil {
		return models.Tag{}, apperr.Wrap(apperr.PartialFailure, "tag created but not linked to user", err)
	}

	return tag, nil
}

// TagsForUser resolves the user's tag set to canonical records. Ids that no
// longer resolve are dropped from the result, not repaired.
func (s *TagService) TagsForUser(ctx context.Context, userID string) ([]models.Tag, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "no user found with this ID")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	if len(user.Tags) == 0 {
		return []models.Tag{}, nil
	}

	tags, err := s.tags.TagsByIDs(ctx, user.Tags)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch tags", err)
	}
	return tags, nil
}

// DeleteTag removes the canonical record first, then cascades the id out of
// every referencing user's tag set. The ordering means a failed cascade
// leaves dangling references that TagsForUser drops on read; that trade-off
// is deliberate and surfaced as PartialFailure.
func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	if tagID == "" {
		return apperr.New(apperr.InvalidArgument, "tag ID is required")
	}

	if err := s.tags.DeleteTag(ctx, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "tag not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to delete tag", err)
	}

	modified, err := s.users.RemoveTagFromAll(ctx, tagID)
	if err != nil {
		return apperr.Wrap(apperr.PartialFailure, "tag deleted but references remain in user records", err)
	}
	if modified == 0 {
		// Best-effort cleanup: the tag simply wasn't in any user's set.
		log.Printf("deleteTag %s: no user records referenced it", tagID)
	}
	return nil
}
