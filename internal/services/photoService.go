package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/jordanveal/bitelist/internal/apperr"
	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/store"
)

// PhotoService stores one photo per restaurant in an object bucket and keeps
// a reference on the canonical restaurant record.
type PhotoService struct {
	restaurants store.RestaurantStore
	objects     *minio.Client
	bucket      string
}

func NewPhotoService(restaurants store.RestaurantStore, objects *minio.Client, bucket string) *PhotoService {
	return &PhotoService{restaurants: restaurants, objects: objects, bucket: bucket}
}

func (s *PhotoService) ownedRestaurant(ctx context.Context, restaurantID, userID string) (models.Restaurant, error) {
	restaurant, err := s.restaurants.RestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Restaurant{}, apperr.New(apperr.NotFound, "restaurant not found")
		}
		return models.Restaurant{}, apperr.Wrap(apperr.Internal, "failed to look up restaurant", err)
	}
	// Other users' restaurants are indistinguishable from missing ones.
	if restaurant.UserID != userID {
		return models.Restaurant{}, apperr.New(apperr.NotFound, "restaurant not found")
	}
	return restaurant, nil
}

// AttachPhoto uploads the file to the bucket and records it on the
// restaurant. A failed metadata write triggers best-effort object cleanup.
func (s *PhotoService) AttachPhoto(ctx context.Context, restaurantID, userID string, fileHeader *multipart.FileHeader) (models.Photo, error) {
	if _, err := s.ownedRestaurant(ctx, restaurantID, userID); err != nil {
		return models.Photo{}, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.Photo{}, apperr.Wrap(apperr.InvalidArgument, "failed to open uploaded file", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s_%s", restaurantID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	_, err = s.objects.PutObject(ctx, s.bucket, objectName, file, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return models.Photo{}, apperr.Wrap(apperr.Internal, "failed to upload photo to storage", err)
	}

	photo := models.Photo{
		Object:      objectName,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}
	if err := s.restaurants.SetPhoto(ctx, restaurantID, photo); err != nil {
		// Try to clean up the uploaded object if the metadata write fails.
		go func() {
			s.objects.RemoveObject(context.Background(), s.bucket, objectName, minio.RemoveObjectOptions{})
		}()
		return models.Photo{}, apperr.Wrap(apperr.PartialFailure, "photo uploaded but not recorded on the restaurant", err)
	}

	return photo, nil
}

// PhotoURL returns a short-lived presigned download link for the
// restaurant's photo.
func (s *PhotoService) PhotoURL(ctx context.Context, restaurantID, userID string) (string, error) {
	restaurant, err := s.ownedRestaurant(ctx, restaurantID, userID)
	if err != nil {
		return "", err
	}
	if restaurant.Photo == nil {
		return "", apperr.New(apperr.NotFound, "restaurant has no photo")
	}

	url, err := s.objects.PresignedGetObject(ctx, s.bucket, restaurant.Photo.Object, 10*time.Minute, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to generate download link", err)
	}
	return url.String(), nil
}
