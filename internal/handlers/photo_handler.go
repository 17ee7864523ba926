package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jordanveal/bitelist/internal/services"
)

type PhotoHandler struct {
	photos *services.PhotoService
}

func NewPhotoHandler(photos *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload handles POST /restaurants/:id/photo (multipart, field "photo").
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return respondMessage(c, fiber.StatusUnauthorized, "Invalid user")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Failed to retrieve photo")
	}

	photo, err := h.photos.AttachPhoto(c.Context(), c.Params("id"), userID, fileHeader)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, photo, "Photo uploaded successfully!")
}

// URL handles GET /restaurants/:id/photo and returns a presigned link.
func (h *PhotoHandler) URL(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return respondMessage(c, fiber.StatusUnauthorized, "Invalid user")
	}

	url, err := h.photos.PhotoURL(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"url": url, "expires_in": "10 minutes"})
}
