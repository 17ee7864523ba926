package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jordanveal/bitelist/internal/services"
)

type TagHandler struct {
	tags     *services.TagService
	validate *validator.Validate
}

func NewTagHandler(tags *services.TagService) *TagHandler {
	return &TagHandler{tags: tags, validate: validator.New()}
}

type createTagRequest struct {
	Name   string `json:"name" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// Create handles POST /tags.
func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req createTagRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Name and user ID are required.")
	}

	tag, err := h.tags.CreateTag(c.Context(), req.Name, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, tag, "Tag added successfully!")
}

// List handles GET /tags/:userId.
func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.tags.TagsForUser(c.Context(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, tags)
}

// Delete handles DELETE /tags/:id.
func (h *TagHandler) Delete(c *fiber.Ctx) error {
	if err := h.tags.DeleteTag(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
