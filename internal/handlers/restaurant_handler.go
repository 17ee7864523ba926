package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jordanveal/bitelist/internal/models"
	"github.com/jordanveal/bitelist/internal/services"
)

type RestaurantHandler struct {
	restaurants *services.RestaurantService
	validate    *validator.Validate
}

func NewRestaurantHandler(restaurants *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, validate: validator.New()}
}

type createRestaurantRequest struct {
	Name     string `json:"name" validate:"required"`
	Number   string `json:"number"`
	Address  string `json:"address"`
	Website  string `json:"website"`
	Notes    string `json:"notes"`
	UserID   string `json:"userId" validate:"required"`
	ListType string `json:"listType" validate:"required,oneof=favourites wantToTry"`
}

// Create handles POST /restaurants.
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var req createRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Name, user ID, and list type are required.")
	}

	restaurant, err := h.restaurants.CreateRestaurant(c.Context(), services.CreateRestaurantInput{
		Name:     req.Name,
		Number:   req.Number,
		Address:  req.Address,
		Website:  req.Website,
		Notes:    req.Notes,
		UserID:   req.UserID,
		ListType: models.ListType(req.ListType),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, restaurant, "Restaurant added successfully!")
}

// List handles GET /restaurants/:userId?listType=.
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	listType := c.Query("listType")
	if listType == "" {
		return respondMessage(c, fiber.StatusBadRequest, "List type is required.")
	}

	restaurants, err := h.restaurants.ListRestaurants(c.Context(), c.Params("userId"), models.ListType(listType))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, restaurants)
}

type deleteRestaurantRequest struct {
	ID       string `json:"_id" validate:"required"`
	ListType string `json:"listType" validate:"required"`
}

// Delete handles DELETE /restaurants.
func (h *RestaurantHandler) Delete(c *fiber.Ctx) error {
	var req deleteRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Restaurant ID and list type are required")
	}

	if err := h.restaurants.DeleteRestaurant(c.Context(), req.ID, models.ListType(req.ListType)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Restaurant removed successfully")
}

type moveRestaurantRequest struct {
	ID       string `json:"_id" validate:"required"`
	FromList string `json:"fromList" validate:"required"`
	ToList   string `json:"toList" validate:"required"`
}

// Move handles POST /restaurants/move.
func (h *RestaurantHandler) Move(c *fiber.Ctx) error {
	var req moveRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Restaurant ID, fromList, and toList are required")
	}

	err := h.restaurants.MoveRestaurant(c.Context(), req.ID,
		models.ListType(req.FromList), models.ListType(req.ToList))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Restaurant moved successfully")
}
