package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jordanveal/bitelist/internal/services"
)

type UserHandler struct {
	users    *services.UserService
	validate *validator.Validate
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users, validate: validator.New()}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Create handles sign-up (POST /newUser and POST /users).
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Missing required fields.")
	}

	user, err := h.users.CreateUser(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, user, "Your account has been created successfully!")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login. The response carries the user snapshot plus a
// session token for the protected routes.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Email and password are required.")
	}

	user, token, err := h.users.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"data":    fiber.Map{"user": user, "token": token},
		"message": "Welcome back! You’re now logged in.",
	})
}

// Get handles GET /users/:userId.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.Context(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

// Update handles PUT /users/:userId.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.users.UpdateUser(c.Context(), c.Params("userId"), fields); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "User updated")
}

// Delete handles DELETE /users/:userId.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.Context(), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "User deleted")
}
