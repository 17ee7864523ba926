// Package server wires middleware and routes into a Fiber app.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/jordanveal/bitelist/internal/handlers"
	"github.com/jordanveal/bitelist/internal/middleware"
	"github.com/jordanveal/bitelist/internal/services"
)

// Options carries the services the routes are built on. Photos may be nil
// when object storage is unavailable; the photo routes are then not
// registered.
type Options struct {
	JWTSecret   string
	Users       *services.UserService
	Restaurants *services.RestaurantService
	Tags        *services.TagService
	Photos      *services.PhotoService
}

func New(opts Options) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New())

	userHandler := handlers.NewUserHandler(opts.Users)
	restaurantHandler := handlers.NewRestaurantHandler(opts.Restaurants)
	tagHandler := handlers.NewTagHandler(opts.Tags)
	auth := middleware.Auth(opts.JWTSecret)

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("Hello from the backend")
	})

	// Sign-up is reachable at both paths; the SPA uses both.
	app.Post("/newUser", userHandler.Create)
	app.Post("/users", userHandler.Create)
	app.Post("/login", userHandler.Login)

	app.Get("/users/:userId", auth, userHandler.Get)
	app.Put("/users/:userId", auth, userHandler.Update)
	app.Delete("/users/:userId", auth, userHandler.Delete)

	app.Get("/restaurants/:userId", restaurantHandler.List)
	app.Post("/restaurants/move", restaurantHandler.Move)
	app.Post("/restaurants", restaurantHandler.Create)
	app.Delete("/restaurants", restaurantHandler.Delete)

	if opts.Photos != nil {
		photoHandler := handlers.NewPhotoHandler(opts.Photos)
		app.Post("/restaurants/:id/photo", auth, photoHandler.Upload)
		app.Get("/restaurants/:id/photo", auth, photoHandler.URL)
	}

	app.Get("/tags/:userId", tagHandler.List)
	app.Post("/tags", tagHandler.Create)
	app.Delete("/tags/:id", tagHandler.Delete)

	// Unmatched routes get the same JSON envelope as everything else.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  fiber.StatusNotFound,
			"message": "This isn't the endpoint you're looking for",
		})
	})

	return app
}
