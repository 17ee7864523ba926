package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jordanveal/bitelist/internal/config"
	"github.com/jordanveal/bitelist/internal/db"
	"github.com/jordanveal/bitelist/internal/server"
	"github.com/jordanveal/bitelist/internal/services"
	"github.com/jordanveal/bitelist/internal/storage"
	"github.com/jordanveal/bitelist/internal/store/mongostore"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client, database, err := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("Connected to MongoDB")

	records := mongostore.New(database)
	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := records.EnsureIndexes(indexCtx); err != nil {
		log.Printf("Warning: failed to ensure indexes: %v", err)
	}
	cancel()

	userService := services.NewUserService(records, records, cfg.JWTSecret)
	restaurantService := services.NewRestaurantService(records, records)
	tagService := services.NewTagService(records, records)

	// Photo routes are optional: without object storage the rest of the app
	// still works.
	var photoService *services.PhotoService
	if objects, err := storage.ConnectMinio(cfg); err != nil {
		log.Printf("Warning: object storage unavailable, photo routes disabled: %v", err)
	} else {
		log.Println("Connected to MinIO")
		photoService = services.NewPhotoService(records, objects, cfg.MinioBucket)
	}

	app := server.New(server.Options{
		JWTSecret:   cfg.JWTSecret,
		Users:       userService,
		Restaurants: restaurantService,
		Tags:        tagService,
		Photos:      photoService,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()
	log.Printf("Backend running at: %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	if err := db.Disconnect(client); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
}
