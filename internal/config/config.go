package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration sourced from env vars. A .env file, if
// present, is loaded by main before this is processed.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"restaurantApp"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"restaurant-photos"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}
