package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV"  envDefault:"development"`

	MongoURI        string `env:"MONGO_URI"`
	MongoDB         string `env:"MONGO_DB"          envDefault:"giffeed"`
	PostgresConnStr string `env:"POSTGRES_CONN_STR"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB"          envDefault:"0"`

	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	JWTSecret               string `env:"JWT_SECRET"`

	TenorAPIKey     string        `env:"TENOR_API_KEY"`
	TenorClientKey  string        `env:"TENOR_CLIENT_KEY" envDefault:"gif-feed"`
	GiphyAPIKey     string        `env:"GIPHY_API_KEY"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	SessionTTL  time.Duration `env:"SESSION_TTL"  envDefault:"30m"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.FirebaseCredentialsPath == "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("either FIREBASE_CREDENTIALS_PATH or JWT_SECRET must be set")
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
