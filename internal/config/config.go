// Load envs from .env
// Validate required values
// Provide default values
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RabbitMQURL string

	GeminiAPIKey string
	GeminiModel  string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}

// Load reads the environment (plus .env when present) and fails fast on
// anything required. Missing config at runtime is much harder to debug than
// a refusal to start.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("empty DATABASE_URL in environment")
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("empty RABBITMQ_URL in environment")
	}
	if cfg.S3Bucket == "" {
		log.Fatal("empty S3_BUCKET in environment")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash"
	}
	return cfg
}
