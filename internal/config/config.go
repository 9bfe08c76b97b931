package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string
	MongoURI     string
	MongoDB      string
	RedisAddress string
	NATSURL      string
	JWTSecret    string
	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
}

func Load() (*Config, error) {
	// .env is optional, environment variables are the source of truth.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	smtpPortStr := getEnv("SMTP_PORT", "587")
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Warning: invalid SMTP_PORT value %q, defaulting to 587", smtpPortStr)
		smtpPort = 587
	}

	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "pazarlio"),
		RedisAddress: getEnv("REDIS_ADDRESS", "localhost:6379"),
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     smtpPort,
		SMTPEmail:    getEnv("SMTP_EMAIL", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
	}

	if cfg.JWTSecret == "your-secret-key" {
		log.Println("Warning: JWT_SECRET is set to its default insecure value. Set a strong secret in your environment or .env file.")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET is not set. This is required for security.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
