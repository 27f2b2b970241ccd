package config

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// CORS
	AllowedOrigins []string

	// Catalog: empty = built-in rooms, a file path, or s3://bucket/key
	CatalogSource string

	// Storage (S3 / MinIO) for the catalog source
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// Payment simulator
	PaymentDelay       time.Duration
	PaymentSuccessRate float64
	Currency           string

	// Booking sessions
	SessionTTL      time.Duration
	SessionHashKey  []byte
	SessionBlockKey []byte

	// Confirmation sinks (all optional)
	RedisURL             string
	ConfirmationChannel  string
	RabbitMQURL          string
	ConfirmationExchange string
	DatabaseURL          string

	// Email
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		// Catalog
		CatalogSource: getEnv("CATALOG_SOURCE", ""),

		// Storage
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		// Payment simulator
		PaymentDelay:       parseDuration(getEnv("PAYMENT_DELAY", "2s"), 2*time.Second),
		PaymentSuccessRate: parseFloat(getEnv("PAYMENT_SUCCESS_RATE", "0.9"), 0.9),
		Currency:           getEnv("CURRENCY", "FCFA"),

		// Booking sessions
		SessionTTL:      parseDuration(getEnv("SESSION_TTL", "30m"), 30*time.Minute),
		SessionHashKey:  parseBase64(getEnv("SESSION_HASH_KEY", "")),
		SessionBlockKey: parseBase64(getEnv("SESSION_BLOCK_KEY", "")),

		// Confirmation sinks
		RedisURL:             getEnv("REDIS_URL", ""),
		ConfirmationChannel:  getEnv("CONFIRMATION_CHANNEL", "booking:confirmations"),
		RabbitMQURL:          getEnv("RABBITMQ_URL", ""),
		ConfirmationExchange: getEnv("CONFIRMATION_EXCHANGE", "reservation_confirmed"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),

		// Email
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "reservations@hotel.local"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Hotel Reservations"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func parseFloat(s string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 || value > 1 {
		return defaultValue
	}
	return value
}

// parseBase64 accepts padded or raw base64; invalid input yields nil so a random key is used.
func parseBase64(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b
	}
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		log.Println("Invalid base64 session key, falling back to a random key")
		return nil
	}
	return b
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
