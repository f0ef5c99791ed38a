package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Gemini configuration
	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string

	// S3 configuration
	S3Bucket  string
	AWSRegion string

	// CORS configuration
	CORSAllowedOrigins []string
}

// LoadConfig creates a new Config instance from environment variables.
// Missing required credentials are a startup-time failure.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments supply the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: readSecretEnv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: readSecretEnv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: readSecretEnv("JWT_SECRET"),

		GeminiAPIKey: readSecretEnv("GEMINI_API_KEY"),
		GeminiAPIURL: os.Getenv("GEMINI_API_URL"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		S3Bucket:  getEnv("S3_BUCKET_NAME", "meal-images"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:5173"}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that required values are present for the current environment
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := []struct {
		name  string
		value string
	}{
		{"DB_USER", cfg.DBUser},
		{"DB_PASSWORD", cfg.DBPassword},
		{"DB_NAME", cfg.DBName},
		{"JWT_SECRET", cfg.JWTSecret},
		{"GEMINI_API_KEY", cfg.GeminiAPIKey},
	}
	for _, req := range required {
		if req.value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", req.name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}

// readSecretEnv reads a value from NAME or, when unset, from the file named
// by NAME_FILE. The file form is used with Docker secrets.
func readSecretEnv(name string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	if path := os.Getenv(name + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

func getEnv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
