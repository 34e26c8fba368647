package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the process needs, loaded once at startup.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string

	// DigestHour is the hour of day (0-23) at which daily digests go out.
	DigestHour int

	AllowedOrigin string
	LogLevel      string
}

// LoadConfig reads configuration from the environment, with .env as a
// fallback for local development.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "learning_dashboard"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPSender:    getEnv("SMTP_SENDER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		DigestHour:    getEnvInt("DIGEST_HOUR", 8),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithField("key", key).Warnf("Invalid integer %q, using default %d", value, fallback)
		return fallback
	}
	return parsed
}
