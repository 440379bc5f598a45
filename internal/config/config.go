package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseDriver string
	DatabaseURL    string

	RedisURL       string
	IdempotencyTTL time.Duration

	JWTSecret       string
	JWTAccessExpiry time.Duration

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIORegion         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool
	MinIOPresignAvatars bool
	AvatarURLExpiry     time.Duration

	CORSOrigins string

	LogLevel  string
	LogFormat string

	Locale     string
	LocalePath string

	BadgePollInterval           time.Duration
	BadgeDisplayCap             int
	NotificationListLimit       int
	RetractCommentNotifications bool
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		IdempotencyTTL: getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", ""),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "alumni-avatars"),
		MinIORegion:         getEnv("MINIO_REGION", "us-east-1"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),
		MinIOPresignAvatars: getBoolEnv("MINIO_PRESIGN_AVATARS", false),
		AvatarURLExpiry:     getDurationEnv("AVATAR_URL_EXPIRY", time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		Locale:     getEnv("LOCALE", "en"),
		LocalePath: getEnv("LOCALE_PATH", ""),

		BadgePollInterval:           getDurationEnv("BADGE_POLL_INTERVAL", 30*time.Second),
		BadgeDisplayCap:             getIntEnv("BADGE_DISPLAY_CAP", 99),
		NotificationListLimit:       getIntEnv("NOTIFICATION_LIST_LIMIT", 50),
		RetractCommentNotifications: getBoolEnv("RETRACT_COMMENT_NOTIFICATIONS", true),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
