package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ApiServicePort     string
	AppBaseURL         string
	MaxFileSize        int64
	UploadDir          string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	AccessTokenTTL     int64 // seconds
	RefreshTokenTTL    int64 // seconds
	ActionTokenTTL     int64 // seconds, email confirmation / password reset
	RedisHost          string
	RedisPort          int64
	RedisPassword      string
	RedisDatabase      int64
	AuthRateLimit      int64 // requests per window per IP on credential endpoints
	AuthRateWindow     int64 // window length in seconds
	SMTPHost           string
	SMTPPort           int64
	SMTPUser           string
	SMTPPassword       string
	SMTPFrom           string
}

func LoadConfig() *Config {
	// Optional .env for local development; OS environment wins otherwise.
	_ = godotenv.Load()

	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                    // Default development
		LogLevel:           getLogLevel(),                                       // Default INFO
		ApiServicePort:     getEnv("API_SERVICE_PORT", "8080"),                  // Default 8080
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:8080"),     // Used in email links
		MaxFileSize:        getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),        // Default 10 MB
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),                     // Expertise documents
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),                     // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),              // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "motoarena_user"),         // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "motoarena_password"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "motoarena_db"),       // Default database name
		JWTSecret:          getEnv("JWT_SECRET", "motoarena_secret"),            // Default secret key
		JWTIssuer:          getEnv("JWT_ISSUER", "motoarena"),                   // iss claim
		JWTAudience:        getEnv("JWT_AUDIENCE", "motoarena-clients"),         // aud claim
		AccessTokenTTL:     getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),       // Default 15 minutes
		RefreshTokenTTL:    getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800),   // Default 7 days
		ActionTokenTTL:     getEnvAsInt64("ACTION_TOKEN_EXPIRATION", 86400),     // Default 24 hours
		RedisHost:          getEnv("REDIS_HOST", "redis"),                       // Default redis
		RedisPort:          getEnvAsInt64("REDIS_PORT", 6379),                   // Default 6379
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),                        // Default empty
		RedisDatabase:      getEnvAsInt64("REDIS_DATABASE", 0),                  // Default 0
		AuthRateLimit:      getEnvAsInt64("AUTH_RATE_LIMIT", 10),                // Default 10 requests
		AuthRateWindow:     getEnvAsInt64("AUTH_RATE_WINDOW", 60),               // Default 60 seconds
		SMTPHost:           getEnv("SMTP_HOST", ""),                             // Empty disables SMTP
		SMTPPort:           getEnvAsInt64("SMTP_PORT", 587),                     // Default 587
		SMTPUser:           getEnv("SMTP_USER", ""),                             // Default empty
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),                         // Default empty
		SMTPFrom:           getEnv("SMTP_FROM", "no-reply@motoarena.app"),       // From header
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
