package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the immutable process configuration, loaded once at startup and
// passed by injection. The signing secret and TTLs are never re-read at
// runtime; key rotation is out of scope.
type Config struct {
	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	BcryptCost          int
	HashWorkers         int

	ServerHost string
	ServerPort string

	Environment string

	RedisURL              string
	RateLimitEnabled      bool
	RateLimitLoginLimit   int
	RateLimitLoginWindow  time.Duration
	RateLimitRefreshLimit int
	RateLimitRefreshWindow time.Duration

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	LogLevel  string
	LogFormat string

	AdminEmail    string
	AdminUsername string
	AdminPassword string
	AdminFullName string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL    = errors.New("invalid token TTL format")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		BcryptCost:  getEnvOrDefaultInt("BCRYPT_COST", 10),
		HashWorkers: getEnvOrDefaultInt("HASH_WORKERS", 4),

		ServerHost:  getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		Environment: getEnvOrDefault("ENV", "development"),

		RedisURL:              getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:      getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitLoginLimit:   getEnvOrDefaultInt("RATE_LIMIT_LOGIN_ATTEMPTS", 10),
		RateLimitRefreshLimit: getEnvOrDefaultInt("RATE_LIMIT_REFRESH_ATTEMPTS", 30),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   splitAndTrim(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", "admin@example.com"),
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminFullName: getEnvOrDefault("ADMIN_FULL_NAME", "System Administrator"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	accessTTL, err := parseSeconds(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "1800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTTL

	refreshTTL, err := parseSeconds(getEnvOrDefault("JWT_REFRESH_TOKEN_TTL", "604800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RefreshTokenTTL = refreshTTL

	loginWindow, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_LOGIN_WINDOW", "900"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitLoginWindow = loginWindow

	refreshWindow, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_REFRESH_WINDOW", "3600"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitRefreshWindow = refreshWindow

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
