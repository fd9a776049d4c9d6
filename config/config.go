package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Application configuration, loaded once from the environment in main.
var (
	ServerPort string

	AWSRegion string

	JWTSecret string

	CORSOrigins []string

	RedisURL      string
	RedisPassword string
	RedisDB       int

	SESSender string
	AppURL    string

	SeedEnabled bool
	SeedCount   int
)

// Load reads .env (and .env.local overrides, if present) and fills the
// package-level configuration values.
func Load() {
	// Missing .env files are fine; deployments inject real env vars.
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	ServerPort = getEnv("PORT", "8080")
	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	JWTSecret = getEnv("JWT_SECRET", "DEV@Tinder$790")

	CORSOrigins = strings.Split(getEnv("CORS_ORIGIN", "http://localhost:5173,http://localhost:5176"), ",")

	RedisURL = getEnv("REDIS_URL", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB = getEnvInt("REDIS_DB", 0)

	SESSender = getEnv("SES_SENDER", "DevTinder <noreply@devtinder.dev>")
	AppURL = getEnv("APP_URL", "http://localhost:5173")

	SeedEnabled = getEnv("SEED", "false") == "true"
	SeedCount = getEnvInt("SEED_COUNT", 15)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
