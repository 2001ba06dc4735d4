package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	Environment string

	DBDSN    string
	RedisURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CORSOrigin string
	UploadDir  string

	GeminiAPIKey string
	GeminiModel  string

	WSInsecureSkipVerify bool
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnvAsInt("APP_PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),

		DBDSN:    os.Getenv("DB_DSN"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 7*24)) * time.Hour,

		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		WSInsecureSkipVerify: os.Getenv("WS_INSECURE_SKIP_VERIFY") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
