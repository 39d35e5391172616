package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DataDir             string
	AdminPassword       string
	JWTSecret           string
	AdminSessionExpiry  time.Duration
	GeminiApiKey        string
	FirebaseCredentials string
	FileHostURL         string
	MaxUploadBytes      int64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	sessionExpiry := 12 * time.Hour
	if exp := os.Getenv("ADMIN_SESSION_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			sessionExpiry = parsed
		}
	}

	maxUpload := int64(4 << 20) // 4 MiB ceiling for encoded image payloads
	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxUpload = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DataDir:             getEnv("DATA_DIR", "data"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		AdminSessionExpiry:  sessionExpiry,
		GeminiApiKey:        getEnv("GEMINI_API_KEY", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		FileHostURL:         getEnv("FILE_HOST_URL", "https://0x0.st"),
		MaxUploadBytes:      maxUpload,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
