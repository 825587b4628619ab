package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// AIGateway holds the Pollinations endpoints and per-call timeouts. It is
// injected into the gateway client so nothing reads ambient globals.
type AIGateway struct {
	TextBaseURL  string
	ImageBaseURL string
	Timeout      time.Duration
	ModelTimeout time.Duration
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	PostgresURI        string
	FrontendURL        string
	R2                 R2
	AI                 AIGateway
	SecretKey          string
	CookieName         string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		AI: AIGateway{
			TextBaseURL:  getEnv("AI_TEXT_BASE_URL", "https://text.pollinations.ai"),
			ImageBaseURL: getEnv("AI_IMAGE_BASE_URL", "https://image.pollinations.ai"),
			Timeout:      getEnvDuration("AI_TIMEOUT_MS", 30000),
			ModelTimeout: getEnvDuration("AI_MODEL_TIMEOUT_MS", 10000),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "postforge_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultMs int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defaultMs) * time.Millisecond
}
