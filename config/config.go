package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DBUrl       string
	// Identity provider (Supabase-style hosted auth)
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate limiting
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	// Resume storage (S3-compatible)
	S3Provider       string // "aws" or "wasabi"
	S3AccessKeyID    string
	S3SecretKey      string
	S3Region         string
	S3Bucket         string
	S3WasabiEndpoint string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		// Strip trailing slashes so derived URLs never double up
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		RedisURL:      getEnv("REDIS_URL", getEnv("UPSTASH_REDIS_URL", "")),
		RedisPassword: getEnv("REDIS_PASSWORD", getEnv("UPSTASH_REDIS_PASSWORD", "")),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),

		S3Provider:       getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:    getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:      getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_RESUME_BUCKET", ""),
		S3WasabiEndpoint: getEnv("WASABI_ENDPOINT", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.S3Bucket == "" {
		log.Println("WARNING: S3_RESUME_BUCKET not configured. Resume uploads will be unavailable.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
