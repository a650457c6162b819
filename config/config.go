package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	API_PREFIX string

	CORS_ORIGIN string
	GIN_MODE    string

	LOG_LEVEL string
	LOG_FILE  string

	AWS_REGION     string
	S3_BUCKET_NAME string

	GEMINI_API_KEY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "3001")
	DB_URL = mustEnv("DB_URL")
	API_PREFIX = normalizePrefix(getEnv("API_PREFIX", "/api"))

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	GIN_MODE = getEnv("GIN_MODE", "")

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_FILE = getEnv("LOG_FILE", "")

	// object storage and AI are optional; their endpoints report "not configured" without them
	AWS_REGION = getEnv("AWS_REGION", "")
	S3_BUCKET_NAME = getEnv("S3_BUCKET_NAME", "")
	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// normalizePrefix turns "api", "/api/" and "/api" into "/api"; "" and "/" mean no prefix.
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
