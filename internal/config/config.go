// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every environment-backed setting. godotenv.Load in
// main populates the process env before Load reads it.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	EmotionAPIURL   string
	EmotionTimeout  time.Duration
	FaceCascadePath string
	MinFaceSize     int
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "facialtimesheet_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),

		EmotionAPIURL:   getEnv("EMOTION_API_URL", "http://localhost:5000/analyze"),
		EmotionTimeout:  time.Duration(getEnvInt("EMOTION_TIMEOUT_SECONDS", 30)) * time.Second,
		FaceCascadePath: getEnv("FACE_CASCADE_PATH", ""),
		MinFaceSize:     getEnvInt("MIN_FACE_SIZE", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
