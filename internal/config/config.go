package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// RedisURL enables publishing enrollment events to Redis pub/sub.
	// Empty disables Redis entirely.
	RedisURL           string
	RedisChannelPrefix string
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
	// InitialCourseCapacity is a sizing hint for the course registry, not a limit.
	InitialCourseCapacity int
	// RateLimitPerMinute caps mutating API requests per client IP; 0 disables it.
	RateLimitPerMinute int
	EnableBrotli       bool
	// EventBufferSize is the per-subscriber buffer of the WebSocket event stream.
	EventBufferSize int
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "pretty"),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisChannelPrefix:    getEnv("REDIS_CHANNEL_PREFIX", "enrollment"),
		AllowedOrigins:        parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		InitialCourseCapacity: getEnvInt("INITIAL_COURSE_CAPACITY", 10),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		EnableBrotli:          getEnvBool("ENABLE_BROTLI", true),
		EventBufferSize:       getEnvInt("EVENT_BUFFER_SIZE", 64),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
