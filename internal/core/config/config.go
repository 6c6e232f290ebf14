package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	RulesFile   string
	APIKeyHash  string

	// AllowedNetworks is empty when every known network is accepted.
	AllowedNetworks  []string
	AllowTestNumbers bool

	// CheckRetention bounds how long check history is kept.
	CheckRetention time.Duration
}

// LoadConfig reads .env file and returns a Config struct
func LoadConfig() *Config {
	// Try loading .env file (it might not exist in Production, which is fine)
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on System Env Variables")
	}

	return &Config{
		Port:             getEnv("PORT", "3000"),
		Env:              getEnv("ENV", "development"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RulesFile:        getEnv("RULES_FILE", ""),
		APIKeyHash:       strings.ToLower(getEnv("API_KEY_HASH", "")),
		AllowedNetworks:  splitList(getEnv("ALLOWED_NETWORKS", "")),
		AllowTestNumbers: getBool("ALLOW_TEST_NUMBERS", false),
		CheckRetention:   getDuration("CHECK_RETENTION", 30*24*time.Hour),
	}
}

// Helper to get env with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("Ignoring malformed boolean env var", "key", key, "value", raw)
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		slog.Warn("Ignoring malformed duration env var", "key", key, "value", raw)
		return fallback
	}
	return value
}

// splitList turns "visa, mastercard,,elo" into [visa mastercard elo].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
