// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the tournament scoring season when the environment does not
// override them.
const (
	defaultSeasonStart = "2025-08-17"
	defaultSeasonEnd   = "2025-11-09"
)

type Config struct {
	DatabaseURL    string
	JWTSecretKey   string
	ServerPort     int
	AllowedOrigins []string

	// Cloudflare R2 object storage. Optional: photo uploads are disabled
	// when unset.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// Discord announcement posting. Optional.
	DiscordToken     string
	DiscordChannelID string

	SeasonStart time.Time
	SeasonEnd   time.Time
}

// Load reads configuration from environment variables, optionally seeded
// from a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	origins := splitAndTrim(os.Getenv("ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	seasonStart, err := parseDateEnv("SEASON_START", defaultSeasonStart)
	if err != nil {
		return nil, err
	}
	seasonEnd, err := parseDateEnv("SEASON_END", defaultSeasonEnd)
	if err != nil {
		return nil, err
	}
	if seasonEnd.Before(seasonStart) {
		return nil, fmt.Errorf("SEASON_END %s is before SEASON_START %s",
			seasonEnd.Format("2006-01-02"), seasonStart.Format("2006-01-02"))
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		JWTSecretKey:   jwtKey,
		ServerPort:     port,
		AllowedOrigins: origins,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),

		SeasonStart: seasonStart,
		SeasonEnd:   seasonEnd,
	}

	return cfg, nil
}

// R2Configured reports whether every R2 setting needed for uploads is set.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// DiscordConfigured reports whether announcement posting is enabled.
func (c *Config) DiscordConfigured() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

func parseDateEnv(name, fallback string) (time.Time, error) {
	value := os.Getenv(name)
	if value == "" {
		value = fallback
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s environment variable %q: %w", name, value, err)
	}
	return parsed, nil
}

func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
