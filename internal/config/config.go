// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxImportBatchSize is the ceiling on IMPORT_BATCH_SIZE.
const maxImportBatchSize = 450

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs admin session tokens. Required.
	JWTSecret string

	// AdminEmails is the allow-list of emails that may hold an admin session.
	AdminEmails []string

	// AdminAccounts maps an email to its bcrypt password hash.
	// Set ADMIN_ACCOUNTS to a comma-separated list of email:hash pairs.
	AdminAccounts map[string]string

	// SessionTTL is how long an admin session stays valid. Defaults to 12h.
	SessionTTL time.Duration

	// ImportImageURLColumn adds the optional image_url column to the CSV schema.
	ImportImageURLColumn bool

	// ImportBatchSize is the number of herbs committed per transaction.
	// Defaults to, and is capped at, 450.
	ImportBatchSize int

	// MaxUploadBytes caps the size of a CSV upload. Defaults to 5 MiB.
	MaxUploadBytes int64

	// MigrateOnStart applies pending migrations before serving. Defaults to true.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// variables whose values cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminEmails: splitCSV(os.Getenv("ADMIN_EMAILS")),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	var err error
	if cfg.AdminAccounts, err = parseAccounts(os.Getenv("ADMIN_ACCOUNTS")); err != nil {
		invalid = append(invalid, "ADMIN_ACCOUNTS")
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "12h")); err != nil || cfg.SessionTTL <= 0 {
		invalid = append(invalid, "SESSION_TTL")
	}
	if cfg.ImportImageURLColumn, err = strconv.ParseBool(getEnv("IMPORT_IMAGE_URL_COLUMN", "false")); err != nil {
		invalid = append(invalid, "IMPORT_IMAGE_URL_COLUMN")
	}
	if cfg.ImportBatchSize, err = strconv.Atoi(getEnv("IMPORT_BATCH_SIZE", strconv.Itoa(maxImportBatchSize))); err != nil || cfg.ImportBatchSize < 1 {
		invalid = append(invalid, "IMPORT_BATCH_SIZE")
	}
	cfg.ImportBatchSize = min(cfg.ImportBatchSize, maxImportBatchSize)
	if cfg.MaxUploadBytes, err = strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "5242880"), 10, 64); err != nil || cfg.MaxUploadBytes < 1 {
		invalid = append(invalid, "MAX_UPLOAD_BYTES")
	}
	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "true")); err != nil {
		invalid = append(invalid, "MIGRATE_ON_START")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseAccounts parses comma-separated email:hash pairs. The split is on the
// first colon; bcrypt hashes never contain one.
func parseAccounts(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range splitCSV(s) {
		email, hash, ok := strings.Cut(pair, ":")
		email, hash = strings.TrimSpace(email), strings.TrimSpace(hash)
		if !ok || email == "" || hash == "" {
			return nil, fmt.Errorf("malformed account entry %q", pair)
		}
		out[email] = hash
	}
	return out, nil
}
