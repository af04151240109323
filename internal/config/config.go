// Package config loads script settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds the settings shared by the maintenance scripts.
type Config struct {
	ProjectID       string
	Database        string
	CredentialsFile string

	UsersCollection  string
	CitiesCollection string

	ReadTimeout      time.Duration
	CommitTimeout    time.Duration
	CleanupBatchSize int

	ExportDir    string
	ExportBucket string

	CheckCollection string
	CheckDoc        string

	LogLevel string
}

// Load reads a .env file if one exists, then the environment. Real
// environment variables take precedence over .env values.
func Load() (*Config, error) {
	// A missing .env is fine; settings may come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:        getEnv("GCP_PROJECT_ID", ""),
		Database:         getEnv("FIRESTORE_DATABASE", ""),
		CredentialsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		UsersCollection:  getEnv("USERS_COLLECTION", "users"),
		CitiesCollection: getEnv("CITIES_COLLECTION", "officialCities"),
		ExportDir:        getEnv("EXPORT_DIR", "exports"),
		ExportBucket:     getEnv("EXPORT_BUCKET", ""),
		CheckCollection:  getEnv("CHECK_COLLECTION", "config"),
		CheckDoc:         getEnv("CHECK_DOC", "app"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if cfg.ProjectID == "" {
		return nil, errors.New("GCP_PROJECT_ID environment variable is required")
	}

	var err error
	if cfg.ReadTimeout, err = getEnvDuration("READ_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.CommitTimeout, err = getEnvDuration("COMMIT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CleanupBatchSize, err = getEnvInt("CLEANUP_BATCH_SIZE", 500); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decimal matches a positive base-10 integer without leading zeros. cast
// would otherwise read "010" as octal and "0x10" as hex.
var decimal = regexp.MustCompile(`^[1-9][0-9]*$`)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt reads a positive decimal integer.
func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if !decimal.MatchString(v) {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

// getEnvDuration reads a positive Go duration ("90s") or a plain number of
// seconds.
func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if decimal.MatchString(v) {
		secs, err := cast.ToIntE(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return time.Duration(secs) * time.Second, nil
	}
	// A bare number here is zero, negative or zero-padded; cast would
	// read it as nanoseconds.
	if strings.TrimLeft(v, "+-0123456789.") == "" {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
