package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/cvstools/cvs-operator/internal/cvs"
	"github.com/cvstools/cvs-operator/internal/retry"
)

// Config is the process configuration, read from environment variables.
type Config struct {
	// ServiceAccount: key file path, base64 JSON key, or SA email.
	ServiceAccount string
	// Project: project id or number. Empty falls back to the project id
	// embedded in the key file.
	Project string
	// APIURL overrides the public CVS endpoint.
	APIURL string
	// Region is the default region for commands; "-" means all regions.
	Region string

	RetryWindow     time.Duration
	RetryBackoffMin time.Duration
	RetryBackoffMax time.Duration

	// CreateWindow bounds polling for creates; BackupWindow for backup
	// availability. Zero means poll until terminal.
	CreateWindow time.Duration
	BackupWindow time.Duration
}

// Load reads config from environment variables, applies defaults and
// validates.
func Load() (Config, error) {
	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	parseDur := func(key string, def time.Duration) time.Duration {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				return d
			}
		}
		return def
	}

	cfg := Config{
		ServiceAccount: get("CVS_SERVICE_ACCOUNT", ""),
		Project:        get("CVS_PROJECT", ""),
		APIURL:         get("CVS_API_URL", ""),
		Region:         get("CVS_REGION", "-"),

		RetryWindow:     parseDur("CVS_RETRY_WINDOW", retry.Default.Window),
		RetryBackoffMin: parseDur("CVS_RETRY_BACKOFF_MIN", retry.Default.BackoffMin),
		RetryBackoffMax: parseDur("CVS_RETRY_BACKOFF_MAX", retry.Default.BackoffMax),

		CreateWindow: parseDur("CVS_CREATE_WINDOW", cvs.CreateWindow),
		BackupWindow: parseDur("CVS_BACKUP_WINDOW", cvs.BackupAvailableWindow),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServiceAccount == "" {
		return errors.New("CVS_SERVICE_ACCOUNT is required (key file path, base64 key, or service-account email)")
	}
	if c.RetryBackoffMax < c.RetryBackoffMin {
		return errors.New("CVS_RETRY_BACKOFF_MAX must not be below CVS_RETRY_BACKOFF_MIN")
	}
	return nil
}

// WriteBudget converts retry-related config values to a retry.Budget.
func (c Config) WriteBudget() retry.Budget {
	return retry.Budget{
		Window:     c.RetryWindow,
		BackoffMin: c.RetryBackoffMin,
		BackoffMax: c.RetryBackoffMax,
	}
}
