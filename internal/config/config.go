// Package config builds the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// DefaultSessionTTL is the lifetime of a login session when SESSION_TTL is not set.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Config is the complete runtime configuration. It is built once at startup
// and passed to the constructors that need it.
type Config struct {
	Port             string
	GinMode          string
	LogFormat        string // "human" or "json", empty selects by GinMode
	APIURL           *url.URL
	CORSAllowOrigins []string
	EnablePprof      bool
	SessionTTL       time.Duration
	Database         Database
}

// Database configures the ledger store connection.
type Database struct {
	Driver string
	DSN    string
}

// LoadEnvFile loads a .env file from the working directory if one exists.
// A missing file is not an error, production deployments set the environment directly.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// Load reads the configuration from the environment, applying defaults
// for everything that is not set.
func Load() (*Config, error) {
	apiURL, err := url.Parse(getEnv("API_URL", "http://localhost:8080"))
	if err != nil {
		return nil, fmt.Errorf("API_URL is not a valid URL: %w", err)
	}

	ttl, err := getEnvDuration("SESSION_TTL", DefaultSessionTTL)
	if err != nil {
		return nil, err
	}

	pprof, err := getEnvBool("ENABLE_PPROF", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		APIURL:           apiURL,
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      pprof,
		SessionTTL:       ttl,
		Database: Database{
			Driver: getEnv("DB_DRIVER", DriverSQLite),
			DSN:    getEnv("DB_DSN", "data/budgetwise.db"),
		},
	}

	return cfg, nil
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("invalid database driver '%s': must be one of %s, %s", c.Database.Driver, DriverSQLite, DriverMySQL))
	}

	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DB_DSN must not be empty"))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid session TTL %s: must be positive", c.SessionTTL))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid gin mode '%s': must be debug, release or test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format '%s': must be human or json", c.LogFormat))
	}

	if c.APIURL == nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		errs = append(errs, errors.New("API_URL must be an absolute URL"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s is not a valid boolean: %w", key, err)
	}
	return b, nil
}
