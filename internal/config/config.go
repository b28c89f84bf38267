package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the progress store server settings.
type Config struct {
	Addr       string
	DBDriver   string
	DBDSN      string
	LogLevel   string
	JWTSecret  string
	TokenTTL   time.Duration
	CORSOrigin string
}

// ClientConfig holds the learner CLI settings.
type ClientConfig struct {
	APIURL          string
	SaveDebounce    time.Duration
	CredentialsPath string
	LogLevel        string
	RequestTimeout  time.Duration
}

// DefaultSaveDebounce is the quiet period before a progress change is persisted.
const DefaultSaveDebounce = 2 * time.Second

var supportedDrivers = map[string]bool{"sqlite3": true, "postgres": true, "mysql": true}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:       envOr("ADDR", ":8080"),
		DBDriver:   strings.ToLower(envOr("DB_DRIVER", "sqlite3")),
		DBDSN:      envOr("DB_DSN", "file:panda.db"),
		LogLevel:   envOr("LOG_LEVEL", "INFO"),
		JWTSecret:  envOr("JWT_SECRET", ""),
		TokenTTL:   envDurationOr("TOKEN_TTL", 72*time.Hour),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
	}
}

// LoadClient reads the CLI configuration the same way Load does.
func LoadClient() ClientConfig {
	_ = godotenv.Load()

	return ClientConfig{
		APIURL:          strings.TrimRight(envOr("PANDA_API_URL", "http://localhost:8080"), "/"),
		SaveDebounce:    envDurationOr("PANDA_SAVE_DEBOUNCE", DefaultSaveDebounce),
		CredentialsPath: envOr("PANDA_CREDENTIALS", defaultCredentialsPath()),
		LogLevel:        envOr("LOG_LEVEL", "WARN"),
		RequestTimeout:  envDurationOr("PANDA_REQUEST_TIMEOUT", 15*time.Second),
	}
}

// Validate reports every problem with the server configuration at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if !supportedDrivers[c.DBDriver] {
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported (sqlite3, postgres, mysql)", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN cannot be empty"))
	}
	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Validate reports every problem with the client configuration at once.
func (c ClientConfig) Validate() error {
	var errs []error
	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("PANDA_API_URL %q is not an absolute URL", c.APIURL))
	}
	if c.SaveDebounce <= 0 {
		errs = append(errs, errors.New("PANDA_SAVE_DEBOUNCE must be positive"))
	}
	if c.CredentialsPath == "" {
		errs = append(errs, errors.New("PANDA_CREDENTIALS cannot be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("PANDA_REQUEST_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// defaultCredentialsPath resolves $XDG_CONFIG_HOME/panda/credentials, falling
// back to ~/.config/panda/credentials.
func defaultCredentialsPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".panda", "credentials")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "panda", "credentials")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDurationOr accepts Go durations ("2s", "72h") or a bare number of seconds.
func envDurationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	return def
}
