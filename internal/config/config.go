package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the production backend origin.
const DefaultAPIURL = "https://civic-issue-backend-oju3.onrender.com"

// Config holds configuration for the civicflow console.
type Config struct {
	APIURL      string        `env:"CIVICFLOW_API_URL" envDefault:"https://civic-issue-backend-oju3.onrender.com"`
	AppName     string        `env:"CIVICFLOW_APP_NAME" envDefault:"civicflow"` // prefix of the storage keys
	StateDir    string        `env:"CIVICFLOW_STATE_DIR"`                        // durable tier (default ~/.civicflow)
	RuntimeDir  string        `env:"CIVICFLOW_RUNTIME_DIR"`                      // ephemeral tier (default $XDG_RUNTIME_DIR/civicflow)
	LogLevel    string        `env:"CIVICFLOW_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string        `env:"CIVICFLOW_LOG_FORMAT" envDefault:"text"`
	HTTPTimeout time.Duration `env:"CIVICFLOW_HTTP_TIMEOUT" envDefault:"0s"` // 0 leaves the transport default
	HTTPRetries int           `env:"CIVICFLOW_HTTP_RETRIES" envDefault:"2"`
	ListenAddr  string        `env:"CIVICFLOW_LISTEN_ADDR" envDefault:"127.0.0.1:8090"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		AppName:     "civicflow",
		LogLevel:    "warn",
		LogFormat:   "text",
		HTTPRetries: 2,
		ListenAddr:  "127.0.0.1:8090",
	}
}

// Load reads an optional .env file at envPath and then the process
// environment. A missing .env file is not an error.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}

// Validate checks the configuration. The API origin must be HTTPS unless it
// points at a loopback host.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("api url %q: missing host", c.APIURL)
	}
	switch u.Scheme {
	case "https":
	case "http":
		if !isLoopback(u.Hostname()) {
			return fmt.Errorf("api url %q: https required for non-local hosts", c.APIURL)
		}
	default:
		return fmt.Errorf("api url %q: unsupported scheme %q", c.APIURL, u.Scheme)
	}
	if c.AppName == "" {
		return errors.New("app name must not be empty")
	}
	if c.HTTPRetries < 0 {
		return fmt.Errorf("http retries must be >= 0, got %d", c.HTTPRetries)
	}
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// DurableDir returns the directory holding the durable token tier.
func (c Config) DurableDir() (string, error) {
	if c.StateDir != "" {
		return c.StateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, "."+c.AppName), nil
}

// EphemeralDir returns the directory holding the ephemeral token tier. It
// lives under XDG_RUNTIME_DIR, which the OS clears when the login session
// ends; without one it falls back to a per-user temp directory.
func (c Config) EphemeralDir() string {
	if c.RuntimeDir != "" {
		return c.RuntimeDir
	}
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, c.AppName)
	}
	return filepath.Join(os.TempDir(), c.AppName+"-"+strconv.Itoa(os.Getuid()))
}
