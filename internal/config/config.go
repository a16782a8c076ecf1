// internal/config/config.go
//
// Console configuration. Every user gets a ~/.nexthr directory holding the
// config file, the persisted session keys and the log file. The directory can
// be relocated with NEXTHR_CONFIG_DIR, which the tests rely on.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user directory created in the home directory.
	DirName = ".nexthr"

	// EnvConfigDir relocates the config directory when set.
	EnvConfigDir = "NEXTHR_CONFIG_DIR"

	configFileName = "config.yaml"

	defaultBaseURL        = "http://localhost:8080/api"
	defaultTimeoutSeconds = 30
	defaultLogLevel       = "info"
)

const defaultConfigYAML = `# nexthr console configuration
version: 1

api:
  # Base URL of the NextHR backend, including the /api prefix.
  base_url: http://localhost:8080/api
  # Per-request timeout in seconds.
  timeout_seconds: 30

log:
  # trace, debug, info, warn or error.
  level: info
`

// APIConfig points the console at the backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the parsed configuration plus the resolved directory layout.
type Config struct {
	// Dir is the resolved config directory (~/.nexthr unless overridden).
	Dir string `yaml:"-"`

	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
	Log     LogConfig `yaml:"log"`
}

func defaults() Config {
	return Config{
		Version: 1,
		API:     APIConfig{BaseURL: defaultBaseURL, TimeoutSeconds: defaultTimeoutSeconds},
		Log:     LogConfig{Level: defaultLogLevel},
	}
}

// ResolveDir picks the config directory: the override env var when set,
// otherwise ~/.nexthr.
func ResolveDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvConfigDir)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Load reads (or initializes) the configuration under dir. A missing config
// file is written out from the embedded default document so users have
// something to edit.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("config: ensure config dir: %w", err)
	}

	cfg := defaults()
	cfg.Dir = dir

	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
			return nil, fmt.Errorf("config: write default config: %w", err)
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Dir = dir
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("config: api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "":
		c.Log.Level = defaultLogLevel
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// Save writes the current configuration back to disk.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	path := filepath.Join(c.Dir, configFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// SessionDir is where the durable session keys live.
func (c *Config) SessionDir() string {
	return filepath.Join(c.Dir, "session")
}

// LogDir is where the console log file lives.
func (c *Config) LogDir() string {
	return filepath.Join(c.Dir, "logs")
}
