package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Cache    CacheConfig    `yaml:"cache"`
	Serve    ServeConfig    `yaml:"serve"`

	// Path is the file the config was read from, empty if none
	Path string `yaml:"-"`
}

// ServerConfig locates the summarization service
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Paths   EndpointPaths `yaml:"paths"`
}

// StoreConfig selects the history backend
type StoreConfig struct {
	Driver      string `yaml:"driver"` // sqlite, redis, memory
	Path        string `yaml:"path"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// DefaultsConfig holds the starting request options
type DefaultsConfig struct {
	Format    string `yaml:"format"`
	Length    string `yaml:"length"`
	Template  string `yaml:"template"`
	Sentiment bool   `yaml:"sentiment"`
}

// CacheConfig locates the result cache
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// ServeConfig configures the local web display
type ServeConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

const defaultServerURL = "http://localhost:8000"

// DefaultDir returns the directory holding config, state and cache.
// THREAD_DIGEST_HOME overrides it.
func DefaultDir() (string, error) {
	if dir := os.Getenv("THREAD_DIGEST_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".thread-digest"), nil
}

// LoadConfig reads the config file at path. An empty path means the default
// location, which is allowed to be missing.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		LogDebug("Skipping .env: %v", err)
	}

	cfg := &Config{}
	explicit := path != ""
	if !explicit {
		dir, err := DefaultDir()
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse config: %w", err)}
		}
		cfg.Path = path
	case os.IsNotExist(err) && !explicit:
		LogDebug("No config file at %s, using defaults", path)
	default:
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read config: %w", err)}
	}

	applyEnvOverrides(cfg)

	if err := setDefaults(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the value of VAR
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("THREAD_DIGEST_SERVER"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("THREAD_DIGEST_STORE"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Store.RedisURL = v
	}
}

func setDefaults(cfg *Config) error {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = defaultServerURL
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}

	paths := DefaultEndpointPaths()
	if cfg.Server.Paths.Topic == "" {
		cfg.Server.Paths.Topic = paths.Topic
	}
	if cfg.Server.Paths.Aggregator == "" {
		cfg.Server.Paths.Aggregator = paths.Aggregator
	}
	if cfg.Server.Paths.URL == "" {
		cfg.Server.Paths.URL = paths.URL
	}
	if cfg.Server.Paths.Text == "" {
		cfg.Server.Paths.Text = paths.Text
	}
	if cfg.Server.Paths.Trending == "" {
		cfg.Server.Paths.Trending = paths.Trending
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.RedisPrefix == "" {
		cfg.Store.RedisPrefix = "thread-digest:"
	}

	if cfg.Store.Path == "" || cfg.Cache.Dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return &ConfigError{Path: cfg.Path, Err: err}
		}
		if cfg.Store.Path == "" {
			cfg.Store.Path = filepath.Join(dir, "state.db")
		}
		if cfg.Cache.Dir == "" {
			cfg.Cache.Dir = filepath.Join(dir, "cache")
		}
	}

	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}
	return nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Path: cfg.Path, Field: "server.base_url", Err: fmt.Errorf("must be an absolute URL, got %q", cfg.Server.BaseURL)}
	}
	if cfg.Server.Timeout < 0 {
		return &ConfigError{Path: cfg.Path, Field: "server.timeout", Err: fmt.Errorf("must not be negative")}
	}

	switch strings.ToLower(cfg.Store.Driver) {
	case "sqlite", "redis", "memory":
	default:
		return &ConfigError{Path: cfg.Path, Field: "store.driver", Err: fmt.Errorf("unsupported driver %q (supported: sqlite, redis, memory)", cfg.Store.Driver)}
	}

	if _, err := cfg.DefaultOptions(); err != nil {
		return &ConfigError{Path: cfg.Path, Field: "defaults", Err: err}
	}
	return nil
}

// DefaultOptions returns the starting request options from the defaults
// section.
func (c *Config) DefaultOptions() (RequestOptions, error) {
	opts := DefaultOptions()

	format, err := ParseFormat(c.Defaults.Format)
	if err != nil {
		return opts, err
	}
	length, err := ParseLength(c.Defaults.Length)
	if err != nil {
		return opts, err
	}
	template, err := ParseTemplate(c.Defaults.Template)
	if err != nil {
		return opts, err
	}

	opts.Format = format
	opts.Length = length
	opts.Template = template
	opts.Sentiment = c.Defaults.Sentiment
	return opts, nil
}
