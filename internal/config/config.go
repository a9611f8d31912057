package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used by New.
const (
	DefaultBaseURL    = "http://localhost:8080/api/gamecard"
	DefaultRatingURL  = "http://localhost:8080/api/rating"
	DefaultTimeout    = 10 * time.Second
	DefaultCacheTTL   = 300
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	configFileName    = "config.yaml"
	homeDirName       = ".icebreaker"
	maxCacheTTL       = 7 * 24 * 60 * 60
	configFileMode    = 0600
	configDirFileMode = 0750
)

// EnvHome overrides the icebreaker home directory (~/.icebreaker).
const EnvHome = "ICEBREAKER_HOME"

// Validation errors.
var (
	ErrInvalidBaseURL = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout = errors.New("api.timeout must be positive")
	ErrInvalidTTL     = fmt.Errorf("cache.ttl_seconds must be between 0 and %d", maxCacheTTL)
)

// Config is the complete icebreaker configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// APIConfig locates the remote catalogue service.
type APIConfig struct {
	// BaseURL is the gamecard API root, e.g. http://host/api/gamecard.
	BaseURL string `yaml:"base_url" env:"API_URL"`
	// RatingURL is the rating API root, e.g. http://host/api/rating.
	RatingURL string        `yaml:"rating_url" env:"RATING_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"API_TIMEOUT"`
	// Token is sent as a bearer token on write requests.
	Token string `yaml:"token,omitempty" env:"API_TOKEN"`
}

// CacheConfig controls the on-disk list cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" env:"CACHE_ENABLED"`
	TTLSeconds int    `yaml:"ttl_seconds" env:"CACHE_TTL_SECONDS"`
	Directory  string `yaml:"directory" env:"CACHE_DIR"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	// Categories seeds the sidebar filter before any games are loaded.
	Categories []string `yaml:"categories" env:"CATEGORIES"`
	// Username is prefilled in the login form and used as author of new games.
	Username string `yaml:"username,omitempty" env:"USERNAME"`
}

// New returns a Config populated with defaults.
func New() *Config {
	home := HomeDir()
	return &Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			RatingURL: DefaultRatingURL,
			Timeout:   DefaultTimeout,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTL,
			Directory:  filepath.Join(home, "cache"),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join(home, "logs", "icebreaker.log"),
		},
		UI: UIConfig{
			Categories: []string{},
		},
	}
}

// HomeDir returns the icebreaker home directory.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return homeDirName
	}
	return filepath.Join(userHome, homeDirName)
}

// DefaultPath returns the path of the global config file.
func DefaultPath() string {
	return filepath.Join(HomeDir(), configFileName)
}

// Load builds a Config from defaults, the global config file (if present),
// an optional overlay file and the environment, in that order.
func Load(overlayPath string) (*Config, error) {
	cfg := New()

	if err := cfg.loadFile(DefaultPath()); err != nil {
		return nil, err
	}

	if overlayPath != "" {
		if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirFileMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if !isHTTPURL(c.API.BaseURL) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL))
	}
	if c.API.RatingURL != "" && !isHTTPURL(c.API.RatingURL) {
		errs = append(errs, fmt.Errorf("api.rating_url must be an absolute http(s) URL: %q", c.API.RatingURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	if c.Cache.TTLSeconds < 0 || c.Cache.TTLSeconds > maxCacheTTL {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidTTL, c.Cache.TTLSeconds))
	}
	return errors.Join(errs...)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
