// Package config loads site configuration from an optional YAML file,
// .env files and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultPort            = 8080
	defaultAPIBaseURL      = "http://localhost:8000"
	defaultWeightPath      = "/api/health/weight"
	defaultAPITimeout      = 15 * time.Second
	defaultRequestsPerSec  = 10.0
	defaultBurst           = 5
	defaultFetchTimeout    = 10 * time.Second
	defaultWindowDays      = 90
	defaultSessionTTL      = 30 * time.Minute
	defaultSweepInterval   = time.Minute
	defaultRevealInterval  = 30 * time.Millisecond
	defaultCookieName      = "portfolio_visitor"
	defaultCookieMaxAge    = 30 * 24 * time.Hour
	defaultSMTPHost        = "smtp.gmail.com"
	defaultSMTPPort        = 587
	defaultLoggingLevel    = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the site configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	API     APIConfig     `yaml:"api"`
	Fitness FitnessConfig `yaml:"fitness"`
	Reveal  RevealConfig  `yaml:"reveal"`
	Session SessionConfig `yaml:"session"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"PORT"              yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"         yaml:"debug"`
	StaticDir       string        `env:"STATIC_DIR"        yaml:"static_dir"`
	ImagesDir       string        `env:"IMAGES_DIR"        yaml:"images_dir"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"  yaml:"shutdown_timeout"`
}

// APIConfig describes the remote content API the site consumes.
type APIConfig struct {
	BaseURL           string            `env:"API_URL"         yaml:"base_url"`
	WeightPath        string            `env:"API_WEIGHT_PATH" yaml:"weight_path"`
	Timeout           time.Duration     `env:"API_TIMEOUT"     yaml:"timeout"`
	RequestsPerSecond float64           `env:"API_RATE_LIMIT"  yaml:"requests_per_second"`
	Burst             int               `env:"API_RATE_BURST"  yaml:"burst"`
	Lists             map[string]string `yaml:"lists"`
}

// FitnessConfig controls the weight panel controllers.
type FitnessConfig struct {
	DefaultWindow int           `env:"FITNESS_DEFAULT_WINDOW" yaml:"default_window"`
	FetchTimeout  time.Duration `env:"FITNESS_FETCH_TIMEOUT"  yaml:"fetch_timeout"`
	SessionTTL    time.Duration `env:"FITNESS_SESSION_TTL"    yaml:"session_ttl"`
	SweepInterval time.Duration `env:"FITNESS_SWEEP_INTERVAL" yaml:"sweep_interval"`
}

// RevealConfig controls the text reveal stream.
type RevealConfig struct {
	Interval time.Duration `env:"REVEAL_INTERVAL" yaml:"interval"`
}

// SessionConfig configures the visitor cookie.
type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"      yaml:"secret"`
	CookieName string        `env:"SESSION_COOKIE_NAME" yaml:"cookie_name"`
	MaxAge     time.Duration `env:"SESSION_MAX_AGE"     yaml:"max_age"`
	Secure     bool          `env:"SESSION_SECURE"      yaml:"secure"`
}

// SMTPConfig holds contact form delivery settings.
type SMTPConfig struct {
	Host string `env:"SMTP_HOST" yaml:"host"`
	Port int    `env:"SMTP_PORT" yaml:"port"`
	User string `env:"SMTP_USER" yaml:"user"`
	Pass string `env:"SMTP_PASS" yaml:"pass"`
	To   string `env:"TO_EMAIL"  yaml:"to"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL"       yaml:"level"`
	Development bool   `env:"LOG_DEVELOPMENT" yaml:"development"`
}

// Load reads the YAML file at path (a missing file is not an error),
// loads .env files, applies defaults and then environment overrides.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

// Path returns the config path from CONFIG_PATH or the default.
func Path(defaultPath string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultPath
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env.local then .env.
// godotenv never overrides variables that are already set.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func setDefaults(cfg *Config) {
	s := &cfg.Server
	if s.Port == 0 {
		s.Port = defaultPort
	}
	if s.StaticDir == "" {
		s.StaticDir = "./static"
	}
	if s.ImagesDir == "" {
		s.ImagesDir = "./images"
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}

	a := &cfg.API
	if a.BaseURL == "" {
		a.BaseURL = defaultAPIBaseURL
	}
	if a.WeightPath == "" {
		a.WeightPath = defaultWeightPath
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.RequestsPerSecond == 0 {
		a.RequestsPerSecond = defaultRequestsPerSec
	}
	if a.Burst == 0 {
		a.Burst = defaultBurst
	}
	if len(a.Lists) == 0 {
		a.Lists = map[string]string{
			"journal":  "/api/blog",
			"projects": "/api/projects",
			"work":     "/api/work-experience",
			"novels":   "/api/novels",
			"stories":  "/api/shortstories",
		}
	}

	f := &cfg.Fitness
	if f.DefaultWindow == 0 {
		f.DefaultWindow = defaultWindowDays
	}
	if f.FetchTimeout == 0 {
		f.FetchTimeout = defaultFetchTimeout
	}
	if f.SessionTTL == 0 {
		f.SessionTTL = defaultSessionTTL
	}
	if f.SweepInterval == 0 {
		f.SweepInterval = defaultSweepInterval
	}

	if cfg.Reveal.Interval == 0 {
		cfg.Reveal.Interval = defaultRevealInterval
	}

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = defaultCookieName
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = defaultCookieMaxAge
	}

	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = defaultSMTPHost
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = defaultSMTPPort
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port)}
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "api.base_url", Message: "must be an absolute URL"}
	}
	if c.API.Timeout < 0 || c.Fitness.FetchTimeout < 0 || c.Reveal.Interval < 0 {
		return &ValidationError{Field: "durations", Message: "must not be negative"}
	}
	if c.API.RequestsPerSecond < 0 {
		return &ValidationError{Field: "api.requests_per_second", Message: "must not be negative"}
	}
	switch c.Fitness.DefaultWindow {
	case 30, 90, 180, 365:
	default:
		return &ValidationError{Field: "fitness.default_window", Message: "must be one of 30, 90, 180, 365"}
	}
	return nil
}
