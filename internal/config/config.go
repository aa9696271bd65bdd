// Package config loads server configuration from an optional YAML file,
// a .env file and SHOWCASE_* environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Carousel  CarouselConfig  `yaml:"carousel"`
	Gallery   GalleryConfig   `yaml:"gallery"`
	GitHub    GitHubConfig    `yaml:"github"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
	// Seed loads the bundled projects and testimonials into an empty database.
	Seed bool `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode        string   `yaml:"mode"` // "http" or "stdio"
	MCPToken    string   `yaml:"mcp_token"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type CarouselConfig struct {
	AutoPlay         bool          `yaml:"autoplay"`
	Interval         time.Duration `yaml:"interval"`
	MobileInterval   time.Duration `yaml:"mobile_interval"`
	MobileBreakpoint int           `yaml:"mobile_breakpoint"`
	SwipeThreshold   float64       `yaml:"swipe_threshold"`
}

type GalleryConfig struct {
	PageSize int `yaml:"page_size"`
}

type GitHubConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Username          string        `yaml:"username"`
	Token             string        `yaml:"token"`
	APIURL            string        `yaml:"api_url"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	Pinned            int           `yaml:"pinned"`
	RefreshInterval   time.Duration `yaml:"refresh_interval"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "showcase.db",
			Seed: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Carousel: CarouselConfig{
			AutoPlay:         true,
			Interval:         5 * time.Second,
			MobileInterval:   7 * time.Second,
			MobileBreakpoint: 768,
			SwipeThreshold:   50,
		},
		Gallery: GalleryConfig{
			PageSize: 6,
		},
		GitHub: GitHubConfig{
			APIURL:            "https://api.github.com",
			CacheTTL:          time.Hour,
			Pinned:            6,
			RefreshInterval:   time.Hour,
			RequestsPerSecond: 1,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// A .env file in the working directory, if present, is loaded first; it never
// overrides variables already set in the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("SHOWCASE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("SHOWCASE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if err := envInt("SHOWCASE_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if dbPath := os.Getenv("SHOWCASE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if err := envBool("SHOWCASE_DB_SEED", &cfg.DB.Seed); err != nil {
		return err
	}
	if level := os.Getenv("SHOWCASE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("SHOWCASE_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	if mode := os.Getenv("SHOWCASE_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if token := os.Getenv("SHOWCASE_MCP_TOKEN"); token != "" {
		cfg.Transport.MCPToken = token
	}
	if origins := os.Getenv("SHOWCASE_CORS_ORIGINS"); origins != "" {
		cfg.Transport.CORSOrigins = splitList(origins)
	}

	if err := envBool("SHOWCASE_CAROUSEL_AUTOPLAY", &cfg.Carousel.AutoPlay); err != nil {
		return err
	}
	if err := envDuration("SHOWCASE_CAROUSEL_INTERVAL", &cfg.Carousel.Interval); err != nil {
		return err
	}
	if err := envDuration("SHOWCASE_CAROUSEL_MOBILE_INTERVAL", &cfg.Carousel.MobileInterval); err != nil {
		return err
	}
	if err := envInt("SHOWCASE_GALLERY_PAGE_SIZE", &cfg.Gallery.PageSize); err != nil {
		return err
	}

	if err := envBool("SHOWCASE_GITHUB_ENABLED", &cfg.GitHub.Enabled); err != nil {
		return err
	}
	if user := os.Getenv("SHOWCASE_GITHUB_USERNAME"); user != "" {
		cfg.GitHub.Username = user
	}
	if token := os.Getenv("SHOWCASE_GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if apiURL := os.Getenv("SHOWCASE_GITHUB_API_URL"); apiURL != "" {
		cfg.GitHub.APIURL = apiURL
	}
	if err := envDuration("SHOWCASE_GITHUB_CACHE_TTL", &cfg.GitHub.CacheTTL); err != nil {
		return err
	}
	if err := envDuration("SHOWCASE_GITHUB_REFRESH_INTERVAL", &cfg.GitHub.RefreshInterval); err != nil {
		return err
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	return validation.Errors{
		"server": validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		),
		"log": validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
		),
		"transport": validation.ValidateStruct(&c.Transport,
			validation.Field(&c.Transport.Mode, validation.Required, validation.In("http", "stdio")),
		),
		"carousel": validation.ValidateStruct(&c.Carousel,
			validation.Field(&c.Carousel.Interval, validation.Required, validation.Min(carousel.MinInterval), validation.Max(carousel.MaxInterval)),
			validation.Field(&c.Carousel.MobileInterval, validation.Required, validation.Min(carousel.MinInterval), validation.Max(carousel.MaxInterval)),
			validation.Field(&c.Carousel.MobileBreakpoint, validation.Min(0)),
			validation.Field(&c.Carousel.SwipeThreshold, validation.Min(0.0)),
		),
		"gallery": validation.ValidateStruct(&c.Gallery,
			validation.Field(&c.Gallery.PageSize, validation.Required, validation.Min(1), validation.Max(100)),
		),
		"github": validation.ValidateStruct(&c.GitHub,
			validation.Field(&c.GitHub.Username, validation.When(c.GitHub.Enabled, validation.Required)),
			validation.Field(&c.GitHub.APIURL, validation.When(c.GitHub.Enabled, validation.Required)),
			validation.Field(&c.GitHub.Pinned, validation.Min(0)),
			validation.Field(&c.GitHub.RequestsPerSecond, validation.Min(0.0)),
		),
	}.Filter()
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func envBool(key string, dst *bool) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
