package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for goal-stock.
type Config struct {
	Backend Backend `yaml:"backend"`
	Server  Server  `yaml:"server"`
	Search  Search  `yaml:"search"`
	Logging Logging `yaml:"logging"`
}

// Backend points at the analysis service (GET /autocomplete, POST /).
type Backend struct {
	URL string `yaml:"url"`
}

// Server configures the companion catalog server.
type Server struct {
	Addr        string `yaml:"addr"`
	TickersPath string `yaml:"tickers_path"`
	StaticDir   string `yaml:"static_dir"`
}

type Search struct {
	Engine string `yaml:"engine"` // memory or bleve
}

type Logging struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`    // json or pretty
	FilePath string `yaml:"file_path"` // empty disables file output
}

func Default() *Config {
	return &Config{
		Backend: Backend{URL: "http://localhost:5002"},
		Server: Server{
			Addr:        ":8080",
			TickersPath: "static/tickers.json",
			StaticDir:   "static",
		},
		Search:  Search{Engine: "memory"},
		Logging: Logging{Level: "info", Format: "pretty"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then .env, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is fine; real environment variables still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setFromEnv(&cfg.Backend.URL, "GOAL_STOCK_BACKEND_URL")
	setFromEnv(&cfg.Server.Addr, "GOAL_STOCK_ADDR")
	setFromEnv(&cfg.Server.TickersPath, "GOAL_STOCK_TICKERS")
	setFromEnv(&cfg.Server.StaticDir, "GOAL_STOCK_STATIC_DIR")
	setFromEnv(&cfg.Search.Engine, "GOAL_STOCK_SEARCH_ENGINE")
	setFromEnv(&cfg.Logging.Level, "LOG_LEVEL")
	setFromEnv(&cfg.Logging.Format, "LOG_FORMAT")
	setFromEnv(&cfg.Logging.FilePath, "LOG_FILE_PATH")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.Search.Engine {
	case "memory", "bleve":
	default:
		return fmt.Errorf("search.engine must be memory or bleve, got %q", c.Search.Engine)
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url %q is not an absolute URL", c.Backend.URL)
	}

	switch c.Logging.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("logging.format must be json or pretty, got %q", c.Logging.Format)
	}
	return nil
}
