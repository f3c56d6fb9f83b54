package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port           string   `env:"PORT" envDefault:"5250"`
		GinMode        string   `env:"GIN_MODE" envDefault:"release"`
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

		// Directory with the browser page and its assets, served at "/"
		StaticDir string `env:"STATIC_DIR"`
	}

	Datasets struct {
		// File path or http(s) URL of the per-ZIP aggregate dataset
		Grouped string `env:"DATASET_GROUPED" envDefault:"./statics/data/housing_data_grouped.json"`

		// File path or http(s) URL of the per-property detail dataset
		Details string `env:"DATASET_DETAILS" envDefault:"./statics/data/housing_data_details.json"`

		// When set, both datasets are read from this SQLite file instead
		SQLitePath string `env:"DATASET_SQLITE"`

		// Timeout for remote dataset fetches in seconds
		Timeout int `env:"DATASET_TIMEOUT" envDefault:"10"`
	}

	Dashboard struct {
		DefaultMetric string `env:"DASHBOARD_DEFAULT_METRIC" envDefault:"avg_latestPrice"`
		TopN          int    `env:"DASHBOARD_TOP_N" envDefault:"10"`
		CacheSize     int    `env:"DASHBOARD_CACHE_SIZE" envDefault:"16"`
		SessionLimit  int    `env:"DASHBOARD_SESSION_LIMIT" envDefault:"1024"`
	}

	Map struct {
		CenterLat   float64 `env:"MAP_CENTER_LAT" envDefault:"30.2672"`
		CenterLng   float64 `env:"MAP_CENTER_LNG" envDefault:"-97.7431"`
		Zoom        int     `env:"MAP_ZOOM" envDefault:"10"`
		TileURL     string  `env:"MAP_TILE_URL" envDefault:"https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`
		Attribution string  `env:"MAP_ATTRIBUTION" envDefault:"© OpenStreetMap contributors"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}
}

// LoadConfig reads the given .env files (".env" when none are given) and then
// parses the environment. Missing .env files are not an error.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE %q must be debug, release or test", c.Server.GinMode)
	}
	if c.Datasets.SQLitePath == "" && (c.Datasets.Grouped == "" || c.Datasets.Details == "") {
		return errors.New("DATASET_GROUPED and DATASET_DETAILS are required unless DATASET_SQLITE is set")
	}
	if GetMetricOption(c.Dashboard.DefaultMetric) == nil {
		return fmt.Errorf("DASHBOARD_DEFAULT_METRIC %q must be one of %s", c.Dashboard.DefaultMetric, strings.Join(GetMetricKeys(), ", "))
	}
	if c.Dashboard.TopN <= 0 {
		return errors.New("DASHBOARD_TOP_N must be positive")
	}
	return nil
}

// FetchTimeout returns the dataset fetch timeout, defaulting to 10 seconds.
func (c *Config) FetchTimeout() time.Duration {
	if c.Datasets.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Datasets.Timeout) * time.Second
}

// Viewport returns the configured map viewport.
func (c *Config) Viewport() Viewport {
	return Viewport{
		Name:        DefaultViewport.Name,
		Center:      []float64{c.Map.CenterLat, c.Map.CenterLng},
		ZoomLevel:   c.Map.Zoom,
		TileURL:     c.Map.TileURL,
		Attribution: c.Map.Attribution,
	}
}
