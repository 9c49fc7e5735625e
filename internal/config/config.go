// Package config loads covid-widget settings from an optional JSON5 file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/covid-widget/internal/logger"
	"github.com/pfrederiksen/covid-widget/internal/scraper"
	"github.com/pfrederiksen/covid-widget/internal/storage"
	"github.com/pfrederiksen/covid-widget/internal/widget"
	"github.com/titanous/json5"
)

// UpdateConfig configures the self-update workflow
type UpdateConfig struct {
	VersionURL string `json:"version_url"`
	PayloadURL string `json:"payload_url"`
	Target     string `json:"target"`
}

// Config holds every setting of a widget run
type Config struct {
	WidgetTitle string `json:"widget_title"`
	SourceURL   string `json:"source_url"`
	// Minutes until the widget asks to be refreshed
	RefreshInterval int          `json:"refresh_interval"`
	Revision        string       `json:"revision"`
	Tiers           string       `json:"tiers"`
	Font            string       `json:"font"`
	Layout          string       `json:"layout"`
	Device          string       `json:"device"`
	Browser         bool         `json:"browser"`
	BrowserURL      string       `json:"browser_url"`
	CacheDir        string       `json:"cache_dir"`
	LogLevel        string       `json:"log_level"`
	Debug           bool         `json:"debug"` // Forces DEBUG regardless of LogLevel
	Update          UpdateConfig `json:"update"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		WidgetTitle:     widget.DefaultTitle,
		SourceURL:       scraper.DashboardURL,
		RefreshInterval: int(widget.DefaultRefreshInterval / time.Minute),
		Revision:        scraper.DefaultRevision.Name,
		Tiers:           widget.TiersClassic.Name,
		Font:            widget.FontTwoTier.Name,
		Layout:          widget.LayoutFull.Name,
		Device:          string(widget.DevicePhone),
		CacheDir:        storage.DefaultCacheDir,
		LogLevel:        string(logger.LevelWarn),
	}
}

// Load reads the JSON5 file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that every named table exists and the interval is positive
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("invalid refresh_interval: %d (must be positive minutes)", c.RefreshInterval)
	}
	if _, err := c.ScraperRevision(); err != nil {
		return err
	}
	if _, err := c.DeviceClass(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Presenter(); err != nil {
		return err
	}
	return nil
}

// Interval returns the refresh interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Minute
}

// Level resolves the log level. Debug wins over LogLevel.
func (c *Config) Level() (logger.Level, error) {
	if c.Debug {
		return logger.LevelDebug, nil
	}
	return logger.ParseLevel(c.LogLevel)
}

// ScraperRevision resolves the configured extraction table
func (c *Config) ScraperRevision() (scraper.Revision, error) {
	return scraper.RevisionByName(c.Revision)
}

// DeviceClass resolves the configured device
func (c *Config) DeviceClass() (widget.DeviceClass, error) {
	return widget.ParseDevice(c.Device)
}

// Presenter resolves the configured tier table, font rule and layout
func (c *Config) Presenter() (widget.Presenter, error) {
	tiers, err := widget.TierTableByName(c.Tiers)
	if err != nil {
		return widget.Presenter{}, err
	}
	font, err := widget.FontRuleByName(c.Font)
	if err != nil {
		return widget.Presenter{}, err
	}
	layout, err := widget.LayoutByName(c.Layout)
	if err != nil {
		return widget.Presenter{}, err
	}

	title := c.WidgetTitle
	if title == "" {
		title = widget.DefaultTitle
	}

	return widget.Presenter{
		Title:           title,
		Tiers:           tiers,
		Font:            font,
		Layout:          layout,
		RefreshInterval: c.Interval(),
	}, nil
}

// Loader returns the page loader the configuration asks for
func (c *Config) Loader() scraper.Loader {
	if c.Browser {
		return scraper.NewBrowserLoader(c.BrowserURL)
	}
	return scraper.NewHTTPLoader()
}
