package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/covid-widget/internal/logger"
	"github.com/pfrederiksen/covid-widget/internal/scraper"
	"github.com/pfrederiksen/covid-widget/internal/widget"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "covid-widget.json5")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "Covid-19", cfg.WidgetTitle)
	require.Equal(t, scraper.DashboardURL, cfg.SourceURL)
	require.Equal(t, 180, cfg.RefreshInterval)
	require.Equal(t, 180*time.Minute, cfg.Interval())
	require.Equal(t, "liveboard", cfg.Revision)
	require.False(t, cfg.Debug)
	require.Equal(t, "WARN", cfg.LogLevel)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		debug    bool
		want     logger.Level
		wantErr  bool
	}{
		{name: "default", logLevel: "WARN", want: logger.LevelWarn},
		{name: "lowercase", logLevel: "info", want: logger.LevelInfo},
		{name: "debug flag wins", logLevel: "error", debug: true, want: logger.LevelDebug},
		{name: "unknown", logLevel: "verbose", wantErr: true},
		{name: "empty", logLevel: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.LogLevel = tt.logLevel
			cfg.Debug = tt.debug

			got, err := cfg.Level()
			if tt.wantErr {
				require.Error(t, err)
				require.Error(t, cfg.Validate())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_JSON5File(t *testing.T) {
	path := writeConfig(t, `{
		// Bigger thresholds for the later waves
		widget_title: '코로나19',
		refresh_interval: 60,
		tiers: 'rescaled',
		font: 'digit-decay',
		layout: 'basic',
		device: 'tablet',
		update: {
			target: '/usr/local/bin/covid-widget',
		},
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "코로나19", cfg.WidgetTitle)
	require.Equal(t, 60*time.Minute, cfg.Interval())
	require.Equal(t, "/usr/local/bin/covid-widget", cfg.Update.Target)
	// Unset keys keep their defaults
	require.Equal(t, "liveboard", cfg.Revision)

	p, err := cfg.Presenter()
	require.NoError(t, err)
	require.Equal(t, widget.TiersRescaled.Name, p.Tiers.Name)
	require.Equal(t, widget.FontDigitDecay.Name, p.Font.Name)
	require.Equal(t, widget.LayoutBasic.Name, p.Layout.Name)
	require.Equal(t, 60*time.Minute, p.RefreshInterval)

	device, err := cfg.DeviceClass()
	require.NoError(t, err)
	require.Equal(t, widget.DeviceTablet, device)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json5"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `{ widget_title: `))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.RefreshInterval = 0 }},
		{"unknown revision", func(c *Config) { c.Revision = "2019" }},
		{"unknown device", func(c *Config) { c.Device = "watch" }},
		{"unknown tiers", func(c *Config) { c.Tiers = "rainbow" }},
		{"unknown font", func(c *Config) { c.Font = "huge" }},
		{"unknown layout", func(c *Config) { c.Layout = "compact" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoader(t *testing.T) {
	cfg := Default()
	require.IsType(t, &scraper.HTTPLoader{}, cfg.Loader())

	cfg.Browser = true
	cfg.BrowserURL = "ws://127.0.0.1:9222/devtools/browser/abc"
	loader, ok := cfg.Loader().(*scraper.BrowserLoader)
	require.True(t, ok)
	require.Equal(t, cfg.BrowserURL, loader.ControlURL)
}
