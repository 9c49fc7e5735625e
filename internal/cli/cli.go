package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/covid-widget/internal/config"
	"github.com/pfrederiksen/covid-widget/internal/covid"
	"github.com/pfrederiksen/covid-widget/internal/logger"
	"github.com/pfrederiksen/covid-widget/internal/scraper"
	"github.com/pfrederiksen/covid-widget/internal/storage"
	"github.com/pfrederiksen/covid-widget/internal/widget"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitUnavailable = 2
)

// Version is the running release, compared against the published version marker
var Version = "1.0.3"

var (
	flagConfig          string
	flagDevice          string
	flagFormat          string
	flagRevision        string
	flagTiers           string
	flagFont            string
	flagLayout          string
	flagSourceURL       string
	flagCacheDir        string
	flagBrowserURL      string
	flagLogLevel        string
	flagRefreshInterval int
	flagBrowser         bool
	flagDebug           bool
	flagVerbose         bool
)

// exitCode is set by commands that finish without error but still need a
// non-zero status
var exitCode = ExitSuccess

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covid-widget",
		Short: "Show the Korean COVID-19 daily case count as a status widget",
		Long: `A CLI widget for the Korean COVID-19 dashboard (ncov.mohw.go.kr).
Scrapes the daily domestic case count, renewal date and vaccination rates, and
renders them with a background colour chosen from the case count.`,
		SilenceUsage: true,
		RunE:         runWidget,
	}

	// Define flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to a JSON5 config file")
	flags.StringVar(&flagDevice, "device", "", "Device class: phone or tablet")
	flags.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	flags.StringVar(&flagRevision, "revision", "", "Dashboard markup revision: "+strings.Join(scraper.RevisionNames(), ", "))
	flags.StringVar(&flagTiers, "tiers", "", "Colour tier table: classic or rescaled")
	flags.StringVar(&flagFont, "font", "", "Count font rule: two-tier or digit-decay")
	flags.StringVar(&flagLayout, "layout", "", "Metadata rows: full, vaccine or basic")
	flags.StringVar(&flagSourceURL, "source-url", "", "Dashboard URL")
	flags.StringVar(&flagCacheDir, "cache-dir", "", "Cache directory")
	flags.StringVar(&flagBrowserURL, "browser-url", "", "DevTools URL of a running Chrome (implies --browser)")
	flags.IntVar(&flagRefreshInterval, "refresh-interval", 0, "Minutes until the widget asks to be refreshed")
	flags.BoolVar(&flagBrowser, "browser", false, "Render the page in headless Chrome before scraping")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&flagDebug, "debug", false, "Enable debug logging (same as --log-level debug)")
	flags.BoolVar(&flagVerbose, "verbose", false, "Show row kinds and font sizes")

	cmd.AddCommand(
		newMenuCmd(),
		newPreviewCmd(),
		newCheckUpdateCmd(),
		newClearCacheCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig reads the config file and applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("device") {
		cfg.Device = flagDevice
	}
	if flags.Changed("revision") {
		cfg.Revision = flagRevision
	}
	if flags.Changed("tiers") {
		cfg.Tiers = flagTiers
	}
	if flags.Changed("font") {
		cfg.Font = flagFont
	}
	if flags.Changed("layout") {
		cfg.Layout = flagLayout
	}
	if flags.Changed("source-url") {
		cfg.SourceURL = flagSourceURL
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = flagCacheDir
	}
	if flags.Changed("refresh-interval") {
		cfg.RefreshInterval = flagRefreshInterval
	}
	if flags.Changed("browser") {
		cfg.Browser = flagBrowser
	}
	if flags.Changed("browser-url") {
		cfg.BrowserURL = flagBrowserURL
		cfg.Browser = true
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	return cfg, nil
}

// pipeline holds everything one widget render needs
type pipeline struct {
	scraper   *scraper.Scraper
	presenter widget.Presenter
	device    widget.DeviceClass
}

func newPipeline(cfg *config.Config) (*pipeline, error) {
	rev, err := cfg.ScraperRevision()
	if err != nil {
		return nil, err
	}
	presenter, err := cfg.Presenter()
	if err != nil {
		return nil, err
	}
	device, err := cfg.DeviceClass()
	if err != nil {
		return nil, err
	}

	return &pipeline{
		scraper:   scraper.New(cfg.SourceURL, rev, cfg.Loader()),
		presenter: presenter,
		device:    device,
	}, nil
}

// build fetches a snapshot and assembles the widget. A failed fetch renders the
// placeholder snapshot instead of failing the run.
func (p *pipeline) build(ctx context.Context) *widget.Widget {
	snapshot, err := p.scraper.Fetch(ctx)
	if err != nil {
		logger.Warn("fetch failed, rendering placeholder", logger.Fields{
			"url": p.scraper.URL(),
		}, err)
		snapshot = covid.Placeholder(p.scraper.URL())
	}

	w := p.presenter.Build(snapshot, p.device, time.Now())
	logger.IncrCounter("widget.rendered")
	logger.SetGauge("widget.count", float64(w.Count))
	return w
}

// render builds the widget and writes it to out. It reports whether the widget
// carried real data.
func (p *pipeline) render(ctx context.Context, out io.Writer, format OutputFormat) (bool, error) {
	w := p.build(ctx)
	if err := WriteOutput(out, w, format, flagVerbose); err != nil {
		return false, fmt.Errorf("writing output: %w", err)
	}
	return w.Available, nil
}

// runWidget is the main command logic
func runWidget(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	return renderOnce(cmd, format)
}

func renderOnce(cmd *cobra.Command, format OutputFormat) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The cache directory is created up front so clear-cache always has a target
	if _, err := storage.New(cfg.CacheDir); err != nil {
		logger.Warn("cache directory unavailable", logger.Fields{"dir": cfg.CacheDir}, err)
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	available, err := p.render(cmd.Context(), cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}

	if !available {
		exitCode = ExitUnavailable
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(exitCode)
}
