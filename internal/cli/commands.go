package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/covid-widget/internal/logger"
	"github.com/pfrederiksen/covid-widget/internal/menu"
	"github.com/pfrederiksen/covid-widget/internal/scheduler"
	"github.com/pfrederiksen/covid-widget/internal/storage"
	"github.com/pfrederiksen/covid-widget/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagApply  bool
	flagTarget string
	flagEvery  time.Duration
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the widget actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			items := menu.Items(cfg.WidgetTitle, Version)

			format, err := ParseFormat(flagFormat)
			if err != nil {
				return err
			}
			if format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}

			menu.Render(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render the widget as text for testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderOnce(cmd, FormatText)
		},
	}
}

func newCheckUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-update",
		Short: "Check for a newer release and optionally install it",
		Args:  cobra.NoArgs,
		RunE:  runCheckUpdate,
	}

	cmd.Flags().BoolVar(&flagApply, "apply", false, "Download and install the new release")
	cmd.Flags().StringVar(&flagTarget, "target", "", "Artifact replaced by --apply (default: this executable)")

	return cmd
}

func runCheckUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target := cfg.Update.Target
	if cmd.Flags().Changed("target") {
		target = flagTarget
	}
	if flagApply && target == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		target = exe
	}

	files, err := storage.New(cfg.CacheDir)
	if err != nil {
		return err
	}

	updater := update.New(update.Config{
		Current:    Version,
		VersionURL: cfg.Update.VersionURL,
		PayloadURL: cfg.Update.PayloadURL,
		Target:     target,
	}, files)

	var result *update.Result
	if flagApply {
		result, err = updater.Apply(cmd.Context())
	} else {
		result, err = updater.Check(cmd.Context())
	}
	if err != nil {
		logger.Error("update failed", logger.Fields{"apply": flagApply}, err)
		return err
	}

	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message())
	return nil
}

func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove everything in the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := storage.New(cfg.CacheDir)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", store.Root())
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the widget every refresh interval until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}

	cmd.Flags().DurationVar(&flagEvery, "every", 0, "Override the refresh interval (e.g. 30m)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	interval := cfg.Interval()
	if cmd.Flags().Changed("every") {
		interval = flagEvery
	}

	out := cmd.OutOrStdout()
	s := scheduler.New(interval, func(ctx context.Context) error {
		available, err := p.render(ctx, out, format)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("dashboard unavailable at %s", p.scraper.URL())
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Stop()

	<-ctx.Done()
	logger.Info("watch stopped", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "covid-widget %s\n", Version)
		},
	}
}
