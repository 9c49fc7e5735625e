package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/covid-widget/internal/logger"
	"github.com/pfrederiksen/covid-widget/internal/notifier"
	"github.com/pfrederiksen/covid-widget/internal/widget"
)

var (
	widgetFile = flag.String("widget-file", "", "Path to widget JSON from 'covid-widget --format json' (or read from stdin)")
	envFile    = flag.String("env-file", "", "Load Twitter credentials from this .env file")
	dryRun     = flag.Bool("dry-run", false, "Print the status without posting")
	minCount   = flag.Int("min-count", 0, "Only post when the case count is at least this value")
)

func main() {
	flag.Parse()

	// A missing .env is fine, credentials may already be in the environment
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
			os.Exit(1)
		}
	} else if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", logger.Fields{"error": err.Error()})
	}

	// Read widget from file or stdin
	var reader io.Reader
	if *widgetFile != "" {
		f, err := os.Open(*widgetFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening widget file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	var w widget.Widget
	if err := json.NewDecoder(reader).Decode(&w); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if w.Count < *minCount {
		fmt.Printf("Count %d is below %d, nothing to post\n", w.Count, *minCount)
		os.Exit(0)
	}

	var n notifier.Notifier
	if *dryRun {
		n = notifier.NewDryRunNotifier(os.Stdout)
		fmt.Println("DRY RUN MODE - Would post:")
		fmt.Println()
	} else {
		client, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		n = client
	}

	if err := n.Notify(&w); err != nil {
		if errors.Is(err, notifier.ErrUnavailable) {
			fmt.Println("Dashboard data unavailable, nothing to post")
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error posting status: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Println("Successfully posted status")
	}
}
