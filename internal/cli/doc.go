// Package cli implements the command-line interface for covid-widget.
//
// The cli package provides the Cobra-based CLI: the root command renders the widget
// (text or JSON), and subcommands show the action menu, preview the widget, check for
// updates, clear the cache and keep the widget refreshed on a schedule. It coordinates
// the config, scraper, widget, storage and update packages.
package cli
