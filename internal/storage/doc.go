// Package storage manages the widget's cache directory and atomic file writes.
//
// The cache directory is created on start-up and can be cleared from the menu.
// Snapshots are never written to it. WriteFile replaces files atomically and is
// used by the self-update workflow to swap in a new release.
// The default location is ~/.cache/covid-widget/.
package storage
