// Package notifier publishes a rendered widget as a status update.
//
// The notifier package supports posting the widget summary to Twitter, or printing
// it in dry-run mode. It handles OAuth authentication and message formatting.
package notifier
