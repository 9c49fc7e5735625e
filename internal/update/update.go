package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultVersionURL = "https://raw.githubusercontent.com/pfrederiksen/covid-widget/main/version"
	DefaultPayloadURL = "https://github.com/pfrederiksen/covid-widget/releases/latest/download/covid-widget"
	UserAgent         = "covid-widget-updater/1.0 (github.com/pfrederiksen/covid-widget)"
	Timeout           = 30 * time.Second

	maxVersionBytes = 64
)

// ErrNoTarget is returned by Apply when no artifact path is configured
var ErrNoTarget = errors.New("no update target configured")

// FileWriter replaces files on disk
type FileWriter interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// Config configures an Updater
type Config struct {
	Current    string // Running version
	VersionURL string // Plain-text version marker
	PayloadURL string // Release artifact
	Target     string // Local artifact replaced by Apply
}

// Result describes the outcome of a check or update
type Result struct {
	Current   string `json:"current"`
	Latest    string `json:"latest"`
	Available bool   `json:"available"`
	Applied   bool   `json:"applied"`
	Target    string `json:"target,omitempty"`
}

// Message returns the text shown to the user for the result
func (r *Result) Message() string {
	switch {
	case r.Applied:
		return fmt.Sprintf("Update to version %s\nPlease launch the app again.", r.Latest)
	case r.Available:
		return fmt.Sprintf("Version %s is available (running %s).", r.Latest, r.Current)
	default:
		return fmt.Sprintf("version %s is currently the newest version available.", r.Current)
	}
}

// Updater checks for and applies new releases
type Updater struct {
	client *http.Client
	cfg    Config
	files  FileWriter
}

// New creates a new Updater. Empty URLs select the defaults.
func New(cfg Config, files FileWriter) *Updater {
	if cfg.VersionURL == "" {
		cfg.VersionURL = DefaultVersionURL
	}
	if cfg.PayloadURL == "" {
		cfg.PayloadURL = DefaultPayloadURL
	}

	return &Updater{
		client: &http.Client{
			Timeout: Timeout,
		},
		cfg:   cfg,
		files: files,
	}
}

// Check fetches the published version and compares it with the running one
func (u *Updater) Check(ctx context.Context) (*Result, error) {
	body, err := u.get(ctx, u.cfg.VersionURL, maxVersionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetching version: %w", err)
	}

	latest := strings.TrimSpace(string(body))

	return &Result{
		Current:   u.cfg.Current,
		Latest:    latest,
		Available: CompareVersion(u.cfg.Current, latest),
	}, nil
}

// Apply checks for a newer version and, if there is one, downloads it and
// replaces the target artifact
func (u *Updater) Apply(ctx context.Context) (*Result, error) {
	if u.cfg.Target == "" {
		return nil, ErrNoTarget
	}

	result, err := u.Check(ctx)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return result, nil
	}

	payload, err := u.get(ctx, u.cfg.PayloadURL, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching payload: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("fetching payload: empty response from %s", u.cfg.PayloadURL)
	}

	if err := u.files.WriteFile(u.cfg.Target, payload, 0755); err != nil {
		return nil, fmt.Errorf("replacing %s: %w", u.cfg.Target, err)
	}

	result.Applied = true
	result.Target = u.cfg.Target
	return result, nil
}

// get fetches url, reading at most limit bytes when limit is positive
func (u *Updater) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	return io.ReadAll(r)
}
