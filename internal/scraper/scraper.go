package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/covid-widget/internal/covid"
	"github.com/pfrederiksen/covid-widget/internal/logger"
)

const (
	DashboardURL = "http://ncov.mohw.go.kr"
	UserAgent    = "covid-widget/1.0 (github.com/pfrederiksen/covid-widget)"
	Timeout      = 30 * time.Second
)

// Loader turns a URL into a queryable document
type Loader interface {
	Load(ctx context.Context, url string) (*goquery.Document, error)
}

// Scraper handles loading the dashboard and extracting a snapshot from it
type Scraper struct {
	loader   Loader
	url      string
	revision Revision
}

// New creates a new Scraper. An empty url selects DashboardURL and a nil loader
// selects an HTTPLoader.
func New(url string, revision Revision, loader Loader) *Scraper {
	if url == "" {
		url = DashboardURL
	}
	if loader == nil {
		loader = NewHTTPLoader()
	}

	return &Scraper{
		loader:   loader,
		url:      url,
		revision: revision,
	}
}

// URL returns the page the scraper loads
func (s *Scraper) URL() string {
	return s.url
}

// Fetch loads the dashboard and extracts a snapshot. Only loading can fail;
// missing fields fall back to their defaults.
func (s *Scraper) Fetch(ctx context.Context) (covid.Snapshot, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("scraper.fetch", time.Since(start))
	}()

	doc, err := s.loader.Load(ctx, s.url)
	if err != nil {
		logger.IncrCounter("scraper.fetch_failed")
		return covid.Snapshot{}, fmt.Errorf("loading %s: %w", s.url, err)
	}

	snapshot := Extract(doc, s.revision)
	snapshot.SourceURL = s.url
	snapshot.FetchedAt = time.Now().UTC()

	logger.Debug("snapshot extracted", logger.Fields{
		"revision":       s.revision.Name,
		"renewal_date":   snapshot.RenewalDate,
		"domestic_count": snapshot.DomesticCount,
	})

	return snapshot, nil
}

// ExtractHTML parses HTML from r and extracts a snapshot using rev
func ExtractHTML(r io.Reader, rev Revision) (covid.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return covid.Snapshot{}, fmt.Errorf("parsing HTML: %w", err)
	}
	return Extract(doc, rev), nil
}

// HTTPLoader fetches the raw page markup over HTTP
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates an HTTPLoader with the default timeout
func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// Load fetches url and parses the response body
func (l *HTTPLoader) Load(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
