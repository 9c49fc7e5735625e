package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserLoader renders the page in headless Chrome before parsing it, for
// dashboard markup that is filled in by scripts after the initial response.
type BrowserLoader struct {
	// ControlURL is the DevTools WebSocket URL of a running Chrome.
	// Empty launches a local headless Chrome for each load.
	ControlURL string

	// Bin overrides the Chrome binary used when launching locally.
	Bin string
}

// NewBrowserLoader creates a BrowserLoader
func NewBrowserLoader(controlURL string) *BrowserLoader {
	return &BrowserLoader{ControlURL: controlURL}
}

// Load navigates to url, waits for the load event and parses the rendered DOM
func (l *BrowserLoader) Load(ctx context.Context, url string) (*goquery.Document, error) {
	controlURL := l.ControlURL
	if controlURL == "" {
		lnch := launcher.New().Headless(true)
		if l.Bin != "" {
			lnch = lnch.Bin(l.Bin)
		}
		defer lnch.Cleanup()

		u, err := lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launching browser: %w", err)
		}
		defer lnch.Kill()
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading rendered DOM: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
