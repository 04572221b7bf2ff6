// Package metadata extracts link metadata used to prefill the
// advertisement and partner forms from a pasted URL.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gazetadovale/newsdesk/internal/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// LinkPreview holds suggested form values extracted from a page.
type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// Extractor fetches pages and pulls OpenGraph/meta metadata.
type Extractor struct {
	logger logger.Logger
	client *http.Client
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{
		logger: log,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Extract fetches rawURL and returns prefill suggestions.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*LinkPreview, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Newsdesk/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	preview := &LinkPreview{
		URL:         rawURL,
		Title:       extractTitle(doc, parsedURL),
		Description: metaContent(doc, "meta[property='og:description']", "meta[name='description']"),
		ImageURL:    metaContent(doc, "meta[property='og:image']"),
		SiteName:    metaContent(doc, "meta[property='og:site_name']"),
	}

	e.logger.Debug("Link metadata extracted",
		logger.String("url", rawURL),
		logger.String("title", preview.Title),
	)

	return preview, nil
}

// extractTitle prefers og:title, then the title tag, then the host.
func extractTitle(doc *goquery.Document, parsedURL *url.URL) string {
	if title := metaContent(doc, "meta[property='og:title']"); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return parsedURL.Host
}

// metaContent returns the first non-empty content attribute among the
// given selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
