package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	websiteFetchTimeout = 8 * time.Second
	websiteBodyLimit    = 256 * 1024
	websiteTextLimit    = 5000
)

var (
	scriptStylePattern = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	tagPattern         = regexp.MustCompile(`<[^>]*>`)
)

// WebsiteFetcher downloads a page and reduces it to plain text for the
// receptionist-signal check.
type WebsiteFetcher struct {
	httpClient *http.Client
}

// NewWebsiteFetcher creates a fetcher with a short per-page timeout.
func NewWebsiteFetcher() *WebsiteFetcher {
	return &WebsiteFetcher{
		httpClient: &http.Client{Timeout: websiteFetchTimeout},
	}
}

// FetchText downloads the page at url and returns its visible text,
// whitespace-collapsed and truncated.
func (f *WebsiteFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build website request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; callcrm/1.0)")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch website: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, websiteBodyLimit))
	if err != nil {
		return "", fmt.Errorf("read website body: %w", err)
	}

	return extractText(string(body)), nil
}

func extractText(html string) string {
	stripped := scriptStylePattern.ReplaceAllString(html, " ")
	stripped = tagPattern.ReplaceAllString(stripped, " ")
	text := strings.Join(strings.Fields(stripped), " ")
	if len(text) > websiteTextLimit {
		text = text[:websiteTextLimit]
	}
	return text
}
