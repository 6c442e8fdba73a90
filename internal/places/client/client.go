// Package client provides the Google Places API (New) text search client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://places.googleapis.com/v1"
	// Field mask for the text search; keeps the response (and billing) to
	// the fields the lead mapper consumes.
	searchFieldMask = "places.id,places.displayName,places.formattedAddress," +
		"places.nationalPhoneNumber,places.internationalPhoneNumber,places.websiteUri," +
		"places.rating,places.userRatingCount,places.types,places.businessStatus," +
		"places.googleMapsUri"

	maxResults = 20
)

// Place is a single listing returned by the text search.
type Place struct {
	ID                       string   `json:"id"`
	DisplayName              Text     `json:"displayName"`
	FormattedAddress         string   `json:"formattedAddress"`
	NationalPhoneNumber      string   `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string   `json:"internationalPhoneNumber"`
	WebsiteURI               string   `json:"websiteUri"`
	Rating                   *float64 `json:"rating"`
	UserRatingCount          *int     `json:"userRatingCount"`
	Types                    []string `json:"types"`
	BusinessStatus           string   `json:"businessStatus"`
	GoogleMapsURI            string   `json:"googleMapsUri"`
}

// Text is the localized text wrapper used by the Places API.
type Text struct {
	Text string `json:"text"`
}

type searchRequest struct {
	TextQuery      string `json:"textQuery"`
	LanguageCode   string `json:"languageCode"`
	MaxResultCount int    `json:"maxResultCount"`
}

type searchResponse struct {
	Places []Place `json:"places"`
}

// Client calls the Google Places API (New).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Places client with the given API key.
func New(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API endpoint, used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// SearchText runs a text query against places:searchText, capped at 20 results.
func (c *Client) SearchText(ctx context.Context, query string) ([]Place, error) {
	body, err := json.Marshal(searchRequest{
		TextQuery:      query,
		LanguageCode:   "en-GB",
		MaxResultCount: maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("places search: status %d: %s", resp.StatusCode, string(detail))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.Places, nil
}
