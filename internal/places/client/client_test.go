package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchText(t *testing.T) {
	var gotMask, gotKey string
	var gotBody searchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places:searchText" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotMask = r.Header.Get("X-Goog-FieldMask")
		gotKey = r.Header.Get("X-Goog-Api-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		rating := 4.7
		count := 88
		_ = json.NewEncoder(w).Encode(searchResponse{Places: []Place{
			{
				ID:                  "place-1",
				DisplayName:         Text{Text: "John Smith Plumbing"},
				FormattedAddress:    "12 High Street, London W1A 1AA",
				NationalPhoneNumber: "07777 123456",
				Rating:              &rating,
				UserRatingCount:     &count,
				BusinessStatus:      "OPERATIONAL",
			},
		}})
	}))
	defer server.Close()

	c := New("test-key", time.Second).WithBaseURL(server.URL)
	places, err := c.SearchText(context.Background(), "plumbers in london")
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotMask == "" || gotBody.TextQuery != "plumbers in london" {
		t.Errorf("request not formed correctly: mask=%q query=%q", gotMask, gotBody.TextQuery)
	}
	if gotBody.MaxResultCount != 20 {
		t.Errorf("max result count = %d, want 20", gotBody.MaxResultCount)
	}
	if gotBody.LanguageCode != "en-GB" {
		t.Errorf("language code = %q, want en-GB", gotBody.LanguageCode)
	}

	if len(places) != 1 {
		t.Fatalf("places = %d, want 1", len(places))
	}
	if places[0].DisplayName.Text != "John Smith Plumbing" {
		t.Errorf("display name = %q", places[0].DisplayName.Text)
	}
	if places[0].Rating == nil || *places[0].Rating != 4.7 {
		t.Errorf("rating = %v", places[0].Rating)
	}
}

func TestSearchTextNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New("test-key", time.Second).WithBaseURL(server.URL)
	if _, err := c.SearchText(context.Background(), "anything"); err == nil {
		t.Fatal("expected an error for non-200 response")
	}
}
