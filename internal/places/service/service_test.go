package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"callcrm_backend/internal/events"
	leadsrepo "callcrm_backend/internal/leads/repository"
	"callcrm_backend/internal/places/client"
	"callcrm_backend/platform/apperr"
	"callcrm_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeSearcher struct {
	places []client.Place
	err    error
}

func (f *fakeSearcher) SearchText(ctx context.Context, query string) ([]client.Place, error) {
	return f.places, f.err
}

type fakeUpserter struct {
	batch []leadsrepo.UpsertParams
	err   error
}

func (f *fakeUpserter) UpsertMany(ctx context.Context, batch []leadsrepo.UpsertParams) ([]leadsrepo.Lead, error) {
	f.batch = batch
	if f.err != nil {
		return nil, f.err
	}
	leads := make([]leadsrepo.Lead, len(batch))
	for i, p := range batch {
		placeID := p.PlaceID
		leads[i] = leadsrepo.Lead{ID: uuid.New(), PlaceID: &placeID, BusinessName: p.BusinessName}
	}
	return leads, nil
}

type fakeFetcher struct {
	mu    sync.Mutex
	texts map[string]string
	calls int
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	text, ok := f.texts[url]
	if !ok {
		return "", errors.New("unreachable")
	}
	return text, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func (b *recordingBus) byName(name string) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var matched []events.Event
	for _, e := range b.events {
		if e.EventName() == name {
			matched = append(matched, e)
		}
	}
	return matched
}

func testPlaces() []client.Place {
	rating := 4.6
	count := 42
	return []client.Place{
		{
			ID:                  "place-1",
			DisplayName:         client.Text{Text: "John Smith Plumbing"},
			FormattedAddress:    "12 High Street, London W1A 1AA",
			NationalPhoneNumber: "07911 123456",
			WebsiteURI:          "https://johnsmithplumbing.example",
			Rating:              &rating,
			UserRatingCount:     &count,
			Types:               []string{"plumber", "point_of_interest"},
			BusinessStatus:      "OPERATIONAL",
		},
		{
			ID:          "place-2",
			DisplayName: client.Text{Text: "No Phone Listed Ltd"},
		},
		{
			ID:                       "place-3",
			DisplayName:              client.Text{Text: "City Electricians"},
			InternationalPhoneNumber: "+44 20 7946 0958",
		},
	}
}

func newTestService(searcher Searcher, leads LeadUpserter, fetcher TextFetcher, bus events.Bus) *Service {
	return New(searcher, leads, fetcher, bus, logger.New("test"), true)
}

func TestScrapeSkipsListingsWithoutPhone(t *testing.T) {
	upserter := &fakeUpserter{}
	bus := &recordingBus{}
	svc := newTestService(&fakeSearcher{places: testPlaces()}, upserter, nil, bus)

	result, err := svc.Scrape(context.Background(), "plumbers in london", nil)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}

	if result.Scraped != 3 {
		t.Errorf("Scraped = %d, want 3", result.Scraped)
	}
	if result.Saved != 2 {
		t.Errorf("Saved = %d, want 2", result.Saved)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(upserter.batch) != 2 {
		t.Fatalf("upsert batch = %d entries, want 2", len(upserter.batch))
	}
	if upserter.batch[0].PlaceID != "place-1" || upserter.batch[1].PlaceID != "place-3" {
		t.Errorf("batch place IDs = %q, %q", upserter.batch[0].PlaceID, upserter.batch[1].PlaceID)
	}
}

func TestScrapeMapsListingFields(t *testing.T) {
	upserter := &fakeUpserter{}
	campaignID := uuid.New()
	svc := newTestService(&fakeSearcher{places: testPlaces()}, upserter, nil, &recordingBus{})

	if _, err := svc.Scrape(context.Background(), "plumbers in london", &campaignID); err != nil {
		t.Fatalf("Scrape: %v", err)
	}

	lead := upserter.batch[0]
	if lead.BusinessName != "John Smith Plumbing" {
		t.Errorf("business name = %q", lead.BusinessName)
	}
	if lead.PhoneNumber != "07911 123456" {
		t.Errorf("phone = %q", lead.PhoneNumber)
	}
	if lead.PhoneE164 == nil || *lead.PhoneE164 != "+447911123456" {
		t.Errorf("e164 = %v", lead.PhoneE164)
	}
	if lead.Rating == nil || *lead.Rating != 4.6 {
		t.Errorf("rating = %v", lead.Rating)
	}
	if lead.Category == nil || *lead.Category != "plumber" {
		t.Errorf("category = %v", lead.Category)
	}
	if lead.SourceQuery == nil || *lead.SourceQuery != "plumbers in london" {
		t.Errorf("source query = %v", lead.SourceQuery)
	}
	if lead.CampaignID == nil || *lead.CampaignID != campaignID {
		t.Errorf("campaign id = %v", lead.CampaignID)
	}

	international := upserter.batch[1]
	if international.PhoneNumber != "+44 20 7946 0958" {
		t.Errorf("fallback phone = %q", international.PhoneNumber)
	}
}

func TestScrapeAttachesWebsiteText(t *testing.T) {
	upserter := &fakeUpserter{}
	fetcher := &fakeFetcher{texts: map[string]string{
		"https://johnsmithplumbing.example": "Family run plumbing, call us direct",
	}}
	svc := newTestService(&fakeSearcher{places: testPlaces()}, upserter, fetcher, &recordingBus{})

	if _, err := svc.Scrape(context.Background(), "plumbers in london", nil); err != nil {
		t.Fatalf("Scrape: %v", err)
	}

	lead := upserter.batch[0]
	if lead.WebsiteText == nil || *lead.WebsiteText != "Family run plumbing, call us direct" {
		t.Errorf("website text = %v", lead.WebsiteText)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1 (only listings with a website)", fetcher.calls)
	}
}

func TestScrapePublishesProgressAndCompletion(t *testing.T) {
	bus := &recordingBus{}
	svc := newTestService(&fakeSearcher{places: testPlaces()}, &fakeUpserter{}, nil, bus)

	if _, err := svc.Scrape(context.Background(), "plumbers in london", nil); err != nil {
		t.Fatalf("Scrape: %v", err)
	}

	progress := bus.byName("scrape.progress")
	if len(progress) != 3 {
		t.Fatalf("progress events = %d, want 3", len(progress))
	}
	last := progress[2].(events.ScrapeProgress)
	if last.Current != 3 || last.Total != 3 {
		t.Errorf("last progress = %d/%d", last.Current, last.Total)
	}

	complete := bus.byName("scrape.complete")
	if len(complete) != 1 {
		t.Fatalf("complete events = %d, want 1", len(complete))
	}
	done := complete[0].(events.ScrapeComplete)
	if done.Scraped != 3 || done.Saved != 2 {
		t.Errorf("complete = scraped %d saved %d", done.Scraped, done.Saved)
	}

	if bulk := bus.byName("leads.bulk_created"); len(bulk) != 1 {
		t.Errorf("bulk created events = %d, want 1", len(bulk))
	}
}

func TestSearchWhenDisabled(t *testing.T) {
	svc := New(&fakeSearcher{}, &fakeUpserter{}, nil, &recordingBus{}, logger.New("test"), false)

	if _, err := svc.Search(context.Background(), "anything"); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("Search error = %v, want unavailable", err)
	}
	if _, err := svc.Scrape(context.Background(), "anything", nil); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("Scrape error = %v, want unavailable", err)
	}
}

func TestScrapeSearchFailure(t *testing.T) {
	svc := newTestService(&fakeSearcher{err: errors.New("quota exceeded")}, &fakeUpserter{}, nil, &recordingBus{})

	if _, err := svc.Scrape(context.Background(), "anything", nil); err == nil {
		t.Fatal("expected an error when the search fails")
	}
}

func TestExtractTextStripsMarkup(t *testing.T) {
	html := `<html><head><style>body { color: red }</style>
	<script>alert("hi")</script></head>
	<body><h1>Smith  Plumbing</h1><p>Call   our team</p></body></html>`

	got := extractText(html)
	want := "Smith Plumbing Call our team"
	if got != want {
		t.Errorf("extractText = %q, want %q", got, want)
	}
}
