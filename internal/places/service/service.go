// Package service implements place search and lead scraping.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"callcrm_backend/internal/events"
	leadsrepo "callcrm_backend/internal/leads/repository"
	"callcrm_backend/internal/places/client"
	"callcrm_backend/platform/apperr"
	"callcrm_backend/platform/logger"
	"callcrm_backend/platform/phone"
)

// Concurrent website fetches per scrape run.
const websiteFetchConcurrency = 5

// Searcher runs a text query against the places API.
type Searcher interface {
	SearchText(ctx context.Context, query string) ([]client.Place, error)
}

// LeadUpserter persists scraped listings. Satisfied by the leads repository.
type LeadUpserter interface {
	UpsertMany(ctx context.Context, batch []leadsrepo.UpsertParams) ([]leadsrepo.Lead, error)
}

// TextFetcher downloads a website's visible text.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// ScrapeResult summarises a completed scrape run.
type ScrapeResult struct {
	Query   string           `json:"query"`
	Scraped int              `json:"scraped"`
	Saved   int              `json:"saved"`
	Skipped int              `json:"skipped"`
	Leads   []leadsrepo.Lead `json:"leads"`
}

// Service implements place search and scraping use cases.
type Service struct {
	searcher Searcher
	leads    LeadUpserter
	fetcher  TextFetcher
	bus      events.Bus
	log      *logger.Logger
	enabled  bool
}

// New creates the places service. When enabled is false (no API key
// configured) every operation returns an unavailable error.
func New(searcher Searcher, leads LeadUpserter, fetcher TextFetcher, bus events.Bus, log *logger.Logger, enabled bool) *Service {
	return &Service{
		searcher: searcher,
		leads:    leads,
		fetcher:  fetcher,
		bus:      bus,
		log:      log,
		enabled:  enabled,
	}
}

// Search runs a passthrough text search without persisting anything.
func (s *Service) Search(ctx context.Context, query string) ([]client.Place, error) {
	if !s.enabled {
		return nil, apperr.Unavailable("places search is not configured")
	}
	places, err := s.searcher.SearchText(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "places search failed", err)
	}
	if places == nil {
		places = []client.Place{}
	}
	return places, nil
}

// Scrape searches for listings, maps them to leads, enriches them with
// website text and upserts the batch. Listings without a phone number
// are skipped. Progress and completion are published on the event bus.
func (s *Service) Scrape(ctx context.Context, query string, campaignID *uuid.UUID) (ScrapeResult, error) {
	if !s.enabled {
		return ScrapeResult{}, apperr.Unavailable("places scraping is not configured")
	}

	places, err := s.searcher.SearchText(ctx, query)
	if err != nil {
		return ScrapeResult{}, apperr.Wrap(apperr.KindInternal, "places search failed", err)
	}

	batch := make([]leadsrepo.UpsertParams, 0, len(places))
	skipped := 0
	for i, place := range places {
		s.bus.Publish(ctx, events.ScrapeProgress{
			BaseEvent:    events.NewBaseEvent(),
			Query:        query,
			Current:      i + 1,
			Total:        len(places),
			LastBusiness: place.DisplayName.Text,
		})

		params, ok := s.mapPlace(place, query, campaignID)
		if !ok {
			skipped++
			continue
		}
		batch = append(batch, params)
	}

	s.fetchWebsiteTexts(ctx, batch)

	saved, err := s.leads.UpsertMany(ctx, batch)
	if err != nil {
		return ScrapeResult{}, err
	}

	s.log.ScrapeEvent(query, len(places), len(saved))

	s.bus.Publish(ctx, events.ScrapeComplete{
		BaseEvent: events.NewBaseEvent(),
		Query:     query,
		Scraped:   len(places),
		Saved:     len(saved),
		Leads:     saved,
	})
	s.bus.Publish(ctx, events.LeadsBulkCreated{
		BaseEvent: events.NewBaseEvent(),
		Count:     len(saved),
		Leads:     saved,
	})

	return ScrapeResult{
		Query:   query,
		Scraped: len(places),
		Saved:   len(saved),
		Skipped: skipped,
		Leads:   saved,
	}, nil
}

// mapPlace converts an API listing to upsert parameters. Listings
// without any phone number cannot be dialled and are dropped.
func (s *Service) mapPlace(place client.Place, query string, campaignID *uuid.UUID) (leadsrepo.UpsertParams, bool) {
	phoneNumber := place.NationalPhoneNumber
	if phoneNumber == "" {
		phoneNumber = place.InternationalPhoneNumber
	}
	if strings.TrimSpace(phoneNumber) == "" || place.ID == "" {
		return leadsrepo.UpsertParams{}, false
	}

	params := leadsrepo.UpsertParams{
		PlaceID:      place.ID,
		BusinessName: place.DisplayName.Text,
		PhoneNumber:  phoneNumber,
		Rating:       place.Rating,
		TotalRatings: place.UserRatingCount,
		SourceQuery:  &query,
		CampaignID:   campaignID,
	}

	if e164 := phone.NormalizeE164(phoneNumber); e164 != "" {
		params.PhoneE164 = &e164
	}
	params.Address = optional(place.FormattedAddress)
	params.Website = optional(place.WebsiteURI)
	params.BusinessStatus = optional(place.BusinessStatus)
	params.GoogleMapsURL = optional(place.GoogleMapsURI)
	if len(place.Types) > 0 {
		params.Category = optional(place.Types[0])
	}
	return params, true
}

// fetchWebsiteTexts pulls visible text for every lead with a website,
// a few pages at a time. Fetch failures leave the field empty.
func (s *Service) fetchWebsiteTexts(ctx context.Context, batch []leadsrepo.UpsertParams) {
	if s.fetcher == nil {
		return
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(websiteFetchConcurrency)

	for i := range batch {
		if batch[i].Website == nil {
			continue
		}
		index := i
		group.Go(func() error {
			text, err := s.fetcher.FetchText(groupCtx, *batch[index].Website)
			if err != nil {
				s.log.Debug("website fetch failed",
					"url", *batch[index].Website, "error", err.Error())
				return nil
			}
			if text != "" {
				batch[index].WebsiteText = &text
			}
			return nil
		})
	}
	_ = group.Wait()
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
