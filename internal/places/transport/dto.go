// Package transport defines request and response DTOs for the places module.
package transport

// SearchPlacesRequest is the query for a passthrough place search.
type SearchPlacesRequest struct {
	Query string `form:"query" validate:"required,min=2"`
}

// ScrapeLeadsRequest starts a scrape run for the given query, optionally
// attaching the saved leads to a campaign.
type ScrapeLeadsRequest struct {
	Query      string  `json:"query" validate:"required,min=2"`
	CampaignID *string `json:"campaign_id" validate:"omitempty,uuid"`
}
