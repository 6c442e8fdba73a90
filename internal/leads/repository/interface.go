package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is a scraped business listing worked through the calling pipeline.
// Field names follow the wire format consumed by the dialler frontend.
type Lead struct {
	ID             uuid.UUID  `json:"id"`
	PlaceID        *string    `json:"place_id,omitempty"`
	BusinessName   string     `json:"business_name"`
	PhoneNumber    string     `json:"phone_number"`
	PhoneE164      *string    `json:"phone_e164,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Website        *string    `json:"website,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Rating         *float64   `json:"rating,omitempty"`
	TotalRatings   *int       `json:"total_ratings,omitempty"`
	Category       *string    `json:"category,omitempty"`
	BusinessStatus *string    `json:"business_status,omitempty"`
	GoogleMapsURL  *string    `json:"google_maps_url,omitempty"`
	OpeningHours   *string    `json:"opening_hours,omitempty"`
	WebsiteText    *string    `json:"website_text,omitempty"`
	SourceQuery    *string    `json:"source_query,omitempty"`
	CampaignID     *uuid.UUID `json:"campaign_id,omitempty"`
	Status         string     `json:"status"`
	Notes          *string    `json:"notes,omitempty"`
	LastCalledAt   *time.Time `json:"last_called_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ListParams filters and pages the lead list.
type ListParams struct {
	Status     string
	CampaignID *uuid.UUID
	Search     string
	Limit      int
	Offset     int
}

// UpdateParams carries the partially-updatable lead fields. Nil fields
// are left untouched.
type UpdateParams struct {
	ID           uuid.UUID
	BusinessName *string
	PhoneNumber  *string
	Address      *string
	Website      *string
	Email        *string
	Status       *string
	Notes        *string
	CampaignID   *uuid.UUID
}

// UpsertParams carries a scraped listing for bulk insertion.
type UpsertParams struct {
	PlaceID        string
	BusinessName   string
	PhoneNumber    string
	PhoneE164      *string
	Address        *string
	Website        *string
	Rating         *float64
	TotalRatings   *int
	Category       *string
	BusinessStatus *string
	GoogleMapsURL  *string
	OpeningHours   *string
	WebsiteText    *string
	SourceQuery    *string
	CampaignID     *uuid.UUID
}

// StatusCount is one row of the stats overview.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LeadReader provides read operations for leads.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	StatsByStatus(ctx context.Context, campaignID *uuid.UUID) ([]StatusCount, int, error)
}

// LeadWriter provides write operations for leads.
type LeadWriter interface {
	Update(ctx context.Context, params UpdateParams) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertMany(ctx context.Context, batch []UpsertParams) ([]Lead, error)
	ApplyCallEffects(ctx context.Context, id uuid.UUID, status *string, calledAt time.Time) (Lead, error)
}

// Repository combines all lead repository operations.
type Repository interface {
	LeadReader
	LeadWriter
}
