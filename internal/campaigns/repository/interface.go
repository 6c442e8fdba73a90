package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Campaign groups leads into a calling effort with a daily dial target.
type Campaign struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DailyDialTarget int       `json:"daily_dial_target"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Aggregates, populated on detail and list queries.
	TotalLeads  int `json:"total_leads"`
	TodaysCalls int `json:"todays_calls"`
}

// CreateParams carries a new campaign.
type CreateParams struct {
	Name            string
	Description     *string
	DailyDialTarget int
	Status          string
}

// UpdateParams carries the partially-updatable campaign fields.
type UpdateParams struct {
	ID              uuid.UUID
	Name            *string
	Description     *string
	DailyDialTarget *int
	Status          *string
}

// CampaignReader provides read operations for campaigns.
type CampaignReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
}

// CampaignWriter provides write operations for campaigns.
type CampaignWriter interface {
	Create(ctx context.Context, params CreateParams) (Campaign, error)
	Update(ctx context.Context, params UpdateParams) (Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all campaign repository operations.
type Repository interface {
	CampaignReader
	CampaignWriter
}
