package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CallLog records a single dial attempt against a lead.
type CallLog struct {
	ID                uuid.UUID  `json:"id"`
	LeadID            uuid.UUID  `json:"lead_id"`
	CampaignID        *uuid.UUID `json:"campaign_id,omitempty"`
	Outcome           string     `json:"call_outcome"`
	Notes             *string    `json:"notes,omitempty"`
	ScheduledCallback *time.Time `json:"scheduled_callback,omitempty"`
	CalledAt          time.Time  `json:"called_at"`
	CreatedAt         time.Time  `json:"created_at"`

	// Joined lead fields, populated on list queries.
	BusinessName *string `json:"business_name,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
}

// CreateParams carries a new call log entry.
type CreateParams struct {
	LeadID            uuid.UUID
	CampaignID        *uuid.UUID
	Outcome           string
	Notes             *string
	ScheduledCallback *time.Time
	CalledAt          time.Time
}

// ListParams filters and pages the call log list. Date, when set,
// selects the whole calendar day.
type ListParams struct {
	LeadID     *uuid.UUID
	CampaignID *uuid.UUID
	Date       *time.Time
	Limit      int
	Offset     int
}

// OutcomeCount is one row of the per-outcome stats.
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

// SetStats summarises a calling session: how many distinct leads were
// dialled and how each dial ended.
type SetStats struct {
	UniqueLeads int            `json:"unique_leads"`
	TotalCalls  int            `json:"total_calls"`
	Outcomes    []OutcomeCount `json:"outcomes"`
}

// CallLogReader provides read operations for call logs.
type CallLogReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (CallLog, error)
	List(ctx context.Context, params ListParams) ([]CallLog, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]CallLog, error)
	Stats(ctx context.Context, campaignID *uuid.UUID) (SetStats, error)
	CallbacksDue(ctx context.Context, now time.Time) ([]CallLog, error)
}

// CallLogWriter provides write operations for call logs.
type CallLogWriter interface {
	Create(ctx context.Context, params CreateParams) (CallLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all call log repository operations.
type Repository interface {
	CallLogReader
	CallLogWriter
}
