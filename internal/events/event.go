// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"callcrm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a single lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID   `json:"leadId"`
	Lead   interface{} `json:"lead"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadUpdated is published when a lead is updated, including the
// unconditional timestamp update that follows every logged call.
type LeadUpdated struct {
	BaseEvent
	LeadID uuid.UUID   `json:"leadId"`
	Lead   interface{} `json:"lead"`
}

func (e LeadUpdated) EventName() string { return "leads.updated" }

// LeadDeleted is published when a lead is removed.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.deleted" }

// LeadsBulkCreated is published after a scrape run upserts a batch of leads.
type LeadsBulkCreated struct {
	BaseEvent
	Count int         `json:"count"`
	Leads interface{} `json:"leads"`
}

func (e LeadsBulkCreated) EventName() string { return "leads.bulk_created" }

// =============================================================================
// Campaigns Domain Events
// =============================================================================

// CampaignCreated is published when a campaign is created.
type CampaignCreated struct {
	BaseEvent
	CampaignID uuid.UUID   `json:"campaignId"`
	Campaign   interface{} `json:"campaign"`
}

func (e CampaignCreated) EventName() string { return "campaigns.created" }

// CampaignUpdated is published when a campaign is updated.
type CampaignUpdated struct {
	BaseEvent
	CampaignID uuid.UUID   `json:"campaignId"`
	Campaign   interface{} `json:"campaign"`
}

func (e CampaignUpdated) EventName() string { return "campaigns.updated" }

// CampaignDeleted is published when a campaign is removed.
type CampaignDeleted struct {
	BaseEvent
	CampaignID uuid.UUID `json:"campaignId"`
}

func (e CampaignDeleted) EventName() string { return "campaigns.deleted" }

// =============================================================================
// Call Log Domain Events
// =============================================================================

// CallLogCreated is published when a dial attempt is recorded.
type CallLogCreated struct {
	BaseEvent
	CallLogID uuid.UUID   `json:"callLogId"`
	LeadID    uuid.UUID   `json:"leadId"`
	Outcome   string      `json:"outcome"`
	CallLog   interface{} `json:"callLog"`
}

func (e CallLogCreated) EventName() string { return "calllogs.created" }

// CallLogDeleted is published when a call log entry is removed.
type CallLogDeleted struct {
	BaseEvent
	CallLogID uuid.UUID `json:"callLogId"`
}

func (e CallLogDeleted) EventName() string { return "calllogs.deleted" }

// CallbackDue is published by the scheduler worker when a scheduled
// callback reminder fires.
type CallbackDue struct {
	BaseEvent
	CallLogID    uuid.UUID   `json:"callLogId"`
	LeadID       uuid.UUID   `json:"leadId"`
	BusinessName string      `json:"businessName"`
	PhoneNumber  string      `json:"phoneNumber"`
	ScheduledFor time.Time   `json:"scheduledFor"`
	CallLog      interface{} `json:"callLog,omitempty"`
}

func (e CallbackDue) EventName() string { return "calllogs.callback.due" }

// =============================================================================
// Scraping Domain Events
// =============================================================================

// ScrapeProgress is published during a scrape run, once per processed listing.
type ScrapeProgress struct {
	BaseEvent
	Query        string `json:"query"`
	Current      int    `json:"current"`
	Total        int    `json:"total"`
	LastBusiness string `json:"lastBusiness"`
}

func (e ScrapeProgress) EventName() string { return "scrape.progress" }

// ScrapeComplete is published when a scrape run finishes.
type ScrapeComplete struct {
	BaseEvent
	Query   string      `json:"query"`
	Scraped int         `json:"scraped"`
	Saved   int         `json:"saved"`
	Leads   interface{} `json:"leads"`
}

func (e ScrapeComplete) EventName() string { return "scrape.complete" }
