package transport

import (
	"time"

	"github.com/google/uuid"

	"callcrm_backend/internal/calllogs/repository"
)

// CreateCallLogRequest records a dial attempt.
type CreateCallLogRequest struct {
	LeadID            uuid.UUID  `json:"lead_id" validate:"required"`
	CampaignID        *uuid.UUID `json:"campaign_id,omitempty"`
	CallOutcome       string     `json:"call_outcome" validate:"required"`
	Notes             *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ScheduledCallback *time.Time `json:"scheduled_callback,omitempty"`
}

// ListCallLogsRequest carries the list filters from the query string.
type ListCallLogsRequest struct {
	LeadID     string `form:"lead_id"`
	CampaignID string `form:"campaign_id"`
	Date       string `form:"date"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// CreateCallLogResponse returns the log plus the lead as it stands after
// the call effects were applied.
type CreateCallLogResponse struct {
	CallLog       repository.CallLog `json:"call_log"`
	Lead          interface{}        `json:"lead"`
	StatusChanged bool               `json:"status_changed"`
}
