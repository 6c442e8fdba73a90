package transport

import (
	calllogsrepo "callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/leads/repository"
	"callcrm_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// UpdateLeadRequest contains the partially-updatable lead fields.
type UpdateLeadRequest struct {
	BusinessName *string    `json:"business_name,omitempty" validate:"omitempty,min=1,max=255"`
	PhoneNumber  *string    `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Address      *string    `json:"address,omitempty" validate:"omitempty,max=500"`
	Website      *string    `json:"website,omitempty" validate:"omitempty,max=500"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Status       *string    `json:"status,omitempty"`
	Notes        *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	CampaignID   *uuid.UUID `json:"campaign_id,omitempty"`
}

// ListLeadsRequest carries the list filters from the query string.
type ListLeadsRequest struct {
	Status     string `form:"status"`
	CampaignID string `form:"campaign_id"`
	Search     string `form:"search"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// ScoredLead is a lead enriched with its computed score.
type ScoredLead struct {
	repository.Lead
	Score     int      `json:"score"`
	ScoreBand string   `json:"score_band"`
	Reasons   []string `json:"score_reasons"`
}

// ListLeadsResponse wraps a page of scored leads.
type ListLeadsResponse struct {
	Leads []ScoredLead `json:"leads"`
	Total int          `json:"total"`
}

// LeadDetailResponse is a lead with its call history and full score result.
type LeadDetailResponse struct {
	ScoredLead
	CallLogs    []calllogsrepo.CallLog `json:"call_logs"`
	ScoreDetail scoring.Result         `json:"score_detail"`
}

// StatsOverviewResponse is the per-status lead breakdown.
type StatsOverviewResponse struct {
	Total    int                      `json:"total"`
	ByStatus []repository.StatusCount `json:"by_status"`
}
