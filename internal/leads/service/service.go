// Package service implements the leads application logic: listing,
// scoring, updating and deleting leads, and publishing the matching
// domain events.
package service

import (
	"context"

	"github.com/google/uuid"

	calllogsrepo "callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/events"
	"callcrm_backend/internal/leads/domain"
	"callcrm_backend/internal/leads/repository"
	"callcrm_backend/internal/leads/scoring"
	"callcrm_backend/internal/leads/transport"
	"callcrm_backend/platform/apperr"
	"callcrm_backend/platform/logger"
)

// CallHistoryReader reads a lead's dial history. Satisfied by the
// call logs repository.
type CallHistoryReader interface {
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]calllogsrepo.CallLog, error)
}

// Service implements lead use cases on top of the repository.
type Service struct {
	repo    repository.Repository
	history CallHistoryReader
	engine  *scoring.Engine
	bus     events.Bus
	log     *logger.Logger
}

// New creates the leads service.
func New(repo repository.Repository, history CallHistoryReader, engine *scoring.Engine, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, history: history, engine: engine, bus: bus, log: log}
}

// List returns a filtered page of leads, each with its computed score.
func (s *Service) List(ctx context.Context, params repository.ListParams) (transport.ListLeadsResponse, error) {
	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	scored := make([]transport.ScoredLead, 0, len(leads))
	for _, lead := range leads {
		scored = append(scored, s.scoreLead(lead))
	}
	return transport.ListLeadsResponse{Leads: scored, Total: total}, nil
}

// Get returns one lead with its call history and full score result.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}

	logs, err := s.history.ListByLead(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}
	if logs == nil {
		logs = []calllogsrepo.CallLog{}
	}

	result := s.engine.Score(scoringInput(lead))
	return transport.LeadDetailResponse{
		ScoredLead:  scoredFromResult(lead, result),
		CallLogs:    logs,
		ScoreDetail: result,
	}, nil
}

// Score returns the standalone score result for one lead.
func (s *Service) Score(ctx context.Context, id uuid.UUID) (scoring.Result, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return scoring.Result{}, err
	}
	return s.engine.Score(scoringInput(lead)), nil
}

// Update applies a partial update and publishes the change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.ScoredLead, error) {
	if req.Status != nil && !domain.Status(*req.Status).IsValid() {
		return transport.ScoredLead{}, apperr.Validation("invalid lead status")
	}

	lead, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:           id,
		BusinessName: req.BusinessName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Website:      req.Website,
		Email:        req.Email,
		Status:       req.Status,
		Notes:        req.Notes,
		CampaignID:   req.CampaignID,
	})
	if err != nil {
		return transport.ScoredLead{}, err
	}

	scored := s.scoreLead(lead)
	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Lead:      scored,
	})
	return scored, nil
}

// Delete removes a lead and publishes the deletion.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
	})
	return nil
}

// Stats returns the per-status lead breakdown.
func (s *Service) Stats(ctx context.Context, campaignID *uuid.UUID) (transport.StatsOverviewResponse, error) {
	counts, total, err := s.repo.StatsByStatus(ctx, campaignID)
	if err != nil {
		return transport.StatsOverviewResponse{}, err
	}
	if counts == nil {
		counts = []repository.StatusCount{}
	}
	return transport.StatsOverviewResponse{Total: total, ByStatus: counts}, nil
}

func (s *Service) scoreLead(lead repository.Lead) transport.ScoredLead {
	return scoredFromResult(lead, s.engine.Score(scoringInput(lead)))
}

func scoredFromResult(lead repository.Lead, result scoring.Result) transport.ScoredLead {
	return transport.ScoredLead{
		Lead:      lead,
		Score:     result.Score,
		ScoreBand: result.Band,
		Reasons:   result.Reasons,
	}
}

func scoringInput(lead repository.Lead) scoring.Input {
	return scoring.Input{
		PhoneNumber:  lead.PhoneNumber,
		BusinessName: lead.BusinessName,
		Address:      deref(lead.Address),
		OpeningHours: deref(lead.OpeningHours),
		WebsiteText:  deref(lead.WebsiteText),
		Rating:       lead.Rating,
		TotalRatings: lead.TotalRatings,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
