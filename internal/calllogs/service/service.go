// Package service implements the call logging application logic.
//
// Logging a call has two distinct effects on the lead: the
// last_called_at stamp is applied on every log, and the pipeline status
// changes only when the outcome maps to a new status.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"callcrm_backend/internal/calllogs/domain"
	"callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/calllogs/transport"
	"callcrm_backend/internal/events"
	leadsrepo "callcrm_backend/internal/leads/repository"
	"callcrm_backend/platform/apperr"
	"callcrm_backend/platform/logger"
)

// LeadEffectsWriter applies the side effects of a logged call to the lead.
// Satisfied by the leads repository.
type LeadEffectsWriter interface {
	ApplyCallEffects(ctx context.Context, id uuid.UUID, status *string, calledAt time.Time) (leadsrepo.Lead, error)
}

// ReminderScheduler enqueues a callback reminder for a future time.
// Nil when Redis is not configured.
type ReminderScheduler interface {
	ScheduleCallbackReminder(ctx context.Context, callLogID, leadID uuid.UUID, at time.Time) error
}

// Service implements call log use cases.
type Service struct {
	repo      repository.Repository
	leads     LeadEffectsWriter
	scheduler ReminderScheduler
	bus       events.Bus
	log       *logger.Logger
}

// New creates the call logs service. scheduler may be nil.
func New(repo repository.Repository, leads LeadEffectsWriter, scheduler ReminderScheduler, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, scheduler: scheduler, bus: bus, log: log}
}

// Create records a dial attempt, applies the call effects to the lead and
// publishes the resulting events. A callback_scheduled outcome with a
// scheduled time also enqueues a reminder.
func (s *Service) Create(ctx context.Context, req transport.CreateCallLogRequest) (transport.CreateCallLogResponse, error) {
	outcome := domain.Outcome(req.CallOutcome)
	if !outcome.IsValid() {
		return transport.CreateCallLogResponse{}, apperr.Validation("invalid call outcome")
	}

	calledAt := time.Now()
	callLog, err := s.repo.Create(ctx, repository.CreateParams{
		LeadID:            req.LeadID,
		CampaignID:        req.CampaignID,
		Outcome:           string(outcome),
		Notes:             req.Notes,
		ScheduledCallback: req.ScheduledCallback,
		CalledAt:          calledAt,
	})
	if err != nil {
		return transport.CreateCallLogResponse{}, err
	}

	// Effect 1: the last_called_at stamp is unconditional.
	// Effect 2: the status change only happens when the outcome maps.
	var statusUpdate *string
	newStatus, changed := domain.MapToStatus(outcome)
	if changed {
		statusUpdate = &newStatus
	}

	lead, err := s.leads.ApplyCallEffects(ctx, req.LeadID, statusUpdate, calledAt)
	if err != nil {
		return transport.CreateCallLogResponse{}, err
	}

	s.log.CallLogged(req.LeadID.String(), string(outcome), changed)

	s.bus.Publish(ctx, events.CallLogCreated{
		BaseEvent: events.NewBaseEvent(),
		CallLogID: callLog.ID,
		LeadID:    req.LeadID,
		Outcome:   string(outcome),
		CallLog:   callLog,
	})
	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Lead:      lead,
	})

	if outcome == domain.OutcomeCallbackScheduled && req.ScheduledCallback != nil && s.scheduler != nil {
		if err := s.scheduler.ScheduleCallbackReminder(ctx, callLog.ID, req.LeadID, *req.ScheduledCallback); err != nil {
			// The call log is already persisted; a reminder failure is not fatal.
			s.log.Warn("failed to schedule callback reminder",
				"call_log_id", callLog.ID.String(), "error", err.Error())
		}
	}

	return transport.CreateCallLogResponse{
		CallLog:       callLog,
		Lead:          lead,
		StatusChanged: changed,
	}, nil
}

// List returns call logs with optional filters.
func (s *Service) List(ctx context.Context, params repository.ListParams) ([]repository.CallLog, error) {
	logs, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []repository.CallLog{}
	}
	return logs, nil
}

// Stats summarises dialling activity for a session.
func (s *Service) Stats(ctx context.Context, campaignID *uuid.UUID) (repository.SetStats, error) {
	stats, err := s.repo.Stats(ctx, campaignID)
	if err != nil {
		return repository.SetStats{}, err
	}
	if stats.Outcomes == nil {
		stats.Outcomes = []repository.OutcomeCount{}
	}
	return stats, nil
}

// CallbacksDue returns logs whose scheduled callback has passed.
func (s *Service) CallbacksDue(ctx context.Context) ([]repository.CallLog, error) {
	logs, err := s.repo.CallbacksDue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []repository.CallLog{}
	}
	return logs, nil
}

// Delete removes a call log entry and publishes the deletion.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.CallLogDeleted{
		BaseEvent: events.NewBaseEvent(),
		CallLogID: id,
	})
	return nil
}
