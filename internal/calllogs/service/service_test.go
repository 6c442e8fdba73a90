package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/calllogs/transport"
	"callcrm_backend/internal/events"
	leadsrepo "callcrm_backend/internal/leads/repository"
	"callcrm_backend/platform/apperr"
	"callcrm_backend/platform/logger"
)

type fakeRepo struct {
	created []repository.CreateParams
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.CallLog, error) {
	f.created = append(f.created, params)
	return repository.CallLog{
		ID:       uuid.New(),
		LeadID:   params.LeadID,
		Outcome:  params.Outcome,
		CalledAt: params.CalledAt,
	}, nil
}

func (f *fakeRepo) GetByID(context.Context, uuid.UUID) (repository.CallLog, error) {
	return repository.CallLog{}, nil
}

func (f *fakeRepo) List(context.Context, repository.ListParams) ([]repository.CallLog, error) {
	return nil, nil
}

func (f *fakeRepo) ListByLead(context.Context, uuid.UUID) ([]repository.CallLog, error) {
	return nil, nil
}

func (f *fakeRepo) Stats(context.Context, *uuid.UUID) (repository.SetStats, error) {
	return repository.SetStats{}, nil
}

func (f *fakeRepo) CallbacksDue(context.Context, time.Time) ([]repository.CallLog, error) {
	return nil, nil
}

func (f *fakeRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeLeadWriter struct {
	calls []appliedEffects
}

type appliedEffects struct {
	leadID   uuid.UUID
	status   *string
	calledAt time.Time
}

func (f *fakeLeadWriter) ApplyCallEffects(_ context.Context, id uuid.UUID, status *string, calledAt time.Time) (leadsrepo.Lead, error) {
	f.calls = append(f.calls, appliedEffects{leadID: id, status: status, calledAt: calledAt})
	current := "new"
	if status != nil {
		current = *status
	}
	return leadsrepo.Lead{ID: id, Status: current, LastCalledAt: &calledAt}, nil
}

type fakeScheduler struct {
	scheduled []time.Time
}

func (f *fakeScheduler) ScheduleCallbackReminder(_ context.Context, _, _ uuid.UUID, at time.Time) error {
	f.scheduled = append(f.scheduled, at)
	return nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)          {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)               {}

func newTestService(repo *fakeRepo, leads *fakeLeadWriter, sched ReminderScheduler) *Service {
	return New(repo, leads, sched, nopBus{}, logger.New("development"))
}

func TestCreateStampsLeadUnconditionally(t *testing.T) {
	// Outcomes that do not move the status must still stamp last_called_at.
	for _, outcome := range []string{"answered", "voicemail", "no_answer", "busy", "not_yet"} {
		t.Run(outcome, func(t *testing.T) {
			repo := &fakeRepo{}
			leads := &fakeLeadWriter{}
			svc := newTestService(repo, leads, nil)

			result, err := svc.Create(context.Background(), transport.CreateCallLogRequest{
				LeadID:      uuid.New(),
				CallOutcome: outcome,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if result.StatusChanged {
				t.Errorf("outcome %s should not change status", outcome)
			}
			if len(leads.calls) != 1 {
				t.Fatalf("expected one lead effect, got %d", len(leads.calls))
			}
			if leads.calls[0].status != nil {
				t.Errorf("status update = %q, want nil", *leads.calls[0].status)
			}
			if leads.calls[0].calledAt.IsZero() {
				t.Error("last_called_at stamp missing")
			}
		})
	}
}

func TestCreateAppliesStatusMapping(t *testing.T) {
	tests := []struct {
		outcome    string
		wantStatus string
	}{
		{"callback_scheduled", "callback"},
		{"sent_number", "sent_number"},
		{"wants_callback", "wants_callback"},
		{"receptionist", "receptionist"},
		{"need_closing", "need_closing"},
		{"closed_won", "closed_won"},
		{"closed_lost", "closed_lost"},
		{"not_interested", "not_interested"},
		{"wrong_number", "not_interested"},
		{"do_not_call", "not_interested"},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			repo := &fakeRepo{}
			leads := &fakeLeadWriter{}
			svc := newTestService(repo, leads, nil)

			result, err := svc.Create(context.Background(), transport.CreateCallLogRequest{
				LeadID:      uuid.New(),
				CallOutcome: tt.outcome,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if !result.StatusChanged {
				t.Fatalf("outcome %s should change status", tt.outcome)
			}
			if got := leads.calls[0].status; got == nil || *got != tt.wantStatus {
				t.Errorf("status update = %v, want %q", got, tt.wantStatus)
			}
			if leads.calls[0].calledAt.IsZero() {
				t.Error("last_called_at stamp missing despite status change")
			}
		})
	}
}

func TestCreateRejectsUnknownOutcome(t *testing.T) {
	repo := &fakeRepo{}
	leads := &fakeLeadWriter{}
	svc := newTestService(repo, leads, nil)

	_, err := svc.Create(context.Background(), transport.CreateCallLogRequest{
		LeadID:      uuid.New(),
		CallOutcome: "escalated",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("invalid outcome reached the repository")
	}
	if len(leads.calls) != 0 {
		t.Error("invalid outcome touched the lead")
	}
}

func TestCreateSchedulesCallbackReminder(t *testing.T) {
	repo := &fakeRepo{}
	leads := &fakeLeadWriter{}
	sched := &fakeScheduler{}
	svc := newTestService(repo, leads, sched)

	at := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	_, err := svc.Create(context.Background(), transport.CreateCallLogRequest{
		LeadID:            uuid.New(),
		CallOutcome:       "callback_scheduled",
		ScheduledCallback: &at,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sched.scheduled) != 1 || !sched.scheduled[0].Equal(at) {
		t.Fatalf("reminder schedule = %v, want [%v]", sched.scheduled, at)
	}
}

func TestCreateWithoutSchedulerStillLogs(t *testing.T) {
	repo := &fakeRepo{}
	leads := &fakeLeadWriter{}
	svc := newTestService(repo, leads, nil)

	at := time.Now().Add(time.Hour)
	result, err := svc.Create(context.Background(), transport.CreateCallLogRequest{
		LeadID:            uuid.New(),
		CallOutcome:       "callback_scheduled",
		ScheduledCallback: &at,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !result.StatusChanged {
		t.Error("callback_scheduled should change status even without a scheduler")
	}
}
