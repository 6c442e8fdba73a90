package scheduler

import (
	"context"
	"fmt"

	"callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/events"
	"callcrm_backend/platform/apperr"
	"callcrm_backend/platform/config"
	"callcrm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskCallbackReminder, w.handleCallbackReminder)

	return w, nil
}

func (w *Worker) handleCallbackReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCallbackReminderPayload(task)
	if err != nil {
		return err
	}

	callLogID, err := uuid.Parse(payload.CallLogID)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	callLog, err := w.repo.GetByID(ctx, callLogID)
	if err != nil {
		// The entry may have been deleted since scheduling; nothing to remind.
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	if callLog.ScheduledCallback == nil {
		return nil
	}

	if w.bus == nil {
		return nil
	}

	w.bus.Publish(ctx, events.CallbackDue{
		BaseEvent:    events.NewBaseEvent(),
		CallLogID:    callLog.ID,
		LeadID:       leadID,
		BusinessName: optionalString(callLog.BusinessName),
		PhoneNumber:  optionalString(callLog.PhoneNumber),
		ScheduledFor: *callLog.ScheduledCallback,
		CallLog:      callLog,
	})

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
