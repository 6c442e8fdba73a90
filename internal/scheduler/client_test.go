package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"callcrm_backend/platform/config"
)

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(&config.Config{}); err == nil {
		t.Fatal("expected an error when no redis url is configured")
	}
}

func TestNewClientRejectsMalformedURL(t *testing.T) {
	if _, err := NewClient(&config.Config{RedisURL: "not-a-url"}); err == nil {
		t.Fatal("expected an error for a malformed redis url")
	}
}

func TestScheduleCallbackReminder(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(&config.Config{
		RedisURL:       "redis://" + mr.Addr(),
		AsynqQueueName: "callcrm",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	at := time.Now().Add(2 * time.Hour)
	err = client.ScheduleCallbackReminder(context.Background(), uuid.New(), uuid.New(), at)
	if err != nil {
		t.Fatalf("ScheduleCallbackReminder: %v", err)
	}

	var scheduled bool
	for _, key := range mr.Keys() {
		if strings.Contains(key, "callcrm") && strings.Contains(key, "scheduled") {
			scheduled = true
		}
	}
	if !scheduled {
		t.Errorf("no scheduled task key found, keys = %v", mr.Keys())
	}
}

func TestNilClientIsNoOp(t *testing.T) {
	var client *Client
	if err := client.ScheduleCallbackReminder(context.Background(), uuid.New(), uuid.New(), time.Now()); err != nil {
		t.Errorf("nil client schedule = %v, want nil", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("nil client close = %v, want nil", err)
	}
}

func TestCallbackReminderPayloadRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	payload := CallbackReminderPayload{
		CallLogID:    uuid.NewString(),
		LeadID:       uuid.NewString(),
		ScheduledFor: at,
	}

	task, err := NewCallbackReminderTask(payload)
	if err != nil {
		t.Fatalf("NewCallbackReminderTask: %v", err)
	}
	if task.Type() != TaskCallbackReminder {
		t.Errorf("task type = %q", task.Type())
	}

	parsed, err := ParseCallbackReminderPayload(task)
	if err != nil {
		t.Fatalf("ParseCallbackReminderPayload: %v", err)
	}
	if parsed != payload {
		t.Errorf("parsed = %+v, want %+v", parsed, payload)
	}
}
