package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskCallbackReminder = "calllogs.callback.reminder"

type CallbackReminderPayload struct {
	CallLogID    string    `json:"callLogId"`
	LeadID       string    `json:"leadId"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

func NewCallbackReminderTask(payload CallbackReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCallbackReminder, data), nil
}

func ParseCallbackReminderPayload(task *asynq.Task) (CallbackReminderPayload, error) {
	var payload CallbackReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CallbackReminderPayload{}, err
	}
	return payload, nil
}
