package tasks

import (
	"encoding/json"
	"time"

	"salonassist/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = 24 * time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues appointment reminders on the Redis-backed
// queue. A nil scheduler is a valid no-op (redis-less deployments).
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler(redisOpts asynq.RedisClientOpt) *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts)}
}

// Schedule queues a reminder 24 hours before the appointment start, or
// immediately when the appointment is closer than that.
func (s *ReminderScheduler) Schedule(payload models.ReminderPayload) error {
	if s == nil {
		return nil
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", payload.StartTime, time.Local)
	if err != nil {
		return err
	}
	fireAt := start.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}
