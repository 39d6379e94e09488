package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"festivo/config"
	"festivo/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "reminder:booking"

// ReminderPayload is the task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID   string      `json:"bookingId"`
	UserID      string      `json:"userId"`
	ServiceName string      `json:"serviceName"`
	BookingDate models.Date `json:"bookingDate"`
}

// AsynqReminderScheduler enqueues reminder tasks processed by the worker in
// cron/worker.go.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// NewReminderScheduler builds a scheduler on the configured Redis queue.
func NewReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleReminder queues a reminder 24 hours before the booking date.
// Bookings made inside that window get the reminder a minute out instead.
func (s *AsynqReminderScheduler) ScheduleReminder(b models.Booking) error {
	payload, err := json.Marshal(ReminderPayload{
		BookingID:   b.ID,
		UserID:      b.UserID,
		ServiceName: b.ServiceName,
		BookingDate: b.BookingDate,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	runAt := b.BookingDate.Time().Add(-24 * time.Hour)
	if runAt.Before(time.Now()) {
		runAt = time.Now().Add(time.Minute)
	}
	task := asynq.NewTask(TypeBookingReminder, payload)
	if _, err := s.Client.Enqueue(task, asynq.ProcessAt(runAt), asynq.Queue("default")); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", b.ID, err)
	}
	return nil
}
