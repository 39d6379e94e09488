package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"festivo/config"
	"festivo/services/tasks"
	"festivo/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
// Delivery channels are out of scope; a due reminder is surfaced in the logs
// for downstream notification tooling to pick up.
func InitReminderWorker() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleBookingReminder)

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleBookingReminder(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal reminder payload: %w", err)
	}
	utils.GetLogger().Info("booking reminder due",
		zap.String("bookingID", payload.BookingID),
		zap.String("userID", payload.UserID),
		zap.String("service", payload.ServiceName),
		zap.String("date", payload.BookingDate.String()))
	return nil
}
