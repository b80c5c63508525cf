package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lemonpay/internal/messaging/kafka"
	"lemonpay/internal/messaging/kafka/producer"
	"lemonpay/internal/shared/connection"
	"lemonpay/internal/task"

	"go.uber.org/zap"
)

// RunWorker drives the two background loops: the outbox publisher and the
// task due-reminder sweep.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	taskRepo := task.NewRepository(gormDB)
	taskService := task.NewService(sqlDB, taskRepo, outboxRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runDueReminderSweep(ctx, taskService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runDueReminderSweep stages reminder events for tasks approaching their due
// date. The horizon defaults to 24h; TASK_REMINDER_HORIZON_HOURS overrides it.
func runDueReminderSweep(ctx context.Context, taskService task.Service, logger *zap.Logger) {
	log := logger.Named("due_reminder")

	horizon := 24 * time.Hour
	if raw := os.Getenv("TASK_REMINDER_HORIZON_HOURS"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			horizon = time.Duration(h) * time.Hour
		}
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	log.Info("due reminder sweep started", zap.Duration("horizon", horizon))

	for {
		select {
		case <-ctx.Done():
			log.Info("due reminder sweep stopped")
			return
		case <-ticker.C:
			reminded, err := taskService.RemindDue(ctx, horizon)
			if err != nil {
				log.Error("due reminder sweep failed", zap.Error(err))
				continue
			}
			if reminded > 0 {
				log.Info("due reminders staged", zap.Int("count", reminded))
			}
		}
	}
}
