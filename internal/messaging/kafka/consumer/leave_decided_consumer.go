package consumer

import (
	"context"
	"encoding/json"

	"lemonpay/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier receives decided leave events. Actual delivery (email, chat) is
// owned by external systems; the in-repo implementation only audit-logs.
type Notifier interface {
	NotifyLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error
}

// ConsumeLeaveDecided reads decided-leave events and forwards them to the
// notifier until the context is cancelled.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.NotifyLeaveDecided(ctx, event); err != nil {
			log.Error("notify leave decided failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decided event handled",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("status", event.Status),
		)
	}
}

// LogNotifier is the default Notifier: it writes an audit line per event.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) NotifyLeaveDecided(_ context.Context, event events.LeaveDecidedEvent) error {
	n.logger.Info("leave decided",
		zap.String("leave_id", event.LeaveID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("leave_type", event.LeaveType),
		zap.Int("days", event.Days),
		zap.String("status", event.Status),
	)
	return nil
}
