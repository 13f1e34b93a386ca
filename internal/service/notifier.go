package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Notifier schedules the recurring "come back for a challenge"
// reminder. The dispenser never depends on delivery succeeding;
// implementations own permission handling and transport.
type Notifier interface {
	ScheduleRepeating(ctx context.Context, title, body string, every time.Duration) error
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a Notifier that logs each reminder instead of
// delivering it anywhere. Stands in for a platform notification
// service in local deployments.
func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) ScheduleRepeating(ctx context.Context, title, body string, every time.Duration) error {
	if every <= 0 {
		return errors.New("reminder interval must be positive")
	}

	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.logger.Info("reminder due",
					zap.String("title", title),
					zap.String("body", body),
				)
			}
		}
	}()
	return nil
}
