package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
)

// LogNotifier пишет уведомления в лог агента; всегда доступен и служит
// последним каналом, когда внешние не сконфигурированы
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier создает лог-канал уведомлений
func NewLogNotifier(logger *zap.Logger) repository.Notifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Name() string {
	return "log"
}

func (n *LogNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.logger.Info("ALERT",
		zap.String("title", notification.Title),
		zap.String("body", notification.Body),
		zap.String("kind", string(notification.Kind)),
		zap.Bool("sound", notification.Sound),
		zap.Bool("vibrate", notification.Vibrate))
	return nil
}
