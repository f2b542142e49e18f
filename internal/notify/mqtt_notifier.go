package notify

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/infrastructure/mqtt"
)

// MQTTNotifier публикует уведомления в топик для companion-дисплеев
// (киоск на пляже, табло спасателей)
type MQTTNotifier struct {
	client *mqtt.Client
	topic  string
	logger *zap.Logger
}

// NewMQTTNotifier создает MQTT-канал уведомлений
func NewMQTTNotifier(client *mqtt.Client, topic string, logger *zap.Logger) repository.Notifier {
	return &MQTTNotifier{
		client: client,
		topic:  topic,
		logger: logger,
	}
}

func (n *MQTTNotifier) Name() string {
	return "mqtt"
}

func (n *MQTTNotifier) Notify(_ context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := n.client.Publish(n.topic, payload); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug("Notification published",
		zap.String("topic", n.topic),
		zap.String("kind", string(notification.Kind)))

	return nil
}
