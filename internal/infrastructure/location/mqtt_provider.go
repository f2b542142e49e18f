package location

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
)

const readingBuffer = 16

// positionMessage - позиция, публикуемая companion-устройством в MQTT
type positionMessage struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	AccuracyM float64    `json:"accuracy_m,omitempty"`
	At        *time.Time `json:"at,omitempty"`
}

// brokerSubscriber - часть MQTT-клиента, нужная провайдеру позиции.
// Handler вызывается из горутин клиента.
type brokerSubscriber interface {
	Subscribe(topic string, handler func(topic string, payload []byte)) error
	Unsubscribe(topic string) error
}

// MQTTProvider - источник позиции из MQTT-топика companion-устройства
type MQTTProvider struct {
	client brokerSubscriber
	topic  string
	logger *zap.Logger
}

// NewMQTTProvider создает провайдер позиции поверх MQTT-клиента
func NewMQTTProvider(client brokerSubscriber, topic string, logger *zap.Logger) repository.LocationProvider {
	return &MQTTProvider{
		client: client,
		topic:  topic,
		logger: logger,
	}
}

func (p *MQTTProvider) Name() string {
	return "mqtt"
}

// RequestPermission проверяет доступность источника: для MQTT это пробная
// подписка на топик позиции
func (p *MQTTProvider) RequestPermission(ctx context.Context) (bool, error) {
	if err := p.client.Subscribe(p.topic, func(string, []byte) {}); err != nil {
		p.logger.Warn("Location topic unavailable", zap.String("topic", p.topic), zap.Error(err))
		return false, nil
	}
	_ = p.client.Unsubscribe(p.topic)
	return true, nil
}

// Subscribe начинает поток показаний из топика; отписка закрывает канал.
// Хендлер может ещё выполняться, когда Unsubscribe вернулся, поэтому
// закрытие канала и отправка в него разведены мьютексом.
func (p *MQTTProvider) Subscribe(ctx context.Context) (<-chan domain.Reading, func(), error) {
	readings := make(chan domain.Reading, readingBuffer)

	var mu sync.Mutex
	closed := false

	handler := func(_ string, payload []byte) {
		var msg positionMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			p.logger.Warn("Malformed position message, skipping", zap.Error(err))
			return
		}

		reading := domain.Reading{
			Coordinate: domain.Coordinate{Lat: msg.Latitude, Lon: msg.Longitude},
			AccuracyM:  msg.AccuracyM,
			At:         time.Now(),
		}
		if msg.At != nil {
			reading.At = *msg.At
		}

		if !reading.Coordinate.Valid() {
			p.logger.Warn("Position message with invalid coordinates, skipping",
				zap.Float64("latitude", msg.Latitude),
				zap.Float64("longitude", msg.Longitude))
			return
		}

		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case readings <- reading:
		default:
			// потребитель отстаёт: свежие показания важнее очереди
		}
	}

	if err := p.client.Subscribe(p.topic, handler); err != nil {
		return nil, nil, err
	}

	unsubscribe := func() {
		if err := p.client.Unsubscribe(p.topic); err != nil {
			p.logger.Warn("Failed to unsubscribe from location topic", zap.Error(err))
		}
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		closed = true
		close(readings)
	}

	return readings, unsubscribe, nil
}
