package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/config"
)

const (
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 1000 // milliseconds
)

// Client - тонкая обёртка над paho для publish/subscribe агента.
// Подключение с авто-reconnect; подписки восстанавливает paho.
type Client struct {
	client pahomqtt.Client
	logger *zap.Logger
}

// NewClient подключается к брокеру MQTT
func NewClient(cfg *config.MQTTConfig, logger *zap.Logger) (*Client, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAutoReconnect(true).
		SetCleanSession(false)

	opts.OnConnectionLost = func(_ pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	}
	opts.OnConnect = func(_ pahomqtt.Client) {
		logger.Info("MQTT connected", zap.String("broker", cfg.Broker))
	}

	client := pahomqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect timed out after %v", cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// Publish отправляет сообщение в топик (QoS 1, не retained)
func (c *Client) Publish(topic string, payload []byte) error {
	token := c.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish to %s timed out", topic)
	}
	return token.Error()
}

// Subscribe подписывается на топик; handler вызывается из горутин paho
func (c *Client) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt subscribe to %s timed out", topic)
	}
	return token.Error()
}

// Unsubscribe снимает подписку с топика
func (c *Client) Unsubscribe(topic string) error {
	token := c.client.Unsubscribe(topic)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt unsubscribe from %s timed out", topic)
	}
	return token.Error()
}

// Close отключается от брокера
func (c *Client) Close() {
	c.logger.Info("Closing MQTT connection")
	c.client.Disconnect(disconnectQuiesce)
}
