package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/config"
	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/errors"
	"github.com/beach-safety-agent/internal/pkg/metrics"
)

type client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// NewClient создает HTTP-клиент бэкенда beach-safety
func NewClient(cfg *config.GatewayConfig, m *metrics.Metrics, logger *zap.Logger) repository.GatewayRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:      cfg.BaseURL,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger,
		metrics:      m,
	}
}

// updateLocationRequest / checkLocationRequest - тела POST-запросов бэкенда
type locationRequest struct {
	DeviceID  string  `json:"deviceId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type settingsEnvelope struct {
	DeviceID string          `json:"deviceId"`
	Settings domain.Settings `json:"settings"`
}

// FetchBeaches возвращает пляжи с зонами для языка интерфейса
func (c *client) FetchBeaches(ctx context.Context, language string) ([]domain.Beach, error) {
	url := fmt.Sprintf("%s/api/beaches?language=%s", c.baseURL, language)

	var beaches []domain.Beach
	if err := c.getJSON(ctx, "beaches", url, &beaches); err != nil {
		return nil, err
	}

	c.logger.Debug("Beaches fetched",
		zap.String("language", language),
		zap.Int("count", len(beaches)))

	return beaches, nil
}

// FetchAlerts возвращает алерты пляжа; 204 означает "алертов нет"
func (c *client) FetchAlerts(ctx context.Context, beachID int) ([]domain.Alert, error) {
	url := fmt.Sprintf("%s/api/alerts/beach/%d", c.baseURL, beachID)

	body, status, err := c.doRequest(ctx, "alerts", http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNoContent {
		return []domain.Alert{}, nil
	}

	var alerts []domain.Alert
	if err := json.Unmarshal(body, &alerts); err != nil {
		c.logger.Error("Failed to decode alerts", zap.Int("beach_id", beachID), zap.Error(err))
		return nil, errors.ErrParseFailure
	}

	return alerts, nil
}

// UpdateLocation отправляет текущую позицию устройства
func (c *client) UpdateLocation(ctx context.Context, deviceID string, coord domain.Coordinate) error {
	url := fmt.Sprintf("%s/api/users/update-location", c.baseURL)

	payload := locationRequest{
		DeviceID:  deviceID,
		Latitude:  coord.Lat,
		Longitude: coord.Lon,
	}

	_, _, err := c.doRequest(ctx, "update-location", http.MethodPost, url, payload)
	return err
}

// CheckLocation делегирует проверку принадлежности зоне бэкенду
func (c *client) CheckLocation(ctx context.Context, deviceID string, coord domain.Coordinate) (*domain.CheckLocationResult, error) {
	url := fmt.Sprintf("%s/api/users/check-location", c.baseURL)

	payload := locationRequest{
		DeviceID:  deviceID,
		Latitude:  coord.Lat,
		Longitude: coord.Lon,
	}

	body, _, err := c.doRequest(ctx, "check-location", http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}

	var result domain.CheckLocationResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("Failed to decode check-location response", zap.Error(err))
		return nil, errors.ErrParseFailure
	}

	return &result, nil
}

// FetchLastLocation возвращает последнюю известную бэкенду позицию устройства
func (c *client) FetchLastLocation(ctx context.Context, deviceID string) (*domain.Coordinate, error) {
	url := fmt.Sprintf("%s/api/users/location/%s", c.baseURL, deviceID)

	body, status, err := c.doRequest(ctx, "last-location", http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, errors.ErrLocationNotFound
	}

	var coord domain.Coordinate
	if err := json.Unmarshal(body, &coord); err != nil {
		return nil, errors.ErrParseFailure
	}
	if !coord.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	return &coord, nil
}

// FetchSettings читает зеркалированные настройки
func (c *client) FetchSettings(ctx context.Context, deviceID string) (*domain.Settings, error) {
	url := fmt.Sprintf("%s/api/settings?deviceId=%s", c.baseURL, deviceID)

	var settings domain.Settings
	if err := c.getJSON(ctx, "settings", url, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// PushSettings зеркалирует настройки на бэкенд
func (c *client) PushSettings(ctx context.Context, deviceID string, settings domain.Settings) error {
	url := fmt.Sprintf("%s/api/settings", c.baseURL)

	payload := settingsEnvelope{
		DeviceID: deviceID,
		Settings: settings,
	}

	_, _, err := c.doRequest(ctx, "settings", http.MethodPost, url, payload)
	return err
}

// FetchDailyTip возвращает совет дня для языка
func (c *client) FetchDailyTip(ctx context.Context, language string) (*domain.Tip, error) {
	url := fmt.Sprintf("%s/api/tips/daily?language=%s", c.baseURL, language)

	var tip domain.Tip
	if err := c.getJSON(ctx, "tips", url, &tip); err != nil {
		return nil, err
	}

	return &tip, nil
}

// FetchLatestTip возвращает последний опубликованный совет
func (c *client) FetchLatestTip(ctx context.Context) (*domain.Tip, error) {
	url := fmt.Sprintf("%s/api/tips/latest", c.baseURL)

	var tip domain.Tip
	if err := c.getJSON(ctx, "tips", url, &tip); err != nil {
		return nil, err
	}

	return &tip, nil
}

func (c *client) getJSON(ctx context.Context, endpoint, url string, out interface{}) error {
	body, _, err := c.doRequest(ctx, endpoint, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode response",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return errors.ErrParseFailure
	}

	return nil
}

// doRequest выполняет запрос с ограниченным числом повторов и фиксированной
// паузой между ними. 4xx-ответы не ретраятся: повтор не изменит исход.
// Статусы 204 и 404 отдаются вызывающему как данные, не как ошибка.
func (c *client) doRequest(ctx context.Context, endpoint, method, url string, payload interface{}) ([]byte, int, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			c.metrics.IncGatewayRetry()
			select {
			case <-ctx.Done():
				c.metrics.IncGatewayRequest(endpoint, "cancelled")
				return nil, 0, errors.ErrNetworkFailure
			case <-time.After(c.retryBackoff):
			}
		}

		body, status, retryable, err := c.attempt(ctx, method, url, payload)
		if err == nil {
			c.metrics.IncGatewayRequest(endpoint, "ok")
			return body, status, nil
		}

		lastErr = err
		c.logger.Warn("Gateway request failed",
			zap.String("endpoint", endpoint),
			zap.String("method", method),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if !retryable {
			break
		}
	}

	c.metrics.IncGatewayRequest(endpoint, "failed")
	return nil, 0, lastErr
}

// attempt - одна попытка запроса; возвращает retryable-флаг
func (c *client) attempt(ctx context.Context, method, url string, payload interface{}) ([]byte, int, bool, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, false, errors.ErrParseFailure
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, false, errors.ErrNetworkFailure
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, true, errors.ErrNetworkFailure
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, true, errors.ErrNetworkFailure
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, resp.StatusCode, true, errors.ErrNetworkFailure
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusNoContent:
		return body, resp.StatusCode, false, nil
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, resp.StatusCode, false, errors.ErrNetworkFailure
	}

	return body, resp.StatusCode, false, nil
}
