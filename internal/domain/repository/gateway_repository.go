package repository

import (
	"context"

	"github.com/beach-safety-agent/internal/domain"
)

// GatewayRepository - клиент бэкенда beach-safety (внешний коллаборатор).
// Все методы уважают дедлайн контекста; сетевые ошибки возвращаются как
// AppError с кодом NETWORK_FAILURE/PARSE_FAILURE.
type GatewayRepository interface {
	// FetchBeaches возвращает пляжи с зонами для языка интерфейса
	FetchBeaches(ctx context.Context, language string) ([]domain.Beach, error)

	// FetchAlerts возвращает алерты пляжа; 204 от бэкенда - пустой список
	FetchAlerts(ctx context.Context, beachID int) ([]domain.Alert, error)

	// UpdateLocation отправляет текущую позицию устройства
	UpdateLocation(ctx context.Context, deviceID string, coord domain.Coordinate) error

	// CheckLocation делегирует проверку принадлежности зоне бэкенду
	CheckLocation(ctx context.Context, deviceID string, coord domain.Coordinate) (*domain.CheckLocationResult, error)

	// FetchLastLocation возвращает последнюю известную бэкенду позицию
	// устройства; LOCATION_NOT_FOUND если её нет
	FetchLastLocation(ctx context.Context, deviceID string) (*domain.Coordinate, error)

	// FetchSettings читает настройки, зеркалированные на бэкенд
	FetchSettings(ctx context.Context, deviceID string) (*domain.Settings, error)

	// PushSettings зеркалирует настройки на бэкенд
	PushSettings(ctx context.Context, deviceID string, settings domain.Settings) error

	// FetchDailyTip возвращает совет дня для языка
	FetchDailyTip(ctx context.Context, language string) (*domain.Tip, error)

	// FetchLatestTip возвращает последний опубликованный совет
	FetchLatestTip(ctx context.Context) (*domain.Tip, error)
}
