package repository

import (
	"context"
	"time"

	"github.com/beach-safety-agent/internal/domain"
)

// CacheRepository определяет методы для работы с кешем ответов бэкенда
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetBeaches получает кешированный список пляжей для языка
	GetBeaches(ctx context.Context, language string) ([]domain.Beach, error)

	// SetBeaches сохраняет список пляжей для языка
	SetBeaches(ctx context.Context, language string, beaches []domain.Beach, ttl time.Duration) error

	// GetAlerts получает кешированные алерты пляжа
	GetAlerts(ctx context.Context, beachID int) ([]domain.Alert, error)

	// SetAlerts сохраняет алерты пляжа
	SetAlerts(ctx context.Context, beachID int, alerts []domain.Alert, ttl time.Duration) error
}
