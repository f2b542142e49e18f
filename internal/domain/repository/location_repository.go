package repository

import (
	"context"

	"github.com/beach-safety-agent/internal/domain"
)

// LocationProvider - источник показаний позиции (замена платформенного GPS).
// Subscribe возвращает канал показаний и функцию отписки; отписка обязана
// освобождать ресурсы подписки и закрывать канал.
type LocationProvider interface {
	// RequestPermission запрашивает доступ к позиции; отказ - не ошибка
	RequestPermission(ctx context.Context) (bool, error)

	// Subscribe начинает непрерывный поток показаний
	Subscribe(ctx context.Context) (<-chan domain.Reading, func(), error)

	// Name возвращает имя провайдера для логов
	Name() string
}

// Notifier - канал доставки уведомлений (замена платформенных нотификаций)
type Notifier interface {
	// Notify доставляет уведомление; ошибка логируется, но не ретраится
	Notify(ctx context.Context, n domain.Notification) error

	// Name возвращает имя канала для логов
	Name() string
}
