package repository

import (
	"context"

	"github.com/beach-safety-agent/internal/domain"
)

// SettingsRepository - локальное хранилище настроек и идентичности устройства
type SettingsRepository interface {
	// Load читает настройки; отсутствующий или битый blob даёт дефолты.
	// Второй результат сообщает, что настройки прочитаны с диска, а не
	// подставлены дефолтами
	Load(ctx context.Context) (domain.Settings, bool, error)

	// Save атомарно перезаписывает настройки
	Save(ctx context.Context, settings domain.Settings) error

	// DeviceID возвращает стабильный идентификатор установки; генерируется
	// один раз и переиспользуется во всех вызовах шлюза
	DeviceID(ctx context.Context) (string, error)
}
