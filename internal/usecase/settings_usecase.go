package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
)

const mirrorTimeout = 10 * time.Second

// SettingsUseCase - настройки пользователя: локальная персистентность плюс
// best-effort зеркалирование на бэкенд. Мутация только через Update.
type SettingsUseCase struct {
	store    repository.SettingsRepository
	gateway  repository.GatewayRepository
	logger   *zap.Logger
	deviceID string

	mu      sync.RWMutex
	current domain.Settings
}

// NewSettingsUseCase создает SettingsUseCase и читает настройки с диска.
// Если локального blob нет (первый запуск или потеря данных), настройки
// best-effort подтягиваются из зеркала на бэкенде.
func NewSettingsUseCase(
	ctx context.Context,
	store repository.SettingsRepository,
	gateway repository.GatewayRepository,
	deviceID string,
	logger *zap.Logger,
) (*SettingsUseCase, error) {
	settings, stored, err := store.Load(ctx)
	if err != nil {
		// Load сам деградирует в дефолты; сюда попадает только сбой хранилища
		return nil, err
	}

	logger.Info("Settings loaded", zap.Int("version", settings.Version))

	uc := &SettingsUseCase{
		store:    store,
		gateway:  gateway,
		logger:   logger,
		deviceID: deviceID,
		current:  settings,
	}

	if !stored {
		uc.seed(ctx)
	}

	return uc, nil
}

// seed заменяет дефолты зеркалированными настройками; любой сбой оставляет
// дефолты в силе
func (uc *SettingsUseCase) seed(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	remote, err := uc.gateway.FetchSettings(ctx, uc.deviceID)
	if err != nil || remote == nil {
		uc.logger.Info("No mirrored settings to seed from", zap.Error(err))
		return
	}
	if remote.Version == 0 {
		remote.Version = 1
	}

	if err := uc.store.Save(ctx, *remote); err != nil {
		uc.logger.Warn("Failed to persist seeded settings", zap.Error(err))
	}

	uc.current = *remote
	uc.logger.Info("Settings seeded from backend", zap.Int("version", remote.Version))
}

// Current возвращает текущие настройки
func (uc *SettingsUseCase) Current() domain.Settings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current
}

// Update применяет частичный патч: merge, атомарная запись на диск,
// best-effort зеркалирование на бэкенд (сбой зеркала не откатывает локальное
// состояние, только логируется)
func (uc *SettingsUseCase) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	uc.mu.Lock()

	if patch.Empty() {
		settings := uc.current
		uc.mu.Unlock()
		return settings, nil
	}

	merged := uc.current.Merge(patch)

	if err := uc.store.Save(ctx, merged); err != nil {
		uc.mu.Unlock()
		return domain.Settings{}, err
	}

	uc.current = merged
	uc.mu.Unlock()

	uc.logger.Info("Settings updated", zap.Int("version", merged.Version))

	go uc.mirror(merged)

	return merged, nil
}

func (uc *SettingsUseCase) mirror(settings domain.Settings) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := uc.gateway.PushSettings(ctx, uc.deviceID, settings); err != nil {
		uc.logger.Warn("Failed to mirror settings to backend", zap.Error(err))
	}
}
