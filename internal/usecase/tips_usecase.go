package usecase

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/errors"
)

const tipCacheTTL = 6 * time.Hour

// TipsUseCase - совет дня: гейтится настройкой dailyTips, кешируется по
// языку и дате, при недоступном бэкенде падает на latest, затем на статичный
// запасной совет
type TipsUseCase struct {
	gateway    repository.GatewayRepository
	cache      repository.CacheRepository
	settingsUC *SettingsUseCase
	logger     *zap.Logger
}

// NewTipsUseCase создает новый TipsUseCase
func NewTipsUseCase(
	gateway repository.GatewayRepository,
	cache repository.CacheRepository,
	settingsUC *SettingsUseCase,
	logger *zap.Logger,
) *TipsUseCase {
	return &TipsUseCase{
		gateway:    gateway,
		cache:      cache,
		settingsUC: settingsUC,
		logger:     logger,
	}
}

// DailyTip возвращает совет дня для языка; TIP_NOT_FOUND когда советы
// выключены настройками
func (uc *TipsUseCase) DailyTip(ctx context.Context, language string) (*domain.Tip, error) {
	if !uc.settingsUC.Current().DailyTips {
		return nil, errors.ErrTipNotFound
	}

	key := fmt.Sprintf("tip:%s:%s", language, time.Now().Format("2006-01-02"))

	if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
		var tip domain.Tip
		if err := json.Unmarshal(data, &tip); err == nil {
			return &tip, nil
		}
	}

	tip, err := uc.gateway.FetchDailyTip(ctx, language)
	if err != nil {
		uc.logger.Warn("Daily tip fetch failed, trying latest", zap.Error(err))
		tip, err = uc.gateway.FetchLatestTip(ctx)
	}
	if err != nil {
		uc.logger.Warn("Latest tip fetch failed, using fallback", zap.Error(err))
		return domain.FallbackTip(language), nil
	}

	if data, merr := json.Marshal(tip); merr == nil {
		if cerr := uc.cache.Set(ctx, key, data, tipCacheTTL); cerr != nil {
			uc.logger.Warn("Failed to cache tip", zap.Error(cerr))
		}
	}

	return tip, nil
}
