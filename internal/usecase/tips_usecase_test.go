package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	apperrors "github.com/beach-safety-agent/internal/pkg/errors"
	"github.com/beach-safety-agent/internal/usecase"
)

func tipCacheKey(language string) string {
	return fmt.Sprintf("tip:%s:%s", language, time.Now().Format("2006-01-02"))
}

func TestTipsUseCase_DailyTip(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	enabled := domain.DefaultSettings()
	enabled.DailyTips = true

	t.Run("disabled by settings", func(t *testing.T) {
		settingsUC := newSettingsUseCase(t, domain.DefaultSettings())
		uc := usecase.NewTipsUseCase(&MockGatewayRepository{}, &MockCacheRepository{}, settingsUC, logger)

		tip, err := uc.DailyTip(ctx, "en")

		assert.Nil(t, tip)
		assert.ErrorIs(t, err, apperrors.ErrTipNotFound)
	})

	t.Run("cache hit", func(t *testing.T) {
		settingsUC := newSettingsUseCase(t, enabled)
		mockGateway := &MockGatewayRepository{}
		mockCache := &MockCacheRepository{}

		cached, err := json.Marshal(domain.Tip{ID: 3, Language: "en", Title: "Flags", Message: "Check the flags"})
		require.NoError(t, err)
		mockCache.On("Get", ctx, tipCacheKey("en")).Return(cached, nil)

		uc := usecase.NewTipsUseCase(mockGateway, mockCache, settingsUC, logger)

		tip, err := uc.DailyTip(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "Flags", tip.Title)
		mockGateway.AssertNotCalled(t, "FetchDailyTip")
	})

	t.Run("cache miss fetches daily tip", func(t *testing.T) {
		settingsUC := newSettingsUseCase(t, enabled)
		mockGateway := &MockGatewayRepository{}
		mockCache := &MockCacheRepository{}

		fetched := &domain.Tip{ID: 4, Language: "fr", Title: "Marees", Message: "Attention aux marees"}
		mockCache.On("Get", ctx, tipCacheKey("fr")).Return(nil, nil)
		mockGateway.On("FetchDailyTip", ctx, "fr").Return(fetched, nil)
		mockCache.On("Set", ctx, tipCacheKey("fr"), mock.Anything, 6*time.Hour).Return(nil)

		uc := usecase.NewTipsUseCase(mockGateway, mockCache, settingsUC, logger)

		tip, err := uc.DailyTip(ctx, "fr")
		require.NoError(t, err)
		assert.Equal(t, 4, tip.ID)
		mockCache.AssertExpectations(t)
	})

	t.Run("daily failure falls back to latest", func(t *testing.T) {
		settingsUC := newSettingsUseCase(t, enabled)
		mockGateway := &MockGatewayRepository{}
		mockCache := &MockCacheRepository{}

		latest := &domain.Tip{ID: 2, Language: "en", Title: "Latest", Message: "Latest tip"}
		mockCache.On("Get", ctx, tipCacheKey("en")).Return(nil, nil)
		mockGateway.On("FetchDailyTip", ctx, "en").Return(nil, apperrors.ErrNetworkFailure)
		mockGateway.On("FetchLatestTip", ctx).Return(latest, nil)
		mockCache.On("Set", ctx, tipCacheKey("en"), mock.Anything, 6*time.Hour).Return(nil)

		uc := usecase.NewTipsUseCase(mockGateway, mockCache, settingsUC, logger)

		tip, err := uc.DailyTip(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "Latest", tip.Title)
	})

	t.Run("backend fully down uses static fallback", func(t *testing.T) {
		settingsUC := newSettingsUseCase(t, enabled)
		mockGateway := &MockGatewayRepository{}
		mockCache := &MockCacheRepository{}

		mockCache.On("Get", ctx, tipCacheKey("en")).Return(nil, nil)
		mockGateway.On("FetchDailyTip", ctx, "en").Return(nil, apperrors.ErrNetworkFailure)
		mockGateway.On("FetchLatestTip", ctx).Return(nil, apperrors.ErrNetworkFailure)

		uc := usecase.NewTipsUseCase(mockGateway, mockCache, settingsUC, logger)

		tip, err := uc.DailyTip(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "Stay safe", tip.Title)
		assert.Equal(t, "en", tip.Language)
	})
}
