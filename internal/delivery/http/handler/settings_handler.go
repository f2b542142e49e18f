package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/pkg/errors"
	"github.com/beach-safety-agent/internal/pkg/utils"
	"github.com/beach-safety-agent/internal/usecase"
	"github.com/beach-safety-agent/internal/usecase/dto"
)

// SettingsHandler обрабатывает чтение и частичное обновление настроек
type SettingsHandler struct {
	settingsUC *usecase.SettingsUseCase
	logger     *zap.Logger
}

// NewSettingsHandler создает новый SettingsHandler
func NewSettingsHandler(settingsUC *usecase.SettingsUseCase, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUC: settingsUC,
		logger:     logger,
	}
}

// GetSettings godoc
// @Summary Get settings
// @Description Текущие настройки уведомлений
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.settingsUC.Current(), nil)
}

// UpdateSettings godoc
// @Summary Update settings
// @Description Частичное обновление настроек; отсутствующие поля не меняются
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SettingsPatchRequest true "Partial settings"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/settings [patch]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.SettingsPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	patch := domain.SettingsPatch{
		Notifications:  req.Notifications,
		LocationAlerts: req.LocationAlerts,
		Sounds:         req.Sounds,
		Vibrations:     req.Vibrations,
		DailyTips:      req.DailyTips,
	}

	settings, err := h.settingsUC.Update(c.Context(), patch)
	if err != nil {
		h.logger.Error("Failed to update settings", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, settings, nil)
}
