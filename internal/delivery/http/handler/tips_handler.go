package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/pkg/utils"
	"github.com/beach-safety-agent/internal/usecase"
)

// TipsHandler отдаёт совет дня
type TipsHandler struct {
	tipsUC          *usecase.TipsUseCase
	defaultLanguage string
	logger          *zap.Logger
}

// NewTipsHandler создает новый TipsHandler
func NewTipsHandler(tipsUC *usecase.TipsUseCase, defaultLanguage string, logger *zap.Logger) *TipsHandler {
	return &TipsHandler{
		tipsUC:          tipsUC,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// GetDailyTip godoc
// @Summary Daily tip
// @Description Совет дня; 404 когда советы выключены настройками
// @Tags Tips
// @Produce json
// @Param language query string false "Language code"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/tips/daily [get]
func (h *TipsHandler) GetDailyTip(c *fiber.Ctx) error {
	language := c.Query("language", h.defaultLanguage)

	tip, err := h.tipsUC.DailyTip(c.Context(), language)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, tip, nil)
}
