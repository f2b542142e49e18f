package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/errors"
	"github.com/beach-safety-agent/internal/pkg/utils"
	"github.com/beach-safety-agent/internal/pkg/validator"
	"github.com/beach-safety-agent/internal/tracker"
	"github.com/beach-safety-agent/internal/usecase"
	"github.com/beach-safety-agent/internal/usecase/dto"
)

// StatusHandler отдаёт состояние агента и резолюцию по требованию
type StatusHandler struct {
	resolutionUC *usecase.ResolutionUseCase
	dispatchUC   *usecase.DispatchUseCase
	history      repository.HistoryRepository
	trk          *tracker.Tracker
	deviceID     string
	startedAt    time.Time
	logger       *zap.Logger
}

// NewStatusHandler создает новый StatusHandler
func NewStatusHandler(
	resolutionUC *usecase.ResolutionUseCase,
	dispatchUC *usecase.DispatchUseCase,
	history repository.HistoryRepository,
	trk *tracker.Tracker,
	deviceID string,
	logger *zap.Logger,
) *StatusHandler {
	return &StatusHandler{
		resolutionUC: resolutionUC,
		dispatchUC:   dispatchUC,
		history:      history,
		trk:          trk,
		deviceID:     deviceID,
		startedAt:    time.Now(),
		logger:       logger,
	}
}

// GetStatus godoc
// @Summary Agent status
// @Description Состояние трекера, текущая зона и последние смены зон
// @Tags Status
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/status [get]
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	ctx := c.Context()

	resp := dto.StatusResponse{
		DeviceID:    h.deviceID,
		Tracker:     string(h.trk.State()),
		Provider:    h.trk.Provider(),
		CurrentZone: h.dispatchUC.LastResult(),
		StartedAt:   h.startedAt,
	}

	if reading, err := h.history.LastReading(ctx); err == nil {
		resp.LastReading = reading
	}
	if transitions, err := h.history.RecentTransitions(ctx, 10); err == nil {
		resp.Transitions = transitions
	}

	return utils.SendSuccess(c, resp, nil)
}

// GetCurrentZone godoc
// @Summary Current zone
// @Description Последний применённый результат резолюции зоны
// @Tags Status
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/zone/current [get]
func (h *StatusHandler) GetCurrentZone(c *fiber.Ctx) error {
	result := h.dispatchUC.LastResult()
	if result == nil {
		return utils.SendError(c, errors.ErrLocationNotFound)
	}

	return utils.SendSuccess(c, result, nil)
}

// Resolve godoc
// @Summary Resolve coordinate
// @Description Резолюция произвольной координаты (отладка, companion UI)
// @Tags Status
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "Coordinate"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/resolve [post]
func (h *StatusHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	coord := domain.Coordinate{Lat: req.Latitude, Lon: req.Longitude}

	var result domain.ResolutionResult
	if req.Mode == domain.ResolutionModeRemote {
		result = h.resolutionUC.ResolveRemote(c.Context(), h.deviceID, coord)
	} else {
		result = h.resolutionUC.Resolve(c.Context(), coord)
	}

	return utils.SendSuccess(c, result, nil)
}

// SetLanguage godoc
// @Summary Switch content language
// @Description Меняет язык контента и перезагружает каталог пляжей
// @Tags Status
// @Accept json
// @Produce json
// @Param request body dto.LanguageRequest true "Language"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/language [post]
func (h *StatusHandler) SetLanguage(c *fiber.Ctx) error {
	var req dto.LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.resolutionUC.SetLanguage(c.Context(), req.Language); err != nil {
		h.logger.Warn("beaches reload after language switch failed",
			zap.String("language", req.Language),
			zap.Error(err))
	}

	return utils.SendSuccess(c, fiber.Map{"language": req.Language}, nil)
}
