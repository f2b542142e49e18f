package alerts

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/usecase"
	"github.com/beach-safety-agent/internal/worker"
)

// RefreshWorker периодически перечитывает алерты текущего пляжа, пока
// пользователь находится на нём. Пляж считается текущим после первой
// резолюции внутри его зоны.
type RefreshWorker struct {
	*worker.BaseWorker
	resolutionUC *usecase.ResolutionUseCase
	interval     time.Duration
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(
	resolutionUC *usecase.ResolutionUseCase,
	interval time.Duration,
	logger *zap.Logger,
) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker:   worker.NewBaseWorker("alert-refresh", logger),
		resolutionUC: resolutionUC,
		interval:     interval,
	}
}

// Start запускает цикл обновления
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting alert refresh worker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Alert refresh worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			beachID, ok := w.resolutionUC.CurrentBeach()
			if !ok {
				continue // пользователь пока не входил ни в один пляж
			}

			if err := w.resolutionUC.RefreshAlerts(ctx, beachID); err != nil {
				logger.Warn("Alert refresh failed",
					zap.Int("beach_id", beachID),
					zap.Error(err))
			}
		}
	}
}
