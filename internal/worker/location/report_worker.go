package location

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/worker"
)

const reportBuffer = 8

// ReportWorker отправляет позицию устройства на бэкенд. Работает от
// собственного канала показаний: с foreground-сессией трекинга общего
// мутабельного состояния нет. Переполненный канал роняет старые показания -
// бэкенду важна последняя позиция, не вся траектория.
type ReportWorker struct {
	*worker.BaseWorker
	gateway  repository.GatewayRepository
	deviceID string
	interval time.Duration

	readings chan domain.Reading
}

// NewReportWorker создает новый ReportWorker
func NewReportWorker(
	gateway repository.GatewayRepository,
	deviceID string,
	interval time.Duration,
	logger *zap.Logger,
) *ReportWorker {
	return &ReportWorker{
		BaseWorker: worker.NewBaseWorker("location-report", logger),
		gateway:    gateway,
		deviceID:   deviceID,
		interval:   interval,
		readings:   make(chan domain.Reading, reportBuffer),
	}
}

// Offer передаёт показание воркеру; не блокирует вызывающего
func (w *ReportWorker) Offer(reading domain.Reading) {
	select {
	case w.readings <- reading:
	default:
		// очередь полна: выталкиваем старое показание ради свежего
		select {
		case <-w.readings:
		default:
		}
		select {
		case w.readings <- reading:
		default:
		}
	}
}

// Start запускает цикл отправки: не чаще одного репорта на interval
func (w *ReportWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting location report worker",
		zap.Duration("interval", w.interval))

	var lastReport time.Time

	for {
		select {
		case <-w.StopChan():
			logger.Info("Location report worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case reading := <-w.readings:
			if time.Since(lastReport) < w.interval {
				continue
			}

			if err := w.report(ctx, reading); err != nil {
				// ретраи уже внутри шлюза; здесь только фиксация исхода
				logger.Warn("Location report failed", zap.Error(err))
				continue
			}

			lastReport = time.Now()
			logger.Debug("Location reported",
				zap.Stringer("coordinate", reading.Coordinate))
		}
	}
}

func (w *ReportWorker) report(ctx context.Context, reading domain.Reading) error {
	reportCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return w.gateway.UpdateLocation(reportCtx, w.deviceID, reading.Coordinate)
}
