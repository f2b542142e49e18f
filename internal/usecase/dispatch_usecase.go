package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/metrics"
)

// Исходы решения диспетчера (значения метрики notifications)
const (
	outcomeDispatched = "dispatched"
	outcomeSuppressed = "suppressed"
	outcomeGated      = "gated"
	outcomeStale      = "stale"
	outcomeFailed     = "failed"
)

const notifyTimeout = 10 * time.Second

// DispatchUseCase - дедупликация алертов и рассылка уведомлений.
// Держит единственную ячейку "предыдущий вид зоны" на сессию трекинга;
// сбрасывается через Reset при рестарте трекинга.
type DispatchUseCase struct {
	settingsUC *SettingsUseCase
	history    repository.HistoryRepository
	notifiers  []repository.Notifier
	logger     *zap.Logger
	metrics    *metrics.Metrics

	mu         sync.Mutex
	prevKind   *domain.ZoneKind
	lastSeq    uint64
	hasSeq     bool
	lastResult *domain.ResolutionResult
}

// NewDispatchUseCase создает новый DispatchUseCase
func NewDispatchUseCase(
	settingsUC *SettingsUseCase,
	history repository.HistoryRepository,
	notifiers []repository.Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *DispatchUseCase {
	return &DispatchUseCase{
		settingsUC: settingsUC,
		history:    history,
		notifiers:  notifiers,
		logger:     logger,
		metrics:    m,
	}
}

// Reset очищает состояние сессии; вызывается на старте трекинга
func (uc *DispatchUseCase) Reset() {
	uc.mu.Lock()
	uc.prevKind = nil
	uc.hasSeq = false
	uc.lastSeq = 0
	uc.lastResult = nil
	uc.mu.Unlock()
}

// LastResult возвращает последний применённый результат резолюции
func (uc *DispatchUseCase) LastResult() *domain.ResolutionResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.lastResult == nil {
		return nil
	}
	copied := *uc.lastResult
	return &copied
}

// Handle принимает результат резолюции с номером показания и решает, слать ли
// уведомление. Возвращает true, если уведомление было отправлено в каналы.
//
// Правила: первый результат сессии всегда считается сменой зоны; одинаковый
// вид подряд подавляется; смена гейтится настройками notifications и
// locationAlerts. Предыдущий вид обновляется безусловно после попытки -
// неудачная доставка по той же зоне не ретраится.
func (uc *DispatchUseCase) Handle(ctx context.Context, result domain.ResolutionResult, seq uint64) bool {
	uc.mu.Lock()

	// отбрасываем резолюции, обогнанные более свежим показанием
	if uc.hasSeq && seq <= uc.lastSeq {
		uc.mu.Unlock()
		uc.metrics.IncNotification(outcomeStale)
		uc.logger.Debug("Stale resolution dropped",
			zap.Uint64("seq", seq),
			zap.Uint64("last_seq", uc.lastSeq))
		return false
	}
	uc.lastSeq = seq
	uc.hasSeq = true

	changed := uc.prevKind == nil || *uc.prevKind != result.Kind
	var fromKind domain.ZoneKind
	if uc.prevKind != nil {
		fromKind = *uc.prevKind
	}

	// предыдущая зона обновляется безусловно, до исхода доставки
	kind := result.Kind
	uc.prevKind = &kind
	copied := result
	uc.lastResult = &copied

	uc.mu.Unlock()

	if !changed {
		uc.metrics.IncNotification(outcomeSuppressed)
		return false
	}

	settings := uc.settingsUC.Current()
	gated := !settings.Notifications || !settings.LocationAlerts

	uc.journalTransition(ctx, fromKind, result, !gated)

	if gated {
		uc.metrics.IncNotification(outcomeGated)
		uc.logger.Debug("Notification gated by settings",
			zap.Bool("notifications", settings.Notifications),
			zap.Bool("location_alerts", settings.LocationAlerts))
		return false
	}

	notification := domain.Notification{
		Title:   notificationTitle(result),
		Body:    result.Message,
		Kind:    result.Kind,
		Sound:   settings.Sounds,
		Vibrate: settings.Vibrations,
	}

	// fire-and-forget: доставка не блокирует пайплайн показаний
	go uc.dispatch(notification)

	return true
}

func (uc *DispatchUseCase) dispatch(n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	failed := false
	for _, notifier := range uc.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			failed = true
			uc.logger.Error("Notification delivery failed",
				zap.String("notifier", notifier.Name()),
				zap.String("kind", string(n.Kind)),
				zap.Error(err))
		}
	}

	if failed {
		uc.metrics.IncNotification(outcomeFailed)
		return
	}

	uc.metrics.IncNotification(outcomeDispatched)
	uc.logger.Info("Notification dispatched",
		zap.String("kind", string(n.Kind)),
		zap.String("body", n.Body))
}

func (uc *DispatchUseCase) journalTransition(ctx context.Context, from domain.ZoneKind, result domain.ResolutionResult, dispatched bool) {
	if uc.history == nil {
		return
	}

	transition := domain.Transition{
		FromKind:   string(from),
		ToKind:     string(result.Kind),
		Message:    result.Message,
		Latitude:   result.Coordinate.Lat,
		Longitude:  result.Coordinate.Lon,
		Dispatched: dispatched,
		OccurredAt: time.Now(),
	}

	if err := uc.history.AppendTransition(ctx, transition); err != nil {
		uc.logger.Warn("Failed to journal zone transition", zap.Error(err))
	}
}

func notificationTitle(result domain.ResolutionResult) string {
	switch result.Kind {
	case domain.ZoneSafe:
		return "Safe bathing zone"
	case domain.ZoneSport:
		return "Water sports zone"
	case domain.ZoneDanger:
		return "Danger zone"
	default:
		return "Beach safety"
	}
}
