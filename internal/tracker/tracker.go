package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/geo"
	"github.com/beach-safety-agent/internal/pkg/metrics"
)

// State - состояние трекера
type State string

const (
	StateUnrequested      State = "unrequested"
	StatePermissionDenied State = "permission_denied"
	StateTracking         State = "tracking"
	StateStopped          State = "stopped"
)

// Config - пороги троттлинга показаний. MaxAccuracyM отбрасывает показания
// с худшей точностью; ноль отключает фильтр.
type Config struct {
	MinDistanceMeters float64
	MinInterval       time.Duration
	MaxAccuracyM      float64
}

// Handler вызывается ровно один раз на каждое принятое показание.
// Резолюцию зон выполняет получатель, не трекер.
type Handler func(ctx context.Context, reading domain.Reading, seq uint64)

// Tracker превращает поток провайдера позиции в троттлённый поток показаний
// с монотонной нумерацией. Подписка освобождается на Stop и при обрыве
// контекста; повторный Stop безопасен.
type Tracker struct {
	provider repository.LocationProvider
	cfg      Config
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu          sync.Mutex
	state       State
	stop        chan struct{}
	unsubscribe func()
	wg          sync.WaitGroup

	seq      uint64
	lastSent *geo.Point
	lastAt   time.Time
}

// New создает трекер поверх провайдера позиции
func New(provider repository.LocationProvider, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Tracker {
	return &Tracker{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		state:    StateUnrequested,
	}
}

// State возвращает текущее состояние трекера
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Provider возвращает имя источника позиции
func (t *Tracker) Provider() string {
	return t.provider.Name()
}

// RequestPermission запрашивает доступ к источнику позиции. Отказ не ошибка:
// агент продолжает работать от последней известной позиции.
func (t *Tracker) RequestPermission(ctx context.Context) bool {
	granted, err := t.provider.RequestPermission(ctx)
	if err != nil {
		t.logger.Error("Permission request failed", zap.Error(err))
		granted = false
	}

	if !granted {
		t.mu.Lock()
		t.state = StatePermissionDenied
		t.mu.Unlock()
		t.logger.Warn("Location permission denied",
			zap.String("provider", t.provider.Name()))
	}

	return granted
}

// Start начинает непрерывный трекинг. Каждое показание, прошедшее троттлинг,
// уходит в handler с номером; троттлённые отбрасываются.
func (t *Tracker) Start(ctx context.Context, handler Handler) error {
	t.mu.Lock()
	if t.state == StateTracking {
		t.mu.Unlock()
		return fmt.Errorf("tracker already running")
	}

	readings, unsubscribe, err := t.provider.Subscribe(ctx)
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("failed to subscribe to location provider: %w", err)
	}

	stop := make(chan struct{})
	t.stop = stop
	t.unsubscribe = unsubscribe
	t.state = StateTracking
	t.seq = 0
	t.lastSent = nil
	t.lastAt = time.Time{}
	t.mu.Unlock()

	t.logger.Info("Location tracking started",
		zap.String("provider", t.provider.Name()),
		zap.Float64("min_distance_m", t.cfg.MinDistanceMeters),
		zap.Duration("min_interval", t.cfg.MinInterval))

	t.wg.Add(1)
	go t.loop(ctx, readings, stop, handler)

	return nil
}

// Stop останавливает трекинг; идемпотентен и не ждёт сетевых вызовов
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.state != StateTracking {
		t.mu.Unlock()
		return
	}

	t.state = StateStopped
	close(t.stop)
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	t.wg.Wait()
	t.logger.Info("Location tracking stopped")
}

func (t *Tracker) loop(ctx context.Context, readings <-chan domain.Reading, stop <-chan struct{}, handler Handler) {
	defer t.wg.Done()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			t.logger.Info("Tracking context cancelled")
			t.mu.Lock()
			if t.state == StateTracking {
				t.state = StateStopped
				if t.unsubscribe != nil {
					t.unsubscribe()
					t.unsubscribe = nil
				}
			}
			t.mu.Unlock()
			return
		case reading, ok := <-readings:
			if !ok {
				t.logger.Warn("Location provider stream closed")
				t.mu.Lock()
				if t.state == StateTracking {
					t.state = StateStopped
				}
				t.mu.Unlock()
				return
			}

			if seq, accepted := t.throttle(reading); accepted {
				handler(ctx, reading, seq)
			}
		}
	}
}

// throttle решает, принимать ли показание: минимальный интервал и
// минимальное смещение (Haversine) от последнего принятого
func (t *Tracker) throttle(reading domain.Reading) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cfg.MaxAccuracyM > 0 && reading.AccuracyM > t.cfg.MaxAccuracyM {
		t.metrics.IncReading("rejected")
		return 0, false
	}

	now := reading.At
	if now.IsZero() {
		now = time.Now()
	}

	if t.lastSent != nil {
		if t.cfg.MinInterval > 0 && now.Sub(t.lastAt) < t.cfg.MinInterval {
			t.metrics.IncReading("throttled")
			return 0, false
		}
		if t.cfg.MinDistanceMeters > 0 {
			dist := geo.Haversine(t.lastSent.Lat, t.lastSent.Lon,
				reading.Coordinate.Lat, reading.Coordinate.Lon)
			if dist < t.cfg.MinDistanceMeters {
				t.metrics.IncReading("throttled")
				return 0, false
			}
		}
	}

	point := reading.Coordinate.Point()
	t.lastSent = &point
	t.lastAt = now
	t.seq++
	t.metrics.IncReading("accepted")

	return t.seq, true
}
