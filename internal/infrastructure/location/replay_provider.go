package location

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
)

// replayTrack - файл трека для отладочных прогонов без живого источника
type replayTrack struct {
	IntervalSeconds int               `json:"interval_seconds"`
	Loop            bool              `json:"loop"`
	Points          []positionMessage `json:"points"`
}

// ReplayProvider воспроизводит заранее записанный трек из JSON-файла
type ReplayProvider struct {
	path   string
	logger *zap.Logger
}

// NewReplayProvider создает провайдер воспроизведения трека
func NewReplayProvider(path string, logger *zap.Logger) repository.LocationProvider {
	return &ReplayProvider{
		path:   path,
		logger: logger,
	}
}

func (p *ReplayProvider) Name() string {
	return "replay"
}

// RequestPermission проверяет, что файл трека читается и валиден
func (p *ReplayProvider) RequestPermission(ctx context.Context) (bool, error) {
	_, err := p.load()
	if err != nil {
		p.logger.Warn("Replay track unavailable", zap.String("path", p.path), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// Subscribe воспроизводит точки трека с заданным интервалом
func (p *ReplayProvider) Subscribe(ctx context.Context) (<-chan domain.Reading, func(), error) {
	track, err := p.load()
	if err != nil {
		return nil, nil, err
	}

	interval := time.Duration(track.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second
	}

	readings := make(chan domain.Reading)
	stop := make(chan struct{})

	go func() {
		defer close(readings)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			if i >= len(track.Points) {
				if !track.Loop {
					p.logger.Info("Replay track finished", zap.String("path", p.path))
					return
				}
				i = 0
			}

			point := track.Points[i]
			i++

			reading := domain.Reading{
				Coordinate: domain.Coordinate{Lat: point.Latitude, Lon: point.Longitude},
				AccuracyM:  point.AccuracyM,
				At:         time.Now(),
			}
			if !reading.Coordinate.Valid() {
				continue
			}

			select {
			case readings <- reading:
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { close(stop) })
	}

	return readings, unsubscribe, nil
}

func (p *ReplayProvider) load() (*replayTrack, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay track: %w", err)
	}

	var track replayTrack
	if err := json.Unmarshal(data, &track); err != nil {
		return nil, fmt.Errorf("failed to parse replay track: %w", err)
	}
	if len(track.Points) == 0 {
		return nil, fmt.Errorf("replay track %s has no points", p.path)
	}

	return &track, nil
}
