package repository

import (
	"context"

	"github.com/beach-safety-agent/internal/domain"
)

// HistoryRepository - локальный журнал показаний и смен зон
type HistoryRepository interface {
	// AppendReading журналирует принятое показание трекера
	AppendReading(ctx context.Context, reading domain.Reading, seq uint64) error

	// AppendTransition журналирует смену вида зоны
	AppendTransition(ctx context.Context, transition domain.Transition) error

	// LastReading возвращает последнее журналированное показание;
	// LOCATION_NOT_FOUND если журнал пуст
	LastReading(ctx context.Context) (*domain.Reading, error)

	// RecentTransitions возвращает последние смены зон, новые первыми
	RecentTransitions(ctx context.Context, limit int) ([]domain.Transition, error)

	// Close закрывает журнал
	Close() error
}
