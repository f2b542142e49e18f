package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	apperrors "github.com/beach-safety-agent/internal/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS readings (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	seq        INTEGER NOT NULL,
	latitude   REAL    NOT NULL,
	longitude  REAL    NOT NULL,
	accuracy_m REAL    NOT NULL DEFAULT 0,
	taken_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transitions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	from_kind   TEXT    NOT NULL,
	to_kind     TEXT    NOT NULL,
	message     TEXT    NOT NULL,
	latitude    REAL    NOT NULL,
	longitude   REAL    NOT NULL,
	dispatched  INTEGER NOT NULL DEFAULT 0,
	occurred_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_readings_taken_at ON readings (taken_at DESC);
CREATE INDEX IF NOT EXISTS idx_transitions_occurred_at ON transitions (occurred_at DESC);
`

// readingRow - строка журнала показаний
type readingRow struct {
	Seq       uint64    `db:"seq"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	AccuracyM float64   `db:"accuracy_m"`
	TakenAt   time.Time `db:"taken_at"`
}

// HistoryRepository - журнал показаний и смен зон во встроенном sqlite
type HistoryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewHistoryRepository открывает журнал и применяет схему
func NewHistoryRepository(path string, logger *zap.Logger) (*HistoryRepository, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db %s: %w", path, err)
	}

	// один writer: агент пишет из горутины трекера
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}

	logger.Info("History journal opened", zap.String("path", path))

	return &HistoryRepository{
		db:     db,
		logger: logger,
	}, nil
}

var _ repository.HistoryRepository = (*HistoryRepository)(nil)

// AppendReading журналирует принятое показание трекера
func (r *HistoryRepository) AppendReading(ctx context.Context, reading domain.Reading, seq uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO readings (seq, latitude, longitude, accuracy_m, taken_at)
		 VALUES (?, ?, ?, ?, ?)`,
		seq, reading.Coordinate.Lat, reading.Coordinate.Lon, reading.AccuracyM, reading.At,
	)
	if err != nil {
		r.logger.Error("Failed to journal reading", zap.Error(err))
		return apperrors.ErrHistoryStore
	}
	return nil
}

// AppendTransition журналирует смену вида зоны
func (r *HistoryRepository) AppendTransition(ctx context.Context, t domain.Transition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transitions (from_kind, to_kind, message, latitude, longitude, dispatched, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.FromKind, t.ToKind, t.Message, t.Latitude, t.Longitude, t.Dispatched, t.OccurredAt,
	)
	if err != nil {
		r.logger.Error("Failed to journal transition", zap.Error(err))
		return apperrors.ErrHistoryStore
	}
	return nil
}

// LastReading возвращает последнее журналированное показание
func (r *HistoryRepository) LastReading(ctx context.Context) (*domain.Reading, error) {
	var row readingRow
	err := r.db.GetContext(ctx, &row,
		`SELECT seq, latitude, longitude, accuracy_m, taken_at
		 FROM readings ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrLocationNotFound
	}
	if err != nil {
		return nil, apperrors.ErrHistoryStore
	}

	return &domain.Reading{
		Coordinate: domain.Coordinate{Lat: row.Latitude, Lon: row.Longitude},
		AccuracyM:  row.AccuracyM,
		At:         row.TakenAt,
	}, nil
}

// RecentTransitions возвращает последние смены зон, новые первыми
func (r *HistoryRepository) RecentTransitions(ctx context.Context, limit int) ([]domain.Transition, error) {
	if limit <= 0 {
		limit = 20
	}

	transitions := []domain.Transition{}
	err := r.db.SelectContext(ctx, &transitions,
		`SELECT id, from_kind, to_kind, message, latitude, longitude, dispatched, occurred_at
		 FROM transitions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.ErrHistoryStore
	}

	return transitions, nil
}

// Close закрывает журнал
func (r *HistoryRepository) Close() error {
	return r.db.Close()
}
