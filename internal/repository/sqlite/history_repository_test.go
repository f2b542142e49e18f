package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	apperrors "github.com/beach-safety-agent/internal/pkg/errors"
)

func newTestRepository(t *testing.T) *HistoryRepository {
	t.Helper()

	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testReading(lat, lon float64) domain.Reading {
	return domain.Reading{
		Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
		AccuracyM:  8.5,
		At:         time.Now().UTC().Truncate(time.Second),
	}
}

func TestHistoryRepository_Readings(t *testing.T) {
	ctx := context.Background()

	t.Run("empty journal", func(t *testing.T) {
		repo := newTestRepository(t)

		_, err := repo.LastReading(ctx)
		assert.ErrorIs(t, err, apperrors.ErrLocationNotFound)
	})

	t.Run("last reading is the most recent append", func(t *testing.T) {
		repo := newTestRepository(t)

		require.NoError(t, repo.AppendReading(ctx, testReading(32.2996, -9.2371), 1))
		require.NoError(t, repo.AppendReading(ctx, testReading(32.3100, -9.2400), 2))

		last, err := repo.LastReading(ctx)
		require.NoError(t, err)
		assert.Equal(t, 32.3100, last.Coordinate.Lat)
		assert.Equal(t, -9.2400, last.Coordinate.Lon)
		assert.Equal(t, 8.5, last.AccuracyM)
	})
}

func TestHistoryRepository_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty journal gives empty slice", func(t *testing.T) {
		repo := newTestRepository(t)

		transitions, err := repo.RecentTransitions(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, transitions)
	})

	t.Run("recent transitions newest first", func(t *testing.T) {
		repo := newTestRepository(t)

		base := time.Now().UTC().Truncate(time.Second)
		for i, kinds := range [][2]domain.ZoneKind{
			{domain.ZoneUnknown, domain.ZoneSafe},
			{domain.ZoneSafe, domain.ZoneSport},
			{domain.ZoneSport, domain.ZoneDanger},
		} {
			require.NoError(t, repo.AppendTransition(ctx, domain.Transition{
				FromKind:   string(kinds[0]),
				ToKind:     string(kinds[1]),
				Message:    "msg",
				Latitude:   32.2996,
				Longitude:  -9.2371,
				Dispatched: true,
				OccurredAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}

		transitions, err := repo.RecentTransitions(ctx, 2)
		require.NoError(t, err)
		require.Len(t, transitions, 2)

		assert.Equal(t, string(domain.ZoneDanger), transitions[0].ToKind)
		assert.Equal(t, string(domain.ZoneSport), transitions[1].ToKind)
		assert.True(t, transitions[0].Dispatched)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		repo := newTestRepository(t)

		require.NoError(t, repo.AppendTransition(ctx, domain.Transition{
			FromKind:   string(domain.ZoneUnknown),
			ToKind:     string(domain.ZoneSafe),
			Message:    "msg",
			OccurredAt: time.Now().UTC(),
		}))

		transitions, err := repo.RecentTransitions(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, transitions, 1)
	})
}
