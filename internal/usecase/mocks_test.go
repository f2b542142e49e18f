package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/beach-safety-agent/internal/domain"
)

// MockGatewayRepository is a mock of GatewayRepository
type MockGatewayRepository struct {
	mock.Mock
}

func (m *MockGatewayRepository) FetchBeaches(ctx context.Context, language string) ([]domain.Beach, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beach), args.Error(1)
}

func (m *MockGatewayRepository) FetchAlerts(ctx context.Context, beachID int) ([]domain.Alert, error) {
	args := m.Called(ctx, beachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockGatewayRepository) UpdateLocation(ctx context.Context, deviceID string, coord domain.Coordinate) error {
	args := m.Called(ctx, deviceID, coord)
	return args.Error(0)
}

func (m *MockGatewayRepository) CheckLocation(ctx context.Context, deviceID string, coord domain.Coordinate) (*domain.CheckLocationResult, error) {
	args := m.Called(ctx, deviceID, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckLocationResult), args.Error(1)
}

func (m *MockGatewayRepository) FetchLastLocation(ctx context.Context, deviceID string) (*domain.Coordinate, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

func (m *MockGatewayRepository) FetchSettings(ctx context.Context, deviceID string) (*domain.Settings, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockGatewayRepository) PushSettings(ctx context.Context, deviceID string, settings domain.Settings) error {
	args := m.Called(ctx, deviceID, settings)
	return args.Error(0)
}

func (m *MockGatewayRepository) FetchDailyTip(ctx context.Context, language string) (*domain.Tip, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tip), args.Error(1)
}

func (m *MockGatewayRepository) FetchLatestTip(ctx context.Context) (*domain.Tip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tip), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetBeaches(ctx context.Context, language string) ([]domain.Beach, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beach), args.Error(1)
}

func (m *MockCacheRepository) SetBeaches(ctx context.Context, language string, beaches []domain.Beach, ttl time.Duration) error {
	args := m.Called(ctx, language, beaches, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetAlerts(ctx context.Context, beachID int) ([]domain.Alert, error) {
	args := m.Called(ctx, beachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockCacheRepository) SetAlerts(ctx context.Context, beachID int, alerts []domain.Alert, ttl time.Duration) error {
	args := m.Called(ctx, beachID, alerts, ttl)
	return args.Error(0)
}

// MockSettingsRepository is a mock of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (domain.Settings, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Bool(1), args.Error(2)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) DeviceID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockHistoryRepository is a mock of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) AppendReading(ctx context.Context, reading domain.Reading, seq uint64) error {
	args := m.Called(ctx, reading, seq)
	return args.Error(0)
}

func (m *MockHistoryRepository) AppendTransition(ctx context.Context, transition domain.Transition) error {
	args := m.Called(ctx, transition)
	return args.Error(0)
}

func (m *MockHistoryRepository) LastReading(ctx context.Context) (*domain.Reading, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reading), args.Error(1)
}

func (m *MockHistoryRepository) RecentTransitions(ctx context.Context, limit int) ([]domain.Transition, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transition), args.Error(1)
}

func (m *MockHistoryRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// recordingNotifier накапливает доставленные уведомления; доставка
// асинхронная, поэтому чтение через мьютекс
type recordingNotifier struct {
	mu       sync.Mutex
	err      error
	notified []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, notification)
	return nil
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notified)
}

func (n *recordingNotifier) last() (domain.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notified) == 0 {
		return domain.Notification{}, false
	}
	return n.notified[len(n.notified)-1], true
}

func ptrBool(v bool) *bool { return &v }
func ptrInt(v int) *int { return &v }
