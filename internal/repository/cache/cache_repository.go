package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/errors"
)

// Ключи кеша ответов бэкенда
const (
	keyBeaches = "beaches:%s" // language
	keyAlerts  = "alerts:%d"  // beach id
)

// Store - байтовый кеш, поверх которого работают типизированные методы;
// реализуется Memory и Redis
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheRepository struct {
	store Store
}

// NewCacheRepository создает CacheRepository поверх байтового хранилища
func NewCacheRepository(store Store) repository.CacheRepository {
	return &cacheRepository{store: store}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return r.store.Get(ctx, key)
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.store.Set(ctx, key, value, ttl)
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	return r.store.Delete(ctx, key)
}

// GetBeaches получает кешированный список пляжей для языка
func (r *cacheRepository) GetBeaches(ctx context.Context, language string) ([]domain.Beach, error) {
	data, err := r.store.Get(ctx, fmt.Sprintf(keyBeaches, language))
	if err != nil || data == nil {
		return nil, err
	}

	var beaches []domain.Beach
	if err := json.Unmarshal(data, &beaches); err != nil {
		return nil, errors.ErrCacheError
	}
	return beaches, nil
}

// SetBeaches сохраняет список пляжей для языка
func (r *cacheRepository) SetBeaches(ctx context.Context, language string, beaches []domain.Beach, ttl time.Duration) error {
	data, err := json.Marshal(beaches)
	if err != nil {
		return errors.ErrCacheError
	}
	return r.store.Set(ctx, fmt.Sprintf(keyBeaches, language), data, ttl)
}

// GetAlerts получает кешированные алерты пляжа
func (r *cacheRepository) GetAlerts(ctx context.Context, beachID int) ([]domain.Alert, error) {
	data, err := r.store.Get(ctx, fmt.Sprintf(keyAlerts, beachID))
	if err != nil || data == nil {
		return nil, err
	}

	var alerts []domain.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, errors.ErrCacheError
	}
	return alerts, nil
}

// SetAlerts сохраняет алерты пляжа
func (r *cacheRepository) SetAlerts(ctx context.Context, beachID int, alerts []domain.Alert, ttl time.Duration) error {
	data, err := json.Marshal(alerts)
	if err != nil {
		return errors.ErrCacheError
	}
	return r.store.Set(ctx, fmt.Sprintf(keyAlerts, beachID), data, ttl)
}
