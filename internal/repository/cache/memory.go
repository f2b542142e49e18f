package cache

import (
	"context"
	"time"

	"github.com/coocood/freecache"
	"go.uber.org/zap"
)

// Memory - in-process кеш на freecache; дефолтный бэкенд агента
type Memory struct {
	cache  *freecache.Cache
	logger *zap.Logger
}

// NewMemory создает in-memory кеш заданного размера
func NewMemory(sizeMB int, logger *zap.Logger) *Memory {
	sizeBytes := sizeMB * 1024 * 1024

	logger.Info("In-memory cache initialized", zap.Int("size_mb", sizeMB))

	return &Memory{
		cache:  freecache.NewCache(sizeBytes),
		logger: logger,
	}
}

// Get получает значение; отсутствие ключа - nil, nil
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, err := m.cache.Get([]byte(key))
	if err != nil {
		// freecache различает только "не найдено"
		return nil, nil
	}
	return value, nil
}

// Set сохраняет значение с TTL
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return m.cache.Set([]byte(key), value, int(ttl.Seconds()))
}

// Delete удаляет значение
func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Del([]byte(key))
	return nil
}
