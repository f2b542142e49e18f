package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/pkg/errors"
)

const (
	settingsFile = "settings.json"
	deviceIDFile = "device_id"
)

// SettingsRepository хранит настройки и идентификатор устройства в файлах
// под DataDir. Запись атомарная: temp-файл + rename.
type SettingsRepository struct {
	dir    string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSettingsRepository создает файловое хранилище настроек
func NewSettingsRepository(dir string, logger *zap.Logger) (*SettingsRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}

	return &SettingsRepository{
		dir:    dir,
		logger: logger,
	}, nil
}

var _ repository.SettingsRepository = (*SettingsRepository)(nil)

// Load читает настройки; отсутствующий или битый blob даёт дефолты
func (r *SettingsRepository) Load(_ context.Context) (domain.Settings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(r.dir, settingsFile))
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("Failed to read settings, using defaults", zap.Error(err))
		}
		return domain.DefaultSettings(), false, nil
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		r.logger.Warn("Corrupt settings blob, using defaults", zap.Error(err))
		return domain.DefaultSettings(), false, nil
	}
	if settings.Version == 0 {
		settings.Version = 1
	}

	return settings, true, nil
}

// Save атомарно перезаписывает настройки
func (r *SettingsRepository) Save(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return errors.ErrSettingsStore
	}

	if err := r.writeAtomic(settingsFile, data); err != nil {
		r.logger.Error("Failed to persist settings", zap.Error(err))
		return errors.ErrSettingsStore
	}

	return nil
}

// DeviceID возвращает стабильный идентификатор установки. Генерируется один
// раз (uuid) и персистится; при недоступном диске отдаётся эфемерный id.
func (r *SettingsRepository) DeviceID(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, deviceIDFile)

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	id := uuid.NewString()
	if err := r.writeAtomic(deviceIDFile, []byte(id+"\n")); err != nil {
		r.logger.Warn("Failed to persist device id, using ephemeral", zap.Error(err))
	}

	return id, nil
}

func (r *SettingsRepository) writeAtomic(name string, data []byte) error {
	target := filepath.Join(r.dir, name)

	tmp, err := os.CreateTemp(r.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, target)
}
