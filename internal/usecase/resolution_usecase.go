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

// ResolutionUseCase - сервис резолюции зоны: по координате выдаёт
// ResolutionResult либо локальной проверкой полигонов, либо удалённым
// check-location. Оба режима дают одинаковую форму результата, диспетчер
// о режиме не знает.
type ResolutionUseCase struct {
	gateway  repository.GatewayRepository
	cache    repository.CacheRepository
	logger   *zap.Logger
	metrics  *metrics.Metrics
	alertTTL time.Duration
	beachTTL time.Duration

	mu           sync.RWMutex
	language     string
	beaches      []domain.Beach
	currentBeach *int
}

// NewResolutionUseCase создает новый ResolutionUseCase
func NewResolutionUseCase(
	gateway repository.GatewayRepository,
	cache repository.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	language string,
	beachTTL, alertTTL time.Duration,
) *ResolutionUseCase {
	return &ResolutionUseCase{
		gateway:  gateway,
		cache:    cache,
		logger:   logger,
		metrics:  m,
		language: language,
		beachTTL: beachTTL,
		alertTTL: alertTTL,
	}
}

// LoadBeaches загружает пляжи в сессионный кеш: сперва из кеша ответов,
// затем с бэкенда. Ошибка не фатальна - сервис остаётся с пустым набором
// и резолюция отвечает "зоны рядом нет".
func (uc *ResolutionUseCase) LoadBeaches(ctx context.Context) error {
	uc.mu.RLock()
	language := uc.language
	uc.mu.RUnlock()

	if cached, err := uc.cache.GetBeaches(ctx, language); err == nil && cached != nil {
		uc.setBeaches(cached)
		uc.logger.Info("Beaches loaded from cache",
			zap.String("language", language),
			zap.Int("count", len(cached)))
		return nil
	}

	beaches, err := uc.gateway.FetchBeaches(ctx, language)
	if err != nil {
		uc.logger.Error("Failed to fetch beaches, zone set stays empty", zap.Error(err))
		return err
	}

	uc.setBeaches(beaches)

	if err := uc.cache.SetBeaches(ctx, language, beaches, uc.beachTTL); err != nil {
		uc.logger.Warn("Failed to cache beaches", zap.Error(err))
	}

	uc.logger.Info("Beaches loaded",
		zap.String("language", language),
		zap.Int("count", len(beaches)))

	return nil
}

// SetLanguage переключает язык: сбрасывает сессионный кеш и перечитывает пляжи
func (uc *ResolutionUseCase) SetLanguage(ctx context.Context, language string) error {
	uc.mu.Lock()
	uc.language = language
	uc.beaches = nil
	uc.currentBeach = nil
	uc.mu.Unlock()

	return uc.LoadBeaches(ctx)
}

// Resolve выполняет локальную резолюцию: точка против всех кешированных зон.
// Никогда не возвращает ошибку - любой сбой деградирует в NoZoneResult.
func (uc *ResolutionUseCase) Resolve(ctx context.Context, coord domain.Coordinate) domain.ResolutionResult {
	if !coord.Valid() {
		uc.logger.Warn("Resolve called with invalid coordinate",
			zap.Stringer("coordinate", coord))
		return uc.noZone(coord, domain.ResolutionModeLocal)
	}

	uc.mu.RLock()
	beaches := uc.beaches
	uc.mu.RUnlock()

	type match struct {
		beach *domain.Beach
		zone  *domain.Zone
	}

	// при пересечении зон побеждает более строгая классификация;
	// внутри равной строгости - порядок загрузки
	var best *match
	for bi := range beaches {
		beach := &beaches[bi]
		for zi := range beach.Zones {
			zone := &beach.Zones[zi]
			if !zone.Contains(coord) {
				continue
			}
			if best == nil || zone.Kind.Severity() > best.zone.Kind.Severity() {
				best = &match{beach: beach, zone: zone}
			}
		}
	}

	if best == nil {
		return uc.noZone(coord, domain.ResolutionModeLocal)
	}

	uc.setCurrentBeach(best.beach.ID)

	message := uc.resolveMessage(ctx, best.beach.ID, best.zone.ID, best.zone.Kind)

	uc.metrics.IncResolution(string(best.zone.Kind), domain.ResolutionModeLocal)

	zoneID := best.zone.ID
	beachID := best.beach.ID
	return domain.ResolutionResult{
		Inside:     true,
		Kind:       best.zone.Kind,
		ZoneID:     &zoneID,
		BeachID:    &beachID,
		BeachName:  best.beach.Name,
		Message:    message,
		Mode:       domain.ResolutionModeLocal,
		Coordinate: coord,
		ResolvedAt: time.Now(),
	}
}

// ResolveRemote делегирует проверку бэкенду; форма результата та же.
// Сетевые сбои деградируют в NoZoneResult, не в ошибку.
func (uc *ResolutionUseCase) ResolveRemote(ctx context.Context, deviceID string, coord domain.Coordinate) domain.ResolutionResult {
	if !coord.Valid() {
		return uc.noZone(coord, domain.ResolutionModeRemote)
	}

	check, err := uc.gateway.CheckLocation(ctx, deviceID, coord)
	if err != nil {
		uc.logger.Warn("Remote check-location failed", zap.Error(err))
		return uc.noZone(coord, domain.ResolutionModeRemote)
	}

	if !check.Inside || check.BeachID == nil {
		return uc.noZone(coord, domain.ResolutionModeRemote)
	}

	kind := domain.MapZoneType(check.ZoneType)
	uc.setCurrentBeach(*check.BeachID)

	message := domain.DefaultMessage(kind)
	if check.ZoneID != nil {
		message = uc.resolveMessage(ctx, *check.BeachID, *check.ZoneID, kind)
	}

	uc.metrics.IncResolution(string(kind), domain.ResolutionModeRemote)

	return domain.ResolutionResult{
		Inside:     true,
		Kind:       kind,
		ZoneID:     check.ZoneID,
		BeachID:    check.BeachID,
		BeachName:  check.BeachName,
		Message:    message,
		Mode:       domain.ResolutionModeRemote,
		Coordinate: coord,
		ResolvedAt: time.Now(),
	}
}

// RefreshAlerts перечитывает алерты пляжа в кеш; вызывается воркером
// по интервалу и резолюцией при первом входе на пляж
func (uc *ResolutionUseCase) RefreshAlerts(ctx context.Context, beachID int) error {
	alerts, err := uc.gateway.FetchAlerts(ctx, beachID)
	if err != nil {
		return err
	}

	if err := uc.cache.SetAlerts(ctx, beachID, alerts, uc.alertTTL); err != nil {
		uc.logger.Warn("Failed to cache alerts", zap.Int("beach_id", beachID), zap.Error(err))
	}

	uc.logger.Debug("Alerts refreshed",
		zap.Int("beach_id", beachID),
		zap.Int("count", len(alerts)))

	return nil
}

// CurrentBeach возвращает пляж, внутри которого была последняя резолюция
func (uc *ResolutionUseCase) CurrentBeach() (int, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.currentBeach == nil {
		return 0, false
	}
	return *uc.currentBeach, true
}

// resolveMessage подбирает сообщение: алерт с совпавшими zoneId и
// нормализованным типом, иначе дефолт по виду зоны
func (uc *ResolutionUseCase) resolveMessage(ctx context.Context, beachID, zoneID int, kind domain.ZoneKind) string {
	alerts, err := uc.cache.GetAlerts(ctx, beachID)
	if err != nil || alerts == nil {
		fetched, ferr := uc.gateway.FetchAlerts(ctx, beachID)
		if ferr != nil {
			uc.logger.Warn("Failed to fetch alerts, falling back to default message",
				zap.Int("beach_id", beachID),
				zap.Error(ferr))
			return domain.DefaultMessage(kind)
		}
		alerts = fetched
		if cerr := uc.cache.SetAlerts(ctx, beachID, alerts, uc.alertTTL); cerr != nil {
			uc.logger.Warn("Failed to cache alerts", zap.Error(cerr))
		}
	}

	zone := domain.Zone{ID: zoneID, Kind: kind}
	for i := range alerts {
		if alerts[i].MatchesZone(&zone) {
			return alerts[i].Message
		}
	}

	return domain.DefaultMessage(kind)
}

func (uc *ResolutionUseCase) noZone(coord domain.Coordinate, mode string) domain.ResolutionResult {
	uc.metrics.IncResolution(string(domain.ZoneUnknown), mode)
	return domain.NoZoneResult(coord, mode)
}

func (uc *ResolutionUseCase) setBeaches(beaches []domain.Beach) {
	uc.mu.Lock()
	uc.beaches = beaches
	uc.mu.Unlock()
}

func (uc *ResolutionUseCase) setCurrentBeach(id int) {
	uc.mu.Lock()
	if uc.currentBeach == nil || *uc.currentBeach != id {
		uc.currentBeach = &id
	}
	uc.mu.Unlock()
}
