package main

// @title Beach Safety Agent API
// @version 1.0.0
// @description Локальный API агента пляжной безопасности. Агент следит за
// @description позицией устройства, определяет текущую зону пляжа по полигонам,
// @description дедуплицирует алерты и рассылает уведомления в настроенные каналы.

// @host localhost:8787
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/beach-safety-agent/docs"
	"github.com/beach-safety-agent/internal/config"
	httpDelivery "github.com/beach-safety-agent/internal/delivery/http"
	"github.com/beach-safety-agent/internal/delivery/http/handler"
	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/domain/repository"
	"github.com/beach-safety-agent/internal/infrastructure/gateway"
	"github.com/beach-safety-agent/internal/infrastructure/location"
	"github.com/beach-safety-agent/internal/infrastructure/mqtt"
	"github.com/beach-safety-agent/internal/notify"
	"github.com/beach-safety-agent/internal/pkg/logger"
	"github.com/beach-safety-agent/internal/pkg/metrics"
	"github.com/beach-safety-agent/internal/repository/cache"
	"github.com/beach-safety-agent/internal/repository/file"
	"github.com/beach-safety-agent/internal/repository/sqlite"
	"github.com/beach-safety-agent/internal/tracker"
	"github.com/beach-safety-agent/internal/usecase"
	"github.com/beach-safety-agent/internal/worker"
	alertsWorker "github.com/beach-safety-agent/internal/worker/alerts"
	locationWorker "github.com/beach-safety-agent/internal/worker/location"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Beach Safety Agent")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("gateway", cfg.Gateway.BaseURL),
		zap.String("provider", cfg.Tracker.Provider),
		zap.String("resolution_mode", cfg.Tracker.ResolutionMode),
	)

	m := metrics.New()

	// 3. Initialize cache backend
	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		store = redisClient
	} else {
		store = cache.NewMemory(cfg.Cache.MemorySizeMB, log)
	}
	cacheRepo := cache.NewCacheRepository(store)

	// 4. Initialize local storage
	settingsRepo, err := file.NewSettingsRepository(cfg.Storage.DataDir, log)
	if err != nil {
		log.Fatal("Failed to initialize settings store", zap.Error(err))
	}

	historyRepo, err := sqlite.NewHistoryRepository(filepath.Join(cfg.Storage.DataDir, "history.db"), log)
	if err != nil {
		log.Fatal("Failed to open history journal", zap.Error(err))
	}
	defer func() {
		if err := historyRepo.Close(); err != nil {
			log.Error("Failed to close history journal", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deviceID, err := settingsRepo.DeviceID(ctx)
	if err != nil {
		log.Fatal("Failed to resolve device id", zap.Error(err))
	}
	log.Info("Device identity resolved", zap.String("device_id", deviceID))

	// 5. Initialize gateway client
	gatewayClient := gateway.NewClient(&cfg.Gateway, m, log)

	// 6. Initialize MQTT (position source and alert channel)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.NewClient(&cfg.MQTT, log)
		if err != nil {
			log.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		defer mqttClient.Close()
	}

	// 7. Initialize use cases
	settingsUC, err := usecase.NewSettingsUseCase(ctx, settingsRepo, gatewayClient, deviceID, log)
	if err != nil {
		log.Fatal("Failed to initialize settings", zap.Error(err))
	}

	resolutionUC := usecase.NewResolutionUseCase(
		gatewayClient,
		cacheRepo,
		m,
		log,
		cfg.Gateway.Language,
		cfg.Cache.BeachTTL,
		cfg.Cache.AlertTTL,
	)

	notifiers := []repository.Notifier{notify.NewLogNotifier(log)}
	if mqttClient != nil {
		notifiers = append(notifiers, notify.NewMQTTNotifier(mqttClient, cfg.MQTT.AlertTopic, log))
	}

	dispatchUC := usecase.NewDispatchUseCase(settingsUC, historyRepo, notifiers, m, log)
	tipsUC := usecase.NewTipsUseCase(gatewayClient, cacheRepo, settingsUC, log)

	// 8. Load beaches; failure is not fatal - resolution degrades to "no zone"
	if err := resolutionUC.LoadBeaches(ctx); err != nil {
		log.Warn("Initial beach fetch failed, will serve cached/no-zone results", zap.Error(err))
	}

	// 9. Initialize location provider and tracker
	provider := buildProvider(cfg, mqttClient, log)

	trk := tracker.New(provider, tracker.Config{
		MinDistanceMeters: cfg.Tracker.MinDistanceMeters,
		MinInterval:       cfg.Tracker.MinInterval,
		MaxAccuracyM:      cfg.Tracker.MaxAccuracyM,
	}, m, log)

	// 10. Initialize workers
	reportWorker := locationWorker.NewReportWorker(gatewayClient, deviceID, cfg.Alerts.ReportInterval, log)
	refreshWorker := alertsWorker.NewRefreshWorker(resolutionUC, cfg.Alerts.RefreshInterval, log)

	manager := worker.NewManager(log)
	manager.Register(reportWorker)
	manager.Register(refreshWorker)

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 11. Start tracking
	if granted := trk.RequestPermission(ctx); granted {
		dispatchUC.Reset()

		handlerFn := func(ctx context.Context, reading domain.Reading, seq uint64) {
			var result domain.ResolutionResult
			if cfg.Tracker.ResolutionMode == domain.ResolutionModeRemote {
				result = resolutionUC.ResolveRemote(ctx, deviceID, reading.Coordinate)
			} else {
				result = resolutionUC.Resolve(ctx, reading.Coordinate)
			}

			dispatchUC.Handle(ctx, result, seq)

			if err := historyRepo.AppendReading(ctx, reading, seq); err != nil {
				log.Warn("Failed to journal reading", zap.Error(err))
			}

			reportWorker.Offer(reading)
		}

		if err := trk.Start(ctx, handlerFn); err != nil {
			log.Fatal("Failed to start location tracking", zap.Error(err))
		}
	} else {
		// отказ не фатален: агент отвечает по последней известной позиции
		reportFallbackLocation(ctx, gatewayClient, historyRepo, deviceID, log)
	}

	// 12. Initialize HTTP server
	statusHandler := handler.NewStatusHandler(resolutionUC, dispatchUC, historyRepo, trk, deviceID, log)
	settingsHandler := handler.NewSettingsHandler(settingsUC, log)
	tipsHandler := handler.NewTipsHandler(tipsUC, cfg.Gateway.Language, log)

	server := httpDelivery.NewServer(cfg, log, m, statusHandler, settingsHandler, tipsHandler)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// 13. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("Local API stopped unexpectedly", zap.Error(err))
	}

	// 14. Graceful shutdown: tracking first, then workers, then API
	trk.Stop()
	cancel()

	if err := manager.Stop(); err != nil {
		log.Warn("Worker shutdown incomplete", zap.Error(err))
	}

	if err := server.Shutdown(); err != nil {
		log.Error("Failed to shutdown local API", zap.Error(err))
	}

	log.Info("Beach Safety Agent stopped")
}

// buildProvider выбирает источник позиции по конфигурации
func buildProvider(cfg *config.Config, mqttClient *mqtt.Client, log *zap.Logger) repository.LocationProvider {
	switch cfg.Tracker.Provider {
	case "replay":
		return location.NewReplayProvider(cfg.Tracker.ReplayPath, log)
	default:
		if mqttClient == nil {
			log.Fatal("MQTT provider requires MQTT_ENABLED=true")
		}
		return location.NewMQTTProvider(mqttClient, cfg.MQTT.LocationTopic, log)
	}
}

// reportFallbackLocation достаёт последнюю известную позицию: сперва с
// бэкенда, затем из локального журнала
func reportFallbackLocation(
	ctx context.Context,
	gw repository.GatewayRepository,
	history repository.HistoryRepository,
	deviceID string,
	log *zap.Logger,
) {
	if coord, err := gw.FetchLastLocation(ctx, deviceID); err == nil {
		log.Info("Using server-cached location",
			zap.Float64("latitude", coord.Lat),
			zap.Float64("longitude", coord.Lon))
		return
	}

	if reading, err := history.LastReading(ctx); err == nil {
		log.Info("Using journaled location",
			zap.Float64("latitude", reading.Coordinate.Lat),
			zap.Float64("longitude", reading.Coordinate.Lon))
		return
	}

	log.Warn("No cached location available, zone resolution idle until permission granted")
}
