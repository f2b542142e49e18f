package http

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/config"
	"github.com/beach-safety-agent/internal/delivery/http/handler"
	"github.com/beach-safety-agent/internal/delivery/http/middleware"
	"github.com/beach-safety-agent/internal/pkg/errors"
	"github.com/beach-safety-agent/internal/pkg/metrics"
)

// Server - локальный HTTP API агента на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	statusHandler   *handler.StatusHandler
	settingsHandler *handler.SettingsHandler
	tipsHandler     *handler.TipsHandler
	metrics         *metrics.Metrics
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	statusHandler *handler.StatusHandler,
	settingsHandler *handler.SettingsHandler,
	tipsHandler *handler.TipsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Beach Safety Agent",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		statusHandler:   statusHandler,
		settingsHandler: settingsHandler,
		tipsHandler:     tipsHandler,
		metrics:         m,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Status routes
	api.Get("/status", s.statusHandler.GetStatus)
	api.Get("/zone/current", s.statusHandler.GetCurrentZone)
	api.Post("/resolve", s.statusHandler.Resolve)
	api.Post("/language", s.statusHandler.SetLanguage)

	// Settings routes
	api.Get("/settings", s.settingsHandler.GetSettings)
	api.Patch("/settings", s.settingsHandler.UpdateSettings)

	// Tips routes
	api.Get("/tips/daily", s.tipsHandler.GetDailyTip)
}

// Start запускает сервер
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting local API", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown останавливает сервер с дедлайном
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(5 * time.Second)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := err.(*errors.AppError); ok {
			return c.Status(appErr.StatusCode).JSON(fiber.Map{"error": appErr})
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{"code": "HTTP_ERROR", "message": fiberErr.Message},
			})
		}

		logger.Error("Unhandled error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errors.ErrInternalServer,
		})
	}
}
