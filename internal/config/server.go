package config

import (
	"CafeAnalyzer/database/postgres"
	"CafeAnalyzer/database/sqlite"
	analysisHandler "CafeAnalyzer/internal/api/analysis/handler"
	analysisService "CafeAnalyzer/internal/api/analysis/service"
	historyHandler "CafeAnalyzer/internal/api/history/handler"
	historyRepository "CafeAnalyzer/internal/api/history/repository"
	historyService "CafeAnalyzer/internal/api/history/service"
	reportHandler "CafeAnalyzer/internal/api/report/handler"
	reportService "CafeAnalyzer/internal/api/report/service"
	"CafeAnalyzer/internal/middleware"
	"CafeAnalyzer/internal/state"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/locale"
	"CafeAnalyzer/pkg/metrics"
	"CafeAnalyzer/pkg/redis"
	"CafeAnalyzer/pkg/s3"
	"CafeAnalyzer/pkg/utils"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

const healthTimeout = 5 * time.Second

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	config       AppConfig
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	s3Client     s3.ItfS3
	historyStore historyRepository.Store
	cafeAPI      cafeapi.ICafeAPI
	capturer     capture.ICapturer
	hub          websocketPkg.IHub
	metrics      *metrics.Metrics
	state        *state.AppState
	texts        locale.Texts

	historyService historyService.IHistoryService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		state: state.New(),
		texts: locale.Default(),
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.historyStore == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if server.cafeAPI == nil {
		return nil, fmt.Errorf("cafe api client is required")
	}
	if server.capturer == nil {
		return nil, fmt.Errorf("capturer is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New(server.config.MaxUpload)
	}
	if server.hub == nil {
		server.hub = websocketPkg.NewHub(server.log)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithConfig(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		s.config = cfg
		s.texts = locale.For(cfg.Locale)
		return nil
	}
}

// WithHistoryStore opens the key-value backend named by HISTORY_BACKEND.
func WithHistoryStore() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before history store")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		switch s.config.HistoryBackend {
		case BackendRedis:
			s.redisServer = redis.New(s.log, s.config.Redis.Address, s.config.Redis.Password, s.config.Redis.DB)
			s.historyStore = historyRepository.NewRedisStore(s.redisServer)
			return nil
		case BackendPostgres:
			db, err := postgres.New(s.config.Postgres)
			if err != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
				return fmt.Errorf("failed to create database connection: %w", err)
			}
			s.db = db
		case BackendSQLite, "":
			db, err := sqlite.New(s.config.SQLitePath)
			if err != nil {
				s.log.Errorf("Failed to open sqlite database: %v", err)
				return fmt.Errorf("failed to open sqlite database: %w", err)
			}
			s.db = db
		default:
			return fmt.Errorf("unknown history backend %q", s.config.HistoryBackend)
		}

		store, err := historyRepository.NewSQLStore(ctx, s.db, s.log)
		if err != nil {
			return fmt.Errorf("failed to prepare history table: %w", err)
		}
		s.historyStore = store
		return nil
	}
}

func WithStore(store historyRepository.Store) ServerOption {
	return func(s *Server) error {
		s.historyStore = store
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Options{
			RequestsPerSecond: s.config.RateLimitRPS,
			Burst:             s.config.RateLimitBurst,
			JWTSecret:         s.config.JWTSecret,
		})
		return nil
	}
}

// WithS3Client enables report archiving. Without a bucket it is a no-op.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if !s.config.ArchiveEnabled() {
			return nil
		}
		client, err := s3.New(s.config.S3)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithCafeAPI(api cafeapi.ICafeAPI) ServerOption {
	return func(s *Server) error {
		s.cafeAPI = api
		return nil
	}
}

func WithCapturer(capturer capture.ICapturer) ServerOption {
	return func(s *Server) error {
		s.capturer = capturer
		return nil
	}
}

func WithHub(hub websocketPkg.IHub) ServerOption {
	return func(s *Server) error {
		s.hub = hub
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New(s.config.MaxUpload)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	if s.middleware == nil {
		s.middleware = middleware.New(s.log, middleware.Options{})
	}

	// History Domain
	historyRepo := historyRepository.New(s.historyStore, s.log)
	s.historyService = historyService.New(s.log, historyRepo, s.metrics)
	historyHandlers := historyHandler.New(s.log, s.validator, s.middleware, s.historyService, s.state, s.texts)

	// Report Domain
	reportOpts := []reportService.Option{
		reportService.WithNotifications(s.hub),
		reportService.WithMetrics(s.metrics),
	}
	if s.s3Client != nil {
		reportOpts = append(reportOpts, reportService.WithArchive(s.s3Client))
	}
	reportServices := reportService.New(s.log, s.cafeAPI, s.historyService, s.state, s.texts, reportOpts...)
	reportHandlers := reportHandler.New(s.log, s.validator, s.middleware, reportServices)

	// Analysis Domain
	analysisServices := analysisService.New(s.log, s.capturer, s.cafeAPI, s.historyService, s.state, s.texts,
		analysisService.WithNotifications(s.hub),
		analysisService.WithMetrics(s.metrics),
	)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.hub, s.utils)

	s.handlers = append(s.handlers, historyHandlers, reportHandlers, analysisHandlers)
}

// LoadHistory restores the persisted history. Failures leave it empty.
func (s *Server) LoadHistory(ctx context.Context) error {
	if s.historyService == nil {
		return fmt.Errorf("handlers are not registered")
	}
	return s.historyService.Load(ctx)
}

// CheckBackend logs whether the analysis server is reachable.
func (s *Server) CheckBackend(ctx context.Context) (*cafeapi.HealthStatus, error) {
	c, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	status, err := s.cafeAPI.Health(c)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"base_url": s.config.CafeAPIBaseURL,
			"error":    err.Error(),
		}).Warn("Analysis server is not reachable")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"status":        status.Status,
		"models_loaded": status.ModelsLoaded,
	}).Info("Analysis server is reachable")
	return status, nil
}

// Mount wires the middleware and handlers onto the engine without listening.
// Middleware goes first so it also covers the root routes.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	s.setupHealthCheck()
	s.setupMetrics()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	port := s.config.Port
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	s.hub.CloseAll()
	if cerr := s.capturer.Close(); cerr != nil {
		s.log.Warnf("Failed to release capture source: %v", cerr)
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Warnf("Failed to close database: %v", cerr)
		}
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Warnf("Failed to close redis: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		body := fiber.Map{
			"message": "Server is Healthy!",
			"backend": fiber.Map{"reachable": false},
		}

		if status, err := s.CheckBackend(ctx.UserContext()); err == nil {
			body["backend"] = fiber.Map{
				"reachable":     true,
				"status":        status.Status,
				"models_loaded": status.ModelsLoaded,
				"timestamp":     status.Timestamp,
			}
		} else {
			body["backend"] = fiber.Map{
				"reachable": false,
				"error":     err.Error(),
			}
		}

		return ctx.JSON(body)
	})
}

func (s *Server) setupMetrics() {
	if s.metrics == nil {
		return
	}
	s.engine.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
}
