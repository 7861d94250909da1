package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/SelectorHeal/internal/api/http"
	"github.com/GriffinCanCode/SelectorHeal/internal/api/middleware"
	"github.com/GriffinCanCode/SelectorHeal/internal/domain/mapping"
	"github.com/GriffinCanCode/SelectorHeal/internal/domain/selector"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/config"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	handler http.Handler
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	pool    *pgxpool.Pool
}

// NewServer creates a new server instance. The mapping store is optional:
// when it is not configured or cannot be reached, /api/mappings answers 503.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.ConfigFor(cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing selector healer",
		zap.String("port", cfg.Server.Port),
		zap.Bool("mappings", cfg.Database.Enabled()),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("selector-healer", logger.Logger)

	s := &Server{
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}

	var lookup apihttp.MappingLookup
	if cfg.Database.Enabled() {
		svc, err := s.connectMappings(ctx)
		if err != nil {
			logger.Warn("Mapping store unavailable", zap.Error(err))
		} else {
			lookup = svc
		}
	}

	analyzer := selector.NewAnalyzer(logger.Logger, selector.WithObserver(metrics))
	handlers := apihttp.NewHandlers(analyzer, lookup, metrics, logger.Logger, cfg.Analysis.MaxHTMLBytes)
	s.router = newRouter(cfg, logger.Logger, metrics, tracer, handlers)
	s.handler = gzhttp.GzipHandler(s.router)

	logger.Info("Server initialized successfully")
	return s, nil
}

// connectMappings opens the pool, prepares the table and loads the seed file.
func (s *Server) connectMappings(ctx context.Context) (*mapping.Service, error) {
	db := s.config.Database

	pool, err := pgxpool.New(ctx, db.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	store, err := mapping.NewStore(ctx, pool, s.logger.Logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	s.pool = pool
	s.logger.Info("Connected to mapping store")

	if db.SeedFile != "" {
		if _, err := mapping.NewSeeder(store, s.logger.Logger).Seed(ctx, db.SeedFile); err != nil {
			s.logger.Warn("Failed to seed selector mappings", zap.Error(err))
		}
	}

	return mapping.NewService(store, mapping.ServiceConfig{
		QueryTimeout:     db.QueryTimeout,
		BreakerFailures:  db.BreakerFailures,
		BreakerOpenDelay: db.BreakerOpenDelay,
	}, s.metrics, s.logger.Logger), nil
}

func newRouter(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *monitoring.Metrics,
	tracer *tracing.Tracer,
	handlers *apihttp.Handlers,
) *gin.Engine {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(logging.AccessLog(logger, func(c *gin.Context) []zap.Field {
		return tracing.Fields(c.Request.Context())
	}))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	api := router.Group("/api")
	api.POST("/analyze", handlers.Analyze)
	api.GET("/mappings", handlers.ListMappings)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}

// Handler returns the compressed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the database pool and flushes spans and logs.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("Closed mapping store connection")
	}
	s.tracer.Close()

	// stdout sync fails on some terminals
	_ = s.logger.Sync()

	return nil
}
