package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/game-library-service/internal/app/admins"
	"github.com/preston-bernstein/game-library-service/internal/app/games"
	"github.com/preston-bernstein/game-library-service/internal/cache"
	"github.com/preston-bernstein/game-library-service/internal/config"
	httpserver "github.com/preston-bernstein/game-library-service/internal/http"
	"github.com/preston-bernstein/game-library-service/internal/http/handlers"
	"github.com/preston-bernstein/game-library-service/internal/logging"
	"github.com/preston-bernstein/game-library-service/internal/metrics"
	"github.com/preston-bernstein/game-library-service/internal/store"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         store.Backend
	cache         cache.Cache
	images        *uploads.Images
	gamesService  *games.Service
	adminService  *admins.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New connects the store, bootstraps the admin account and wires the HTTP
// and metrics servers.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}

	backend, err := OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		s.closeResources(ctx)
		return nil, err
	}
	s.store = backend

	images, err := OpenImages(ctx, cfg.Uploads, recorder)
	if err != nil {
		s.closeResources(ctx)
		return nil, err
	}
	s.images = images
	s.cache = OpenCache(ctx, cfg.Cache, logger)

	s.gamesService = games.NewService(backend,
		games.WithCache(s.cache, cfg.Cache.TTL),
		games.WithMetrics(recorder),
		games.WithLogger(logger),
	)
	s.adminService = admins.NewService(backend, cfg.Admin.DefaultPassword, cfg.Admin.BcryptCost, logger)
	if err := s.adminService.Bootstrap(ctx); err != nil {
		s.closeResources(ctx)
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	s.httpServer = buildHTTPServer(cfg, s, logger, recorder)
	logging.Info(logger, "server configured",
		slog.String(logging.FieldStore, storeKind(backend)),
		slog.String("uploads", cfg.Uploads.BucketURL),
	)
	return s, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, backend store.Backend, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		store:      backend,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, s *Server, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(httpserver.Handlers{
		Games:  handlers.NewGamesHandler(s.gamesService, s.images, logger),
		Admin:  handlers.NewAdminHandler(s.adminService, logger),
		Health: handlers.NewHealthHandler(s.store, logger),
		Images: s.images.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.Wrap(router, logger, recorder),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}
	s.closeResources(shutdownCtx)

	logging.Info(s.logger, "shutdown complete")
}

// closeResources releases everything New opened, in reverse order. Nil
// members are skipped so a partially built server can be torn down.
func (s *Server) closeResources(ctx context.Context) {
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(ctx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	type namedCloser struct {
		name string
		c    io.Closer
	}
	var closers []namedCloser
	if s.cache != nil {
		closers = append(closers, namedCloser{"cache", s.cache})
	}
	if s.images != nil {
		closers = append(closers, namedCloser{"uploads", s.images})
	}
	if s.store != nil {
		closers = append(closers, namedCloser{"store", s.store})
	}
	for _, cl := range closers {
		if err := cl.c.Close(); err != nil {
			logging.Warn(s.logger, cl.name+" close failed", logging.FieldError, err)
		}
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := cfg.Metrics.Telemetry()

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

func storeKind(b store.Backend) string {
	if _, ok := b.(*store.MemoryStore); ok {
		return "memory"
	}
	return "database"
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
