package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/game-library-service/internal/http/handlers"
	"github.com/preston-bernstein/game-library-service/internal/http/middleware"
	"github.com/preston-bernstein/game-library-service/internal/metrics"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

// Handlers groups the endpoint handlers mounted by NewRouter. Images may be
// nil when uploads are not served by this process.
type Handlers struct {
	Games  *handlers.GamesHandler
	Admin  *handlers.AdminHandler
	Health *handlers.HealthHandler
	Images nethttp.Handler
}

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(h Handlers) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	mux.HandleFunc("POST /api/admin/login", h.Admin.Login)

	mux.HandleFunc("GET /api/games", h.Games.List)
	mux.HandleFunc("GET /api/games/featured", h.Games.Featured)
	mux.HandleFunc("GET /api/games/{id}", h.Games.Get)
	mux.HandleFunc("POST /api/games", h.Games.Create)
	mux.HandleFunc("PUT /api/games/{id}", h.Games.Update)
	mux.HandleFunc("DELETE /api/games/{id}", h.Games.Delete)

	if h.Images != nil {
		mux.Handle("GET "+uploads.PublicPrefix, h.Images)
	}
	return mux
}

// Wrap applies request logging, metrics and panic recovery around router.
func Wrap(router nethttp.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	return middleware.LoggingMiddleware(logger, recorder, middleware.Recover(logger, router))
}
