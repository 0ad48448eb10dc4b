package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robuddie/robuddie/internal/config"
	"github.com/robuddie/robuddie/internal/store"
	"github.com/robuddie/robuddie/internal/transport/http/handler"
)

// Deps holds the dependencies for the ops router.
type Deps struct {
	Sessions store.SessionStore
	Guilds   store.GuildStore
	// GatewayLatency reports the Discord heartbeat round-trip.
	GatewayLatency func() time.Duration
}

// NewRouter builds the ops HTTP router. Hosting platforms probe these
// endpoints; they carry no verification data beyond aggregate counts.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	healthH := handler.NewHealthHandler()
	statusH := handler.NewStatusHandler(deps.Sessions, deps.Guilds, deps.GatewayLatency)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Get("/status", statusH.Get)
	})

	return r
}
