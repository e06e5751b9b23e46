package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taehan09/studio/internal/auth"
	"github.com/taehan09/studio/internal/blob"
	"github.com/taehan09/studio/internal/flows"
	"github.com/taehan09/studio/internal/metrics"
	"github.com/taehan09/studio/internal/repository"
	"github.com/taehan09/studio/internal/storage"
)

// ServerConfig collects the dependencies of the HTTP surface. Flows may be
// nil when no generative API key is configured.
type ServerConfig struct {
	Logger       *slog.Logger
	Repo         *repository.Repository
	Appointments storage.AppointmentStore
	Auth         *auth.Service
	Media        *blob.Store
	Flows        *flows.Service
	DB           Pinger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(cfg ServerConfig) http.Handler {
	mux := chi.NewRouter()

	mux.Use(RequestID)
	mux.Use(Logging(cfg.Logger))
	mux.Use(Recovery(cfg.Logger))
	mux.Use(metrics.Metrics)

	humaAPI := humachi.New(mux, huma.DefaultConfig("Ashgray Ink Studio API", "1.0.0"))
	requireAdmin := adminAuth(humaAPI, cfg.Auth)

	contentHandler := NewContentHandler(cfg.Repo, cfg.Logger)
	appointmentHandler := NewAppointmentHandler(cfg.Appointments, cfg.Flows, cfg.Logger)
	flowHandler := NewFlowHandler(cfg.Flows, cfg.Repo, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Auth, cfg.Logger)
	watchHandler := NewWatchHandler(cfg.Repo, cfg.Logger)
	mediaHandler := NewMediaHandler(cfg.Media, cfg.Logger)
	healthHandler := NewHealthHandler(cfg.DB, cfg.Logger)

	registerContentRoutes(humaAPI, contentHandler, requireAdmin)
	registerAppointmentRoutes(humaAPI, appointmentHandler, requireAdmin)
	registerFlowRoutes(humaAPI, flowHandler)
	registerAuthRoutes(humaAPI, authHandler)

	// Streaming, file, and probe endpoints stay plain chi handlers.
	mux.Get("/v1/content/{section}/watch", watchHandler.Watch)

	mux.Group(func(r chi.Router) {
		r.Use(RequireSession(cfg.Auth))
		r.Post("/v1/admin/media/{section}", mediaHandler.Upload)
		r.Delete("/v1/admin/media", mediaHandler.Delete)
		r.Get("/v1/admin/appointments/export", appointmentHandler.Export)
	})

	mux.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Media.Dir()))))

	mux.Get("/livez", healthHandler.Livez)
	mux.Get("/readyz", healthHandler.Readyz)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
