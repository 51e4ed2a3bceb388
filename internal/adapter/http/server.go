// Package http serves the portal page, its form actions, the JSON API and the
// operational endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
	"github.com/couchcryptid/sikkim-flood-portal/internal/portal"
)

const (
	maxJSONBody     = 64 << 10
	multipartMemory = 8 << 20
)

// Options configures the router.
type Options struct {
	AssetDir           string
	CORSAllowedOrigins []string
	UploadMaxBytes     int64
}

// Server exposes the portal and its health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type handler struct {
	svc            *portal.Service
	uploadMaxBytes int64
	logger         *slog.Logger
}

// NewServer creates an HTTP server routing the portal, the JSON API,
// static SAR assets, /healthz, /readyz, and /metrics.
func NewServer(addr string, opts Options, svc *portal.Service, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(opts, svc, ready, metrics, logger),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter builds the chi router behind Server.
func NewRouter(opts Options, svc *portal.Service, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	h := &handler{svc: svc, uploadMaxBytes: opts.UploadMaxBytes, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument(metrics))

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Handle("/metrics", promhttp.Handler())

	if opts.AssetDir != "" {
		r.Handle("/Snippet/*", http.StripPrefix("/Snippet/", http.FileServer(http.Dir(opts.AssetDir))))
	}

	r.Group(func(pr chi.Router) {
		pr.Use(h.withSession)
		pr.Get("/", h.handleIndex)

		pr.Route("/actions", func(ar chi.Router) {
			ar.Post("/area", h.actionArea)
			ar.Post("/phase", h.actionPhase)
			ar.Post("/view-mode", h.actionViewMode)
			ar.Post("/tab", h.actionTab)
			ar.Post("/overlays/{overlayID}/toggle", h.actionOverlay)
			ar.Post("/findings/{findingID}/toggle", h.actionFinding)
			ar.Post("/timeline/{index}/toggle", h.actionTimeline)
			ar.Post("/uploads", h.actionUpload)
			ar.Post("/uploads/{uploadID}", h.actionUpdateUpload)
			ar.Post("/uploads/{uploadID}/remove", h.actionRemoveUpload)
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(corsOptions(opts.CORSAllowedOrigins)))

		api.Get("/areas", h.apiAreas)
		api.Get("/areas/{areaID}", h.apiArea)
		api.Get("/content", h.apiContent)

		api.Group(func(sr chi.Router) {
			sr.Use(h.withSession)

			sr.Route("/session", func(s chi.Router) {
				s.Get("/", h.apiSession)
				s.Post("/area", h.apiSelectArea)
				s.Post("/phase", h.apiSelectPhase)
				s.Post("/tab", h.apiSetTab)
				s.Post("/view-mode", h.apiSetViewMode)
				s.Post("/overlays/{overlayID}/toggle", h.apiToggleOverlay)
				s.Post("/findings/{findingID}/toggle", h.apiToggleFinding)
				s.Post("/timeline/{index}/toggle", h.apiToggleTimeline)
			})

			sr.Route("/uploads", func(u chi.Router) {
				u.Post("/", h.apiAddUploads)
				u.Patch("/{uploadID}", h.apiUpdateUpload)
				u.Delete("/{uploadID}", h.apiRemoveUpload)
			})
		})
	})

	return r
}

// corsOptions allows credentials only for explicit origins; a wildcard origin
// gets anonymous CORS.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
