package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/foodsaid/qrgen/internal/middleware"
)

// Routes bundles the handlers mounted by NewRouter.
type Routes struct {
	Generator          *GeneratorHandler
	Health             *HealthHandler
	Docs               *DocsHandler
	RateLimitPerMinute int
	Log                *zap.Logger
}

// NewRouter wires the HTTP API. Only generation endpoints are rate limited.
func NewRouter(rt Routes) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(rt.Log))
	r.Use(middleware.Recoverer(rt.Log))
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.Log.Warn("endpoint not found", zap.String("path", r.URL.Path))
		writeText(w, http.StatusNotFound, notFoundMessage)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusMethodNotAllowed, methodNotAllowed)
	})

	r.Get("/health", rt.Health.HandleHealth)
	r.Get("/metrics", rt.Health.HandleMetrics)
	r.Get(specPath, rt.Docs.HandleSpec)
	r.Get("/docs", rt.Docs.HandleDocs)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.RateLimitPerMinute, rt.Log))
		r.Get("/generate", rt.Generator.HandleGenerate)
		r.Get("/api/v1/generate", rt.Generator.HandleGenerate)
	})

	return r
}
