package handler

import (
	"net/http"

	"github.com/foodsaid/qrgen/internal/config"
	"github.com/foodsaid/qrgen/internal/model"
)

// MetricsResponse is the body of GET /metrics.
type MetricsResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Config  MetricsConfig `json:"config"`
}

// MetricsConfig reports the limits the service runs with.
type MetricsConfig struct {
	MaxContentLength int      `json:"max_content_length"`
	BarcodeMaxLength int      `json:"barcode_max_length"`
	RateLimit        string   `json:"rate_limit"`
	AllowedTypes     []string `json:"allowed_types"`
}

// HealthHandler serves the liveness and metrics endpoints.
type HealthHandler struct {
	metrics MetricsResponse
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg config.Config, version string) *HealthHandler {
	return &HealthHandler{
		metrics: MetricsResponse{
			Status:  "healthy",
			Version: version,
			Config: MetricsConfig{
				MaxContentLength: cfg.Limits.MaxContentLength,
				BarcodeMaxLength: cfg.Limits.BarcodeMaxLength,
				RateLimit:        cfg.RateLimitDescription(),
				AllowedTypes:     model.KindNames(),
			},
		},
	}
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "OK")
}

// HandleMetrics handles GET /metrics requests.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics)
}
