package handler

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/foodsaid/qrgen/internal/model"
	"github.com/foodsaid/qrgen/internal/service"
)

// Generator produces images for raw generation requests.
type Generator interface {
	Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error)
}

// GeneratorHandler handles HTTP requests for image generation.
type GeneratorHandler struct {
	service Generator
	log     *zap.Logger
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc Generator, log *zap.Logger) *GeneratorHandler {
	return &GeneratorHandler{service: svc, log: log}
}

// HandleGenerate handles GET /generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := model.GenerateRequest{
		Content: q.Get("content"),
		Type:    q.Get("type"),
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if service.IsValidationError(err) {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("generate request failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, internalServerError)
		return
	}

	setSecurityHeaders(w.Header())
	w.Header().Set("Content-Type", resp.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Image)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.Image); err != nil {
		h.log.Debug("write image", zap.Error(err))
	}
}

func setSecurityHeaders(h http.Header) {
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'")
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
}
