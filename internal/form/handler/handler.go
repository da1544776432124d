// Package handler wires the public form endpoints to the form service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	formservice "pulseform/internal/form/service"
	"pulseform/internal/platform/middleware"
	"pulseform/pkg/platform/httputil"
)

// Service defines the form operations the handler depends on.
type Service interface {
	Definition(ctx context.Context, formID string) (*formservice.Definition, error)
}

// Handler serves form definitions to the renderer.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a form handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the form routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/forms/{formID}", h.handleDefinition)
}

// handleDefinition returns the active form's ordered questions and
// rules. A missing or empty form is a load failure the client retries
// manually; no partial form is ever returned.
func (h *Handler) handleDefinition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formID := chi.URLParam(r, "formID")

	def, err := h.service.Definition(ctx, formID)
	if err != nil {
		h.logger.WarnContext(ctx, "form definition unavailable",
			"request_id", middleware.GetRequestID(ctx),
			"form_id", formID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, def)
}
