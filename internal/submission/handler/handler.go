// Package handler exposes the submission endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pulseform/internal/platform/middleware"
	"pulseform/internal/submission/models"
	"pulseform/pkg/platform/httputil"
)

// Service processes submissions.
type Service interface {
	Submit(ctx context.Context, payload *models.Payload) (*models.Result, error)
}

// Handler serves the public submission route.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a submission handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the submission routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submissions", h.handleSubmit)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	payload, ok := httputil.DecodeAndPrepare[models.Payload](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	payload.EnrichMeta(r.Header.Get("User-Agent"), middleware.GetClientIP(ctx))

	result, err := h.service.Submit(ctx, &payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "submission failed",
			"request_id", requestID,
			"form_id", payload.FormID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, result)
}
