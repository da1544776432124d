// Package notify runs the triage follow-up worker. Flagged submissions
// are handed off on a buffered channel so the submission path never
// blocks on downstream notification work.
package notify

import (
	"context"
	"log/slog"

	"pulseform/internal/submission/service"
)

// Worker consumes triage events asynchronously. Delivery is best effort:
// when the buffer is full the event is dropped and logged, never queued
// against the request path.
type Worker struct {
	events chan service.TriageEvent
	logger *slog.Logger
}

// NewWorker constructs a worker with the given buffer size.
func NewWorker(logger *slog.Logger, buffer int) *Worker {
	if buffer <= 0 {
		buffer = 64
	}
	return &Worker{
		events: make(chan service.TriageEvent, buffer),
		logger: logger,
	}
}

// Notify enqueues a triage event without blocking.
func (w *Worker) Notify(event service.TriageEvent) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("triage queue full, dropping event", "response_id", event.ResponseID)
	}
}

// Run processes events until the context is cancelled, then drains
// whatever is already buffered.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case event := <-w.events:
			w.handle(event)
		case <-ctx.Done():
			for {
				select {
				case event := <-w.events:
					w.handle(event)
				default:
					return ctx.Err()
				}
			}
		}
	}
}

// handle dispatches one event. Currently the follow-up channel is the
// ops log the support team tails; the WhatsApp notification integration
// slots in here once its sender is provisioned.
func (w *Worker) handle(event service.TriageEvent) {
	if event.Flags.Priority {
		w.logger.Info("priority follow-up queued", "response_id", event.ResponseID, "tier", event.Tier)
	}
	if event.Flags.UpsellCandidate {
		w.logger.Info("upsell candidate queued for nurture", "response_id", event.ResponseID, "tier", event.Tier)
	}
}
