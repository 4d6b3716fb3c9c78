package api

import (
	"errors"
	"net/http"

	"github.com/okian/ringclock/internal/input"
)

// InputHandler turns POST requests into input events.
type InputHandler struct {
	in Enqueuer
}

// NewInputHandler creates a new input handler.
func NewInputHandler(in Enqueuer) *InputHandler {
	return &InputHandler{in: in}
}

// Handle returns a handler enqueuing an event of kind k. It answers 202 once
// queued, 429 when the queue is full and 503 after shutdown.
func (h *InputHandler) Handle(k input.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}

		err := h.in.Enqueue(r.Context(), input.Event{Kind: k})
		switch {
		case err == nil:
			writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Event: k.String()})
		case errors.Is(err, input.ErrQueueFull):
			writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		case errors.Is(err, input.ErrQueueClosed):
			writeError(w, http.StatusServiceUnavailable, "closed", ErrClosed)
		default:
			writeError(w, http.StatusInternalServerError, "internal", err)
		}
	}
}
