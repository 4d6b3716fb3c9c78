// Package api serves the clock over HTTP: button and foreground input, the
// latest rendered frame, the LED ring, status and metrics.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/ringclock/internal/host"
	"github.com/okian/ringclock/internal/input"
)

// Enqueuer accepts input for the next frame.
type Enqueuer interface {
	Enqueue(ctx context.Context, e input.Event) error
}

// FrameSource returns the last published frame.
type FrameSource interface {
	Latest() host.Frame
}

// Server wires HTTP routes for the clock.
type Server struct {
	healthHandler *HealthHandler
	inputHandler  *InputHandler
	frameHandler  *FrameHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(in Enqueuer, frames FrameSource) *Server {
	return &Server{
		healthHandler: NewHealthHandler(frames),
		inputHandler:  NewInputHandler(in),
		frameHandler:  NewFrameHandler(frames),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())

	mux.HandleFunc("/buttons/confirm", MetricsMiddleware(s.inputHandler.Handle(input.EventConfirm), "buttons_confirm"))
	mux.HandleFunc("/buttons/cancel", MetricsMiddleware(s.inputHandler.Handle(input.EventCancel), "buttons_cancel"))
	mux.HandleFunc("/foreground", MetricsMiddleware(s.inputHandler.Handle(input.EventForeground), "foreground"))

	mux.HandleFunc("/frame.png", MetricsMiddleware(s.frameHandler.HandleFrame, "frame"))
	mux.HandleFunc("/leds", MetricsMiddleware(s.frameHandler.HandleLEDs, "leds"))
	mux.HandleFunc("/status", MetricsMiddleware(s.frameHandler.HandleStatus, "status"))
}

type ackResponse struct {
	Status string `json:"status"`
	Event  string `json:"event"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
