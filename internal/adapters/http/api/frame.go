package api

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/ringclock/internal/app"
	"github.com/okian/ringclock/internal/ledring"
)

// FrameHandler serves the last rendered frame and the state behind it.
type FrameHandler struct {
	frames FrameSource
}

// NewFrameHandler creates a new frame handler.
func NewFrameHandler(frames FrameSource) *FrameHandler {
	return &FrameHandler{frames: frames}
}

// HandleFrame handles GET /frame.png requests.
func (h *FrameHandler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	f := h.frames.Latest()
	if f.Image == nil {
		writeError(w, http.StatusServiceUnavailable, "no_frame", ErrNoFrame)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image); err != nil {
		writeError(w, http.StatusInternalServerError, "encode", fmt.Errorf("encode frame: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Last-Modified", f.Rendered.UTC().Format(http.TimeFormat))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type ledsResponse struct {
	LEDs     []ledResponse `json:"leds"`
	Rendered time.Time     `json:"rendered"`
}

type ledResponse struct {
	Index int    `json:"index"`
	Hex   string `json:"hex"`
	RGB   [3]int `json:"rgb"`
}

// HandleLEDs handles GET /leds requests. Index is the 1-based LED number.
func (h *FrameHandler) HandleLEDs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	f := h.frames.Latest()
	resp := ledsResponse{LEDs: make([]ledResponse, 0, ledring.Slots), Rendered: f.Rendered}
	for i, c := range f.Snapshot.LEDs {
		resp.LEDs = append(resp.LEDs, ledResponse{
			Index: i + 1,
			Hex:   fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]),
			RGB:   [3]int{int(c[0]), int(c[1]), int(c[2])},
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type statusResponse struct {
	Visible  bool         `json:"visible"`
	Rendered time.Time    `json:"rendered"`
	State    app.Snapshot `json:"state"`
}

// HandleStatus handles GET /status requests.
func (h *FrameHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	f := h.frames.Latest()
	writeJSON(w, http.StatusOK, statusResponse{Visible: f.Visible, Rendered: f.Rendered, State: f.Snapshot})
}
