package app

import (
	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/ledring"
)

// OverlayStatus reports one layer's visibility.
type OverlayStatus struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Snapshot is a copy of the app state for readers outside the frame loop.
type Snapshot struct {
	SchemeIndex int                     `json:"scheme_index"`
	Scheme      SchemeColours           `json:"scheme"`
	Sample      calendar.Sample         `json:"sample"`
	SyncState   string                  `json:"sync_state"`
	SyncError   string                  `json:"sync_error,omitempty"`
	LEDs        [ledring.Slots][3]uint8 `json:"leds"`
	Overlays    []OverlayStatus         `json:"overlays"`
	Message     string                  `json:"notification,omitempty"`
}

// SchemeColours is the active scheme as hex strings.
type SchemeColours struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`
}

var overlayNames = []string{"month", "day", "clock", "notification"} //nolint:gochecknoglobals // fixed table

// Snapshot copies the current state.
func (a *ClockApp) Snapshot() Snapshot {
	s := a.Scheme()
	snap := Snapshot{
		SchemeIndex: a.schemeIndex,
		Scheme: SchemeColours{
			Background: s.Background.Hex(),
			Foreground: s.Foreground.Hex(),
			Accent:     s.Accent.Hex(),
		},
		Sample:    a.sample,
		SyncState: "disabled",
		LEDs:      a.leds.RGB8(),
	}
	if a.sync != nil {
		snap.SyncState = a.sync.State().String()
		if err := a.sync.LastError(); err != nil {
			snap.SyncError = err.Error()
		}
	}
	if a.notification.Enabled() {
		snap.Message = a.notification.Message()
	}
	for i, o := range a.Overlays() {
		var name string
		if i < len(overlayNames) {
			name = overlayNames[i]
		} else {
			name = "button_" + string(rune('a'+i-len(overlayNames)))
		}
		snap.Overlays = append(snap.Overlays, OverlayStatus{Name: name, Enabled: o.Enabled()})
	}
	return snap
}
