// Package input carries button presses from their sources to the frame loop:
// a latch the app reads and clears each frame, and a bounded queue that
// hands events from other goroutines to the host.
package input

// Button identifies a logical button signal.
type Button int

const (
	Confirm Button = iota
	Cancel
)

func (b Button) String() string {
	switch b {
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Buttons latches presses until they are explicitly cleared. It is owned by
// the frame loop and is not safe for concurrent use.
type Buttons struct {
	pressed map[Button]bool
}

// NewButtons returns an empty latch.
func NewButtons() *Buttons {
	return &Buttons{pressed: make(map[Button]bool)}
}

// Press latches b.
func (l *Buttons) Press(b Button) { l.pressed[b] = true }

// Get reports whether b has been pressed since the last Clear.
func (l *Buttons) Get(b Button) bool { return l.pressed[b] }

// Clear releases every latched button. A press left latched while the app is
// in the background would otherwise fire again on return.
func (l *Buttons) Clear() {
	for b := range l.pressed {
		delete(l.pressed, b)
	}
}
