package overlay

import (
	"time"

	"github.com/google/uuid"

	"github.com/okian/ringclock/internal/domain/calendar"
)

// DefaultNotificationDuration is how long a notification stays on screen.
const DefaultNotificationDuration = 3 * time.Second

// maxNotificationRunes fits the banner at the 7px font on a 240px face.
const maxNotificationRunes = 26

// NotificationOption configures a Notification.
type NotificationOption func(*Notification)

// WithDisplayDuration sets how long the banner is shown.
func WithDisplayDuration(d time.Duration) NotificationOption {
	return func(n *Notification) {
		if d > 0 {
			n.duration = d
		}
	}
}

// WithFaceRadius sizes the banner for a face of radius r.
func WithFaceRadius(r float64) NotificationOption {
	return func(n *Notification) {
		if r > 0 {
			n.faceRadius = r
		}
	}
}

// Notification is a transient banner carrying a message. It retires itself
// after its display duration.
type Notification struct {
	layer
	id         uuid.UUID
	message    string
	faceRadius float64

	elapsed  time.Duration
	duration time.Duration
}

// NewNotification returns an enabled banner showing message.
func NewNotification(message string, opts ...NotificationOption) *Notification {
	n := &Notification{
		layer:      layer{enabled: true},
		id:         uuid.New(),
		message:    message,
		faceRadius: 120,
		duration:   DefaultNotificationDuration,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notification) ID() uuid.UUID   { return n.id }
func (n *Notification) Message() string { return n.message }

func (n *Notification) Update(delta time.Duration, _ calendar.Sample) {
	if !n.enabled {
		return
	}
	n.elapsed += delta
	if n.elapsed >= n.duration {
		n.enabled = false
	}
}

func (n *Notification) Render(c Canvas) {
	r := n.faceRadius
	c.Save()
	defer c.Restore()

	c.SetColour(n.scheme.Accent)
	c.BeginPath()
	c.Rect(-0.8*r, 0.3*r, 1.6*r, 0.22*r)
	c.Fill()

	c.SetColour(n.scheme.Background)
	c.Text(-0.75*r, 0.45*r, truncate(n.message, maxNotificationRunes))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
