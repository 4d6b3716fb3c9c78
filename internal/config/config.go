// Package config defines process configuration and how it is loaded.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
)

// LED drivers.
const (
	LEDDriverConsole = "console"
	LEDDriverNRZ     = "nrz"
	LEDDriverNone    = "none"
)

// Clock sources sync writes to.
const (
	RTCSoftware = "software"
	RTCSystem   = "system"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080". Empty disables the API.
	Addr string `koanf:"addr"`

	// ScreenRadius is the face radius in pixels.
	ScreenRadius int `koanf:"screen_radius"`

	FrameIntervalMS      int `koanf:"frame_interval_ms"`
	BackgroundIntervalMS int `koanf:"background_interval_ms"`

	// SyncURL is the time API endpoint. Empty disables network sync.
	SyncURL       string `koanf:"sync_url"`
	SyncIntervalS int    `koanf:"sync_interval_s"`
	SyncTimeoutMS int    `koanf:"sync_timeout_ms"`

	NotificationMS   int `koanf:"notification_ms"`
	ButtonLifetimeMS int `koanf:"button_lifetime_ms"`

	SchemeIndex int `koanf:"scheme_index"`

	// LeapRule is "literal" or "gregorian".
	LeapRule string `koanf:"leap_rule"`

	// LEDDriver is one of console, nrz, none.
	LEDDriver  string `koanf:"led_driver"`
	LEDSPIPort string `koanf:"led_spi_port"`

	// RTC is software or system.
	RTC string `koanf:"rtc"`

	// MQTTBroker enables event publishing when set, e.g. "tcp://localhost:1883".
	MQTTBroker string `koanf:"mqtt_broker"`
	MQTTTopic  string `koanf:"mqtt_topic"`

	// InputQueueSize bounds input waiting for the next frame.
	InputQueueSize int `koanf:"queue_size"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		ScreenRadius:         120,
		FrameIntervalMS:      50,
		BackgroundIntervalMS: 1000,
		SyncURL:              "https://timeapi.io/api/Time/current/zone?timeZone=Europe%2FLondon",
		SyncIntervalS:        60,
		SyncTimeoutMS:        10_000,
		NotificationMS:       3000,
		ButtonLifetimeMS:     660,
		SchemeIndex:          0,
		LeapRule:             "literal",
		LEDDriver:            LEDDriverConsole,
		RTC:                  RTCSoftware,
		MQTTTopic:            "ringclock",
		InputQueueSize:       64,
	}
}

// Validate reports the first invalid field wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"screen_radius", c.ScreenRadius},
		{"frame_interval_ms", c.FrameIntervalMS},
		{"background_interval_ms", c.BackgroundIntervalMS},
		{"sync_interval_s", c.SyncIntervalS},
		{"sync_timeout_ms", c.SyncTimeoutMS},
		{"notification_ms", c.NotificationMS},
		{"button_lifetime_ms", c.ButtonLifetimeMS},
		{"queue_size", c.InputQueueSize},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.v)
		}
	}

	if _, err := c.Leap(); err != nil {
		return err
	}

	switch c.LEDDriver {
	case LEDDriverConsole, LEDDriverNone:
	case LEDDriverNRZ:
		if c.LEDSPIPort == "" {
			return fmt.Errorf("%w: led_spi_port is required for the nrz driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown led_driver %q", ErrInvalidConfig, c.LEDDriver)
	}

	switch c.RTC {
	case RTCSoftware, RTCSystem:
	default:
		return fmt.Errorf("%w: unknown rtc %q", ErrInvalidConfig, c.RTC)
	}
	return nil
}

// Leap returns the configured leap rule.
func (c *Config) Leap() (calendar.LeapRule, error) {
	rule, err := calendar.RuleByName(c.LeapRule)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return rule, nil
}

// FrameInterval returns the foreground frame period.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// BackgroundInterval returns the background tick period.
func (c *Config) BackgroundInterval() time.Duration {
	return time.Duration(c.BackgroundIntervalMS) * time.Millisecond
}

// SyncInterval returns the minimum time between sync attempts.
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalS) * time.Second
}

// SyncTimeout bounds a single fetch.
func (c *Config) SyncTimeout() time.Duration {
	return time.Duration(c.SyncTimeoutMS) * time.Millisecond
}

// NotificationDuration returns how long notifications stay on screen.
func (c *Config) NotificationDuration() time.Duration {
	return time.Duration(c.NotificationMS) * time.Millisecond
}

// ButtonLifetime returns how long button indicators pulse.
func (c *Config) ButtonLifetime() time.Duration {
	return time.Duration(c.ButtonLifetimeMS) * time.Millisecond
}
