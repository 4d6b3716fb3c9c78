// Package mqtt publishes clock events to an MQTT broker.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/pkg/logger"
)

const (
	defaultTopic        = "ringclock"
	connectTimeout      = 5 * time.Second
	disconnectQuiesceMs = 250
)

// payload is the JSON body published for every event.
type payload struct {
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
	Message string    `json:"message,omitempty"`
}

type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher is an events.Bus that sends each event to <topic>/<kind>.
type Publisher struct {
	client         client
	topic          string
	publishTimeout time.Duration
	log            logger.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithTopic sets the topic prefix.
func WithTopic(topic string) Option {
	return func(p *Publisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

// WithPublishTimeout bounds how long a delivery is awaited before it is
// logged as timed out.
func WithPublishTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.publishTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.log = l
		}
	}
}

// Connect dials broker (for example "tcp://localhost:1883").
func Connect(broker string, opts ...Option) (*Publisher, error) {
	options := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("ringclock-" + uuid.NewString()[:8]).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	c := mqtt.NewClient(options)
	t := c.Connect()
	if !t.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect %s: timed out", broker)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	return newPublisher(c, opts...), nil
}

func newPublisher(c client, opts ...Option) *Publisher {
	p := &Publisher{client: c, topic: defaultTopic, publishTimeout: connectTimeout}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get().Named("mqtt")
	}
	return p
}

// Emit publishes e without waiting for the broker. Delivery errors and
// deliveries still pending after the publish timeout are logged.
func (p *Publisher) Emit(_ context.Context, e events.Event) error {
	body, err := json.Marshal(payload{Kind: string(e.Kind), At: e.At, Message: e.Message})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	topic := fmt.Sprintf("%s/%s", p.topic, e.Kind)
	t := p.client.Publish(topic, 1, false, body)

	go p.await(t, topic)
	return nil
}

func (p *Publisher) await(t mqtt.Token, topic string) {
	ctx := context.Background()
	if !t.WaitTimeout(p.publishTimeout) {
		p.log.Warn(ctx, "mqtt publish timed out", logger.String("topic", topic), logger.Duration("timeout", p.publishTimeout))
		return
	}
	if err := t.Error(); err != nil {
		p.log.Warn(ctx, "mqtt publish failed", logger.String("topic", topic), logger.Error(err))
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(disconnectQuiesceMs)
}
