package infrastructure

import (
	"encoding/json"
	"fmt"
	"time"

	"smarterdev/domain/events"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// eventEnvelope wraps every published event with routing metadata.
type eventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher implements the EventPublisher interface using NATS.
// Economy and audit events are published to subjects under
// smarterdev.economy.<event_type>.
type NATSEventPublisher struct {
	nc *nats.Conn
}

// NewNATSEventPublisher connects to the given NATS servers.
func NewNATSEventPublisher(servers string) (*NATSEventPublisher, error) {
	opts := []nats.Option{
		nats.Name("smarterdev-bot"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(servers, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithField("servers", servers).Info("Connected to NATS")
	return &NATSEventPublisher{nc: nc}, nil
}

// Publish serializes the event into an envelope and publishes it.
func (p *NATSEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := eventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     time.Now().UTC(),
		SourceService: "smarterdev-bot",
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := "smarterdev.economy." + string(event.Type())
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"event_type": event.Type(),
		"event_id":   envelope.EventID,
		"subject":    subject,
	}).Debug("Published economy event")

	return nil
}

// Close drains and closes the NATS connection.
func (p *NATSEventPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
