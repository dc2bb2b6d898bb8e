package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chess-manager/internal/constants"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

type NATSPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger zerolog.Logger
}

// Connect dials url and makes sure stream captures every tournament subject.
func Connect(url, stream string, logger zerolog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("chess-manager"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := configureStream(js, stream); err != nil {
		nc.Close()
		return nil, err
	}

	logger.Info().Str("url", url).Str("stream", stream).Msg("event publisher connected")
	return &NATSPublisher{conn: nc, js: js, logger: logger}, nil
}

func configureStream(js nats.JetStreamContext, stream string) error {
	_, err := js.StreamInfo(stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %s: %w", stream, err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{constants.EventSubjectPrefix + ".>"},
	})
	if err != nil {
		return fmt.Errorf("failed to add stream: %w", err)
	}
	return nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	if _, err := p.js.Publish(event.Subject(), data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}

	p.logger.Debug().Str("subject", event.Subject()).Msg("event published")
	return nil
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}
