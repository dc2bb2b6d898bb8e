// Package events announces tournament progress on NATS JetStream. The menu
// works the same whether or not a server is configured; a Nop publisher
// stands in when it is not.
package events

import (
	"context"
	"fmt"
	"time"

	"chess-manager/internal/constants"
)

type Type string

const (
	RoundOpened    Type = "round.opened"
	ResultRecorded Type = "result.recorded"
	RoundClosed    Type = "round.closed"
	Completed      Type = "completed"
)

// Event describes one ledger change. Tournament is the 1-based position of
// the tournament in the stored list.
type Event struct {
	Type       Type      `json:"type"`
	Tournament int       `json:"tournament"`
	Name       string    `json:"name"`
	Round      string    `json:"round,omitempty"`
	Match      int       `json:"match,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	At         time.Time `json:"at"`
}

func (e Event) Subject() string {
	return fmt.Sprintf("%s.%d.%s", constants.EventSubjectPrefix, e.Tournament, e.Type)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
