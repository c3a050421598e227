package pubsub

import (
	"cloud.google.com/go/pubsub"

	"github.com/jmalvarez/dice-ranking/internal/ledger"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// noopClient stands in when no GCP project is configured. It drops outgoing
// messages and decodes incoming ones like the real client.
type noopClient struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventGamePlayed EventType = "game-played"
)

// GamePlayedEvent is the payload published after every resolved roll.
type GamePlayedEvent struct {
	Game       ledger.Game `msgpack:"game"`
	PlayerName string      `msgpack:"playerName"`
}
