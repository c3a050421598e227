package processor

import (
	"github.com/jmalvarez/dice-ranking/internal/dice"
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/players"
	"github.com/jmalvarez/dice-ranking/internal/pubsub"
)

// Processor handles the business logic of playing rolls.
type Processor struct {
	players  players.PlayerStore
	ledger   ledger.GameLedger
	roller   dice.Roller
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
