package processor

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jmalvarez/dice-ranking/internal/dice"
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/players"
	"github.com/jmalvarez/dice-ranking/internal/pubsub"
)

// New creates a new Processor.
func New(playerStore players.PlayerStore, gameLedger ledger.GameLedger, roller dice.Roller, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		players:  playerStore,
		ledger:   gameLedger,
		roller:   roller,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// PlayRound rolls two dice for the given player, resolves the outcome and
// records the finished game. The notification is published as an event so a
// failing broker never loses a recorded game.
func (p *Processor) PlayRound(playerID string, dryRun bool) (*ledger.Game, error) {
	player, err := p.players.Get(playerID)
	if err != nil {
		return nil, err
	}

	dice1, dice2 := p.roller.Roll()
	result, err := dice.Resolve(dice1, dice2)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roll: %w", err)
	}

	game, err := p.ledger.Append(&ledger.Game{
		PlayerID: player.ID,
		Dice1:    dice1,
		Dice2:    dice2,
		Result:   result,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record game: %w", err)
	}

	p.metrics.IncRollsPlayed()
	if game.Result {
		p.metrics.IncRollsWon()
	}
	log.Info("Round played", "playerID", player.ID, "player", player.Name, "dice1", game.Dice1, "dice2", game.Dice2, "won", game.Result)

	if !dryRun {
		event := pubsub.GamePlayedEvent{Game: *game, PlayerName: player.Name}
		if err := p.pubsub.SendMessage(pubsub.EventGamePlayed, event); err != nil {
			log.Error("Failed to publish game played event", "error", err, "gameID", game.ID)
		}
	}

	return game, nil
}

// NotifyResult forwards a consumed game played event to the notifier.
func (p *Processor) NotifyResult(event *pubsub.GamePlayedEvent, dryRun bool) error {
	if err := p.notifier.SendResultNotification(&event.Game, event.PlayerName, dryRun); err != nil {
		return fmt.Errorf("failed to send result notification: %w", err)
	}
	return nil
}
