package notifier

import (
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For resolved rolls
	SendResultNotification(game *ledger.Game, playerName string, dryRun bool) error
	// For slash commands
	SendRanking(snapshot *ranking.Snapshot, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingResponse(snapshot *ranking.Snapshot) (any, error)
}
