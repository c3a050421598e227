package ranking

import (
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/players"
)

// Entry is one player's derived ranking statistics. Never persisted.
type Entry struct {
	PlayerID      string  `json:"playerId"`
	PlayerName    string  `json:"playerName"`
	Wins          int     `json:"wins"`
	TotalGames    int     `json:"totalGames"`
	WinPercentage float64 `json:"winPercentage"`
}

// Snapshot is a single consistent view of all players' statistics.
//
// HasData distinguishes "nobody has played" from "everybody has 0%":
// AverageSuccessRate is only meaningful when HasData is true.
type Snapshot struct {
	Entries            []Entry
	AverageSuccessRate float64
	HasData            bool
	// Anomalies counts orphan game records: ledger rows whose player is
	// missing from the directory. They are excluded from Entries but
	// remain observable here.
	Anomalies int
}

// Service derives ranking statistics from the ledger on demand. It performs
// no mutation and recomputes from the full history on every call, so there
// are no incrementally maintained counters to drift.
type Service struct {
	ledger  ledger.GameLedger
	players players.PlayerStore
	metrics metrics.Metrics
}
