package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/players"
)

// New creates a new ranking Service.
func New(gameLedger ledger.GameLedger, playerStore players.PlayerStore, metricsSvc metrics.Metrics) *Service {
	return &Service{
		ledger:  gameLedger,
		players: playerStore,
		metrics: metricsSvc,
	}
}

// ComputeSnapshot folds the full ledger into per-player win percentages.
//
// Players with zero games are excluded (their percentage is undefined, not
// zero). Entries are sorted by percentage descending with player id
// ascending as the tie-break, so the order is deterministic. A ledger row
// whose player is missing from the directory is counted as an anomaly and
// dropped; any other directory failure aborts the snapshot rather than
// silently serving a partial ranking.
func (s *Service) ComputeSnapshot() (*Snapshot, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.ObserveSnapshotDuration(time.Since(startTime).Seconds())
	}()

	games, err := s.ledger.AllGames()
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger for snapshot: %w", err)
	}

	type tally struct {
		wins  int
		total int
	}
	totals := make(map[string]*tally)
	for _, g := range games {
		tl := totals[g.PlayerID]
		if tl == nil {
			tl = &tally{}
			totals[g.PlayerID] = tl
		}
		tl.total++
		if g.Result {
			tl.wins++
		}
	}

	snapshot := &Snapshot{}
	for playerID, tl := range totals {
		player, err := s.players.Get(playerID)
		if errors.Is(err, players.ErrPlayerNotFound) {
			log.Warn("Orphan game records: player missing from directory", "playerID", playerID, "games", tl.total)
			snapshot.Anomalies += tl.total
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve player %s for snapshot: %w", playerID, err)
		}

		snapshot.Entries = append(snapshot.Entries, Entry{
			PlayerID:      player.ID,
			PlayerName:    player.Name,
			Wins:          tl.wins,
			TotalGames:    tl.total,
			WinPercentage: percentage(tl.wins, tl.total),
		})
	}
	if snapshot.Anomalies > 0 {
		s.metrics.AddOrphanGames(float64(snapshot.Anomalies))
	}

	sort.Slice(snapshot.Entries, func(i, j int) bool {
		a, b := snapshot.Entries[i], snapshot.Entries[j]
		if a.WinPercentage != b.WinPercentage {
			return a.WinPercentage > b.WinPercentage
		}
		return a.PlayerID < b.PlayerID
	})

	if len(snapshot.Entries) > 0 {
		var sum float64
		for _, e := range snapshot.Entries {
			sum += e.WinPercentage
		}
		snapshot.AverageSuccessRate = round1(sum / float64(len(snapshot.Entries)))
		snapshot.HasData = true
	}

	return snapshot, nil
}

// Winner returns the entry with the highest win percentage, or nil when no
// player has any games. It is derived from the same snapshot ComputeSnapshot
// serves, so the two can never diverge.
func (s *Service) Winner() (*Entry, error) {
	snapshot, err := s.ComputeSnapshot()
	if err != nil {
		return nil, err
	}
	if len(snapshot.Entries) == 0 {
		return nil, nil
	}
	return &snapshot.Entries[0], nil
}

// Loser returns the entry with the lowest win percentage, or nil when no
// player has any games.
func (s *Service) Loser() (*Entry, error) {
	snapshot, err := s.ComputeSnapshot()
	if err != nil {
		return nil, err
	}
	if len(snapshot.Entries) == 0 {
		return nil, nil
	}
	return &snapshot.Entries[len(snapshot.Entries)-1], nil
}

// percentage computes 100*wins/total rounded to one decimal place.
func percentage(wins, total int) float64 {
	return round1(100 * float64(wins) / float64(total))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
