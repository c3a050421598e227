package ledger

// GameLedger defines the interface for the append-only roll history.
//
// Appends for the same player serialize on the store's write lock. A
// DeleteAllByPlayer racing a concurrent Append for the same player is
// last-write-wins with undefined order: the ledger may end up empty or
// holding the new game.
type GameLedger interface {
	Append(game *Game) (*Game, error)
	ListByPlayer(playerID string) ([]Game, error)
	DeleteAllByPlayer(playerID string) (int64, error)
	AllGames() ([]Game, error)
	Clear() error
}
