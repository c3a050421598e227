package players

// PlayerStore defines the interface for the player directory. Player ids are
// the only unique key; display names may collide.
type PlayerStore interface {
	Register(name string) (*Player, error)
	Rename(id, newName string) (*Player, error)
	Get(id string) (*Player, error)
	GetAll() ([]Player, error)
	IsKnownPlayer(id string) bool
	Clear() error
}
