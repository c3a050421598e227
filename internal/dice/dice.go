package dice

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Sides is the number of faces on each die.
const Sides = 6

// ErrInvalidDieValue is returned when a die value falls outside [1,6].
// It signals a contract violation by the caller, not a playable outcome.
var ErrInvalidDieValue = errors.New("die value out of range")

// winRule decides the outcome of a round from two die values. It is the
// single place the game rule lives; swapping it does not touch any caller.
var winRule = doubles

// doubles wins when both dice show the same face.
func doubles(dice1, dice2 int) bool {
	return dice1 == dice2
}

// Resolve maps two die values to a win/lose outcome. Pure and deterministic.
func Resolve(dice1, dice2 int) (bool, error) {
	if dice1 < 1 || dice1 > Sides {
		return false, fmt.Errorf("dice1 %d: %w", dice1, ErrInvalidDieValue)
	}
	if dice2 < 1 || dice2 > Sides {
		return false, fmt.Errorf("dice2 %d: %w", dice2, ErrInvalidDieValue)
	}
	return winRule(dice1, dice2), nil
}

// Roller produces two independent uniform die values in [1,6].
type Roller interface {
	Roll() (dice1, dice2 int)
}

type randRoller struct{}

// NewRoller returns a Roller backed by the shared math/rand/v2 source,
// which is safe for concurrent use.
func NewRoller() Roller {
	return randRoller{}
}

func (randRoller) Roll() (int, int) {
	return rand.IntN(Sides) + 1, rand.IntN(Sides) + 1
}
