// Package system holds the simulation systems run once per pipeline pass.
package system

import (
	"errors"

	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/world"
)

// ErrPlayerDead ends the run. Returned by the death sweep.
var ErrPlayerDead = errors.New("player is dead")

// Level gives systems the current map and player. The map is replaced on
// descent, so systems never keep a *world.Map across passes.
type Level interface {
	Map() *world.Map
	PlayerID() ecs.EntityID
}

// TurnGate reports whether monsters act in the running pass.
type TurnGate func() bool
