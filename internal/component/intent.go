package component

import (
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/geom"
)

// Intent is an actor's pending action for the next pipeline pass. Each actor
// holds at most one; it is consumed by the system handling its kind.
type Intent interface {
	intent()
}

// MoveIntent steps one tile. Bumping a creature turns into a melee.
type MoveIntent struct{ DX, DY int }

type MeleeIntent struct{ Target ecs.EntityID }

type PickupIntent struct{ Item ecs.EntityID }

// UseItemIntent uses an item or casts a spell; Target nil means self.
type UseItemIntent struct {
	Item   ecs.EntityID
	Target *geom.Point
}

type DropIntent struct{ Item ecs.EntityID }

func (MoveIntent) intent()    {}
func (MeleeIntent) intent()   {}
func (PickupIntent) intent()  {}
func (UseItemIntent) intent() {}
func (DropIntent) intent()    {}
