// Package effects is the deferred world-mutation pipeline. Any system may
// enqueue an effect; the scheduler drains the queue at fixed points of each
// pipeline pass.
package effects

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/delvegame/delve/internal/core/ecs"
)

// Kind is what an effect does.
type Kind interface {
	kind()
}

type Damage struct{ Amount int }

type Healing struct{ Amount int }

type GainMana struct{ Amount int }

// LoseMana spends mana; a shortfall is paid in hit points at twice the rate.
type LoseMana struct{ Amount int }

type Bloodstain struct{}

type Particle struct {
	Glyph    rune
	FG, BG   colorful.Color
	Lifetime float64 // milliseconds
}

// ItemUse fires the item's declared effects against the same targets.
type ItemUse struct{ Item ecs.EntityID }

type TeleportTo struct{ X, Y int }

func (Damage) kind()     {}
func (Healing) kind()    {}
func (GainMana) kind()   {}
func (LoseMana) kind()   {}
func (Bloodstain) kind() {}
func (Particle) kind()   {}
func (ItemUse) kind()    {}
func (TeleportTo) kind() {}

// hitsEntities reports kinds that expand tile targets into their occupants.
func hitsEntities(k Kind) bool {
	switch k.(type) {
	case Damage, Healing, GainMana, LoseMana:
		return true
	}
	return false
}

// Targets addresses an effect.
type Targets interface {
	targets()
}

type Single struct{ Entity ecs.EntityID }

type EntityList struct{ Entities []ecs.EntityID }

// Tile is a flat map index.
type Tile struct{ Idx int }

type TileList struct{ Idxs []int }

func (Single) targets()     {}
func (EntityList) targets() {}
func (Tile) targets()       {}
func (TileList) targets()   {}

// Effect is one queued unit of world mutation. Creator is zero when the
// effect has no source entity.
type Effect struct {
	Creator ecs.EntityID
	Kind    Kind
	Targets Targets
}

// Queue is a FIFO of pending effects owned by the scheduler.
type Queue struct {
	items []Effect
	head  int
}

func NewQueue() *Queue {
	return &Queue{items: make([]Effect, 0, 64)}
}

func (q *Queue) Enqueue(creator ecs.EntityID, kind Kind, targets Targets) {
	q.items = append(q.items, Effect{Creator: creator, Kind: kind, Targets: targets})
}

// Pop removes the oldest effect.
func (q *Queue) Pop() (Effect, bool) {
	if q.head >= len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return Effect{}, false
	}
	e := q.items[q.head]
	q.items[q.head] = Effect{}
	q.head++
	return e, true
}

func (q *Queue) Len() int { return len(q.items) - q.head }

func (q *Queue) Clear() {
	q.items = q.items[:0]
	q.head = 0
}
