package component

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/delvegame/delve/internal/core/ecs"
)

// Resource pool names used by the stat effects.
const (
	PoolHitPoints = "hit_points"
	PoolMana      = "mana"
)

// Position is an entity's tile on the current map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Name is the display name used in log messages.
type Name string

// Renderable is read by the renderer only.
type Renderable struct {
	Glyph rune           `json:"glyph"`
	FG    colorful.Color `json:"fg"`
	BG    colorful.Color `json:"bg"`
	Order int            `json:"order"` // lower draws on top
}

// Pool is one named resource. 0 <= Current <= Max after every mutation.
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Stats holds combat attributes and resource pools.
type Stats struct {
	Power   int              `json:"power"`
	Defense int              `json:"defense"`
	Pools   map[string]*Pool `json:"pools"`
}

func NewStats(power, defense, hp, mana int) *Stats {
	s := &Stats{Power: power, Defense: defense, Pools: make(map[string]*Pool, 2)}
	s.Pools[PoolHitPoints] = &Pool{Current: hp, Max: hp}
	if mana > 0 {
		s.Pools[PoolMana] = &Pool{Current: mana, Max: mana}
	}
	return s
}

// Get returns a copy of the named pool, or a zero Pool when the entity has
// no such resource.
func (s *Stats) Get(name string) Pool {
	if p, ok := s.Pools[name]; ok {
		return *p
	}
	return Pool{}
}

// Deplete lowers the pool by amount, clamped at 0. It returns the part of
// amount that could not be paid.
func (s *Stats) Deplete(name string, amount int) int {
	p, ok := s.Pools[name]
	if !ok || amount <= 0 {
		if amount > 0 {
			return amount
		}
		return 0
	}
	if amount > p.Current {
		short := amount - p.Current
		p.Current = 0
		return short
	}
	p.Current -= amount
	return 0
}

// Restore raises the pool by amount, clamped at Max.
func (s *Stats) Restore(name string, amount int) {
	p, ok := s.Pools[name]
	if !ok || amount <= 0 {
		return
	}
	p.Current = min(p.Current+amount, p.Max)
}

// Alive reports positive hit points.
func (s *Stats) Alive() bool {
	return s.Get(PoolHitPoints).Current > 0
}

// Player marks the controlled entity.
type Player struct{}

// Monster marks AI-driven entities.
type Monster struct{}

// BlocksTile marks entities that occupy their tile for movement.
type BlocksTile struct{}

// SerializeMe marks entities included in save snapshots.
type SerializeMe struct{}

// Owned links backpack contents and known spells to their owner.
type Owned struct {
	Owner ecs.EntityID
}
