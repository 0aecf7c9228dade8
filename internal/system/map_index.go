package system

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	coresys "github.com/delvegame/delve/internal/core/system"
)

// MapIndexSystem rebuilds the tile occupant index and the Blocked flags.
type MapIndexSystem struct {
	level     Level
	positions *ecs.PtrComponentStore[component.Position]
	blockers  *ecs.ComponentStore[component.BlocksTile]
}

func NewMapIndexSystem(level Level, positions *ecs.PtrComponentStore[component.Position],
	blockers *ecs.ComponentStore[component.BlocksTile]) *MapIndexSystem {
	return &MapIndexSystem{level: level, positions: positions, blockers: blockers}
}

func (s *MapIndexSystem) Phase() coresys.Phase { return coresys.PhaseIndex }

func (s *MapIndexSystem) Update() error {
	m := s.level.Map()
	m.PopulateBlocked()
	m.ClearContentIndex()
	s.positions.Each(func(id ecs.EntityID, pos *component.Position) {
		if !m.InBounds(pos.X, pos.Y) {
			return
		}
		idx := m.Idx(pos.X, pos.Y)
		if s.blockers.Has(id) {
			m.Blocked[idx] = true
		}
		m.AddContent(idx, id)
	})
	return nil
}
