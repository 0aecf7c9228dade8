package system

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/fov"
	"github.com/delvegame/delve/internal/geom"
)

// VisibilitySystem recomputes dirty viewsheds. Clean viewsheds are left
// untouched. The player's result also drives the map's Visible and Revealed
// flags.
type VisibilitySystem struct {
	level     Level
	positions *ecs.PtrComponentStore[component.Position]
	viewsheds *ecs.PtrComponentStore[component.Viewshed]
	computed  int
}

func NewVisibilitySystem(level Level, positions *ecs.PtrComponentStore[component.Position],
	viewsheds *ecs.PtrComponentStore[component.Viewshed]) *VisibilitySystem {
	return &VisibilitySystem{level: level, positions: positions, viewsheds: viewsheds}
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhaseVisibility }

func (s *VisibilitySystem) Update() error {
	m := s.level.Map()
	player := s.level.PlayerID()
	ecs.Each2(s.viewsheds, s.positions, func(id ecs.EntityID, vs *component.Viewshed, pos *component.Position) {
		if !vs.Dirty {
			return
		}
		vs.VisibleTiles = fov.Compute(geom.Point{X: pos.X, Y: pos.Y}, vs.Range, m)
		vs.Dirty = false
		s.computed++

		if id != player {
			return
		}
		m.ClearVisible()
		for p := range vs.VisibleTiles {
			idx := m.Idx(p.X, p.Y)
			m.Visible[idx] = true
			m.Revealed[idx] = true
		}
	})
	return nil
}

// Computed returns how many viewsheds have been recomputed so far.
func (s *VisibilitySystem) Computed() int { return s.computed }
