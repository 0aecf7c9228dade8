package system

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/world"
)

// MovementSystem resolves move intents. Walking into a hostile creature
// becomes a melee intent; walking into anything else that blocks is a no-op.
type MovementSystem struct {
	level     Level
	intents   *ecs.ComponentStore[component.Intent]
	positions *ecs.PtrComponentStore[component.Position]
	viewsheds *ecs.PtrComponentStore[component.Viewshed]
	stats     *ecs.PtrComponentStore[component.Stats]
	monsters  *ecs.ComponentStore[component.Monster]
	blockers  *ecs.ComponentStore[component.BlocksTile]
}

func NewMovementSystem(level Level,
	intents *ecs.ComponentStore[component.Intent],
	positions *ecs.PtrComponentStore[component.Position],
	viewsheds *ecs.PtrComponentStore[component.Viewshed],
	stats *ecs.PtrComponentStore[component.Stats],
	monsters *ecs.ComponentStore[component.Monster],
	blockers *ecs.ComponentStore[component.BlocksTile],
) *MovementSystem {
	return &MovementSystem{
		level:     level,
		intents:   intents,
		positions: positions,
		viewsheds: viewsheds,
		stats:     stats,
		monsters:  monsters,
		blockers:  blockers,
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update() error {
	m := s.level.Map()
	for _, id := range s.intents.IDs() {
		in, _ := s.intents.Get(id)
		mv, ok := in.(component.MoveIntent)
		if !ok {
			continue
		}
		s.intents.Remove(id)

		pos, ok := s.positions.Get(id)
		if !ok {
			continue
		}
		nx, ny := pos.X+mv.DX, pos.Y+mv.DY
		if !m.InBounds(nx, ny) || m.Tile(nx, ny) == world.TileWall {
			continue
		}

		if target, ok := s.hostileAt(id, nx, ny); ok {
			s.intents.Set(id, component.MeleeIntent{Target: target})
			continue
		}
		if m.Blocked[m.Idx(nx, ny)] {
			continue
		}

		if s.blockers.Has(id) {
			m.Blocked[m.Idx(pos.X, pos.Y)] = false
			m.Blocked[m.Idx(nx, ny)] = true
		}
		pos.X, pos.Y = nx, ny
		if vs, ok := s.viewsheds.Get(id); ok {
			vs.Dirty = true
		}
	}
	return nil
}

// hostileAt finds a living creature on the other side: the player bumps
// monsters, monsters bump the player. The occupant index may be stale here,
// so positions are scanned directly.
func (s *MovementSystem) hostileAt(mover ecs.EntityID, x, y int) (ecs.EntityID, bool) {
	player := s.level.PlayerID()
	var found ecs.EntityID
	s.positions.Each(func(id ecs.EntityID, p *component.Position) {
		if found != 0 || id == mover || p.X != x || p.Y != y {
			return
		}
		st, ok := s.stats.Get(id)
		if !ok || !st.Alive() {
			return
		}
		if (mover == player && s.monsters.Has(id)) || (id == player && s.monsters.Has(mover)) {
			found = id
		}
	})
	return found, found != 0
}
