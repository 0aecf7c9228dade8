package system

import (
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/navigation"
	"github.com/delvegame/delve/internal/world"
)

// MonsterAISystem decides monster actions on monster turns. A monster that
// sees the player either attacks (adjacent) or steps one tile along a
// distance field toward the player; otherwise it idles.
type MonsterAISystem struct {
	level     Level
	gate      TurnGate
	intents   *ecs.ComponentStore[component.Intent]
	positions *ecs.PtrComponentStore[component.Position]
	viewsheds *ecs.PtrComponentStore[component.Viewshed]
	monsters  *ecs.ComponentStore[component.Monster]
	blockers  *ecs.ComponentStore[component.BlocksTile]
	log       *zap.Logger

	field     *navigation.Field
	fieldMap  *world.Map
	fieldGoal geom.Point
}

func NewMonsterAISystem(level Level, gate TurnGate,
	intents *ecs.ComponentStore[component.Intent],
	positions *ecs.PtrComponentStore[component.Position],
	viewsheds *ecs.PtrComponentStore[component.Viewshed],
	monsters *ecs.ComponentStore[component.Monster],
	blockers *ecs.ComponentStore[component.BlocksTile],
	log *zap.Logger,
) *MonsterAISystem {
	return &MonsterAISystem{
		level:     level,
		gate:      gate,
		intents:   intents,
		positions: positions,
		viewsheds: viewsheds,
		monsters:  monsters,
		blockers:  blockers,
		log:       log,
	}
}

func (s *MonsterAISystem) Phase() coresys.Phase { return coresys.PhaseAI }

func (s *MonsterAISystem) Update() error {
	if s.gate != nil && !s.gate() {
		return nil
	}
	m := s.level.Map()
	player := s.level.PlayerID()
	ppos, ok := s.positions.Get(player)
	if !ok {
		return nil
	}
	target := geom.Point{X: ppos.X, Y: ppos.Y}

	ecs.EachWith(s.viewsheds, s.monsters, func(id ecs.EntityID, vs *component.Viewshed) {
		pos, ok := s.positions.Get(id)
		if !ok || !vs.Sees(target) {
			return
		}
		here := geom.Point{X: pos.X, Y: pos.Y}
		if geom.Chebyshev(here, target) == 1 {
			s.intents.Set(id, component.MeleeIntent{Target: player})
			return
		}

		next, ok := s.fieldFor(m, target).Step(here)
		if !ok || next == target || m.Blocked[m.Idx(next.X, next.Y)] {
			return
		}
		if s.blockers.Has(id) {
			m.Blocked[m.Idx(here.X, here.Y)] = false
			m.Blocked[m.Idx(next.X, next.Y)] = true
		}
		pos.X, pos.Y = next.X, next.Y
		vs.Dirty = true
		s.log.Debug("monster moved", zap.Uint64("entity", uint64(id)),
			zap.Int("x", next.X), zap.Int("y", next.Y))
	})
	return nil
}

// fieldFor returns a terrain-only distance field to goal, reusing the last
// one while neither the map nor the goal changed.
func (s *MonsterAISystem) fieldFor(m *world.Map, goal geom.Point) *navigation.Field {
	if s.field != nil && s.fieldMap == m && s.fieldGoal == goal {
		return s.field
	}
	if s.field == nil || s.field.Width != m.Width || s.field.Height != m.Height {
		s.field = navigation.NewField(m.Width, m.Height)
	}
	s.field.Compute(goal, func(x, y int) bool { return m.Tile(x, y) == world.TileWall })
	s.fieldMap, s.fieldGoal = m, goal
	return s.field
}
