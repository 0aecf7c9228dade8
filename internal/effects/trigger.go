package effects

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/geom"
)

// triggerItem re-enqueues the item's declared effects. Consumables that fired
// anything are queued for destruction.
func (e *Engine) triggerItem(creator, item ecs.EntityID, targets Targets) {
	if !e.ws.ECS.Alive(item) || e.ws.ECS.Pending(item) {
		return
	}
	fx, ok := e.ws.ItemEffects.Get(item)
	if !ok {
		return
	}
	fired := false

	if fx.Burst != nil {
		e.queue.Enqueue(creator, particleOf(fx.Burst), targets)
	}
	if fx.Line != nil {
		e.lineParticles(creator, item, targets, fx.Line)
	}
	if fx.Healing > 0 {
		e.queue.Enqueue(creator, Healing{Amount: fx.Healing}, targets)
		fired = true
	}
	if fx.GainMana > 0 {
		e.queue.Enqueue(creator, GainMana{Amount: fx.GainMana}, targets)
		fired = true
	}
	if fx.CostsMana > 0 && e.ws.ECS.Alive(creator) {
		// the user pays, whatever the targets are
		e.queue.Enqueue(creator, LoseMana{Amount: fx.CostsMana}, Single{Entity: creator})
		fired = true
	}
	if fx.Damage > 0 {
		e.queue.Enqueue(creator, Damage{Amount: fx.Damage}, targets)
		fired = true
	}
	if fx.Teleport {
		if dest, ok := e.randomFloor(); ok {
			e.queue.Enqueue(creator, TeleportTo{X: dest.X, Y: dest.Y}, targets)
			fired = true
		}
	}

	if fired && e.ws.Consumables.Has(item) {
		e.ws.ECS.MarkForDestruction(item)
	}
}

// lineParticles draws a particle trail from the user to every target tile.
func (e *Engine) lineParticles(creator, item ecs.EntityID, targets Targets, spec *component.ParticleSpec) {
	start, ok := e.ws.TileOf(creator)
	if !ok {
		if start, ok = e.ws.TileOf(item); !ok {
			return
		}
	}
	m := e.ws.Map()
	from := m.Point(start)
	for _, end := range e.targetTiles(targets) {
		line := geom.Line(from, m.Point(end))
		idxs := make([]int, 0, len(line))
		for _, p := range line {
			if m.InBounds(p.X, p.Y) {
				idxs = append(idxs, m.Idx(p.X, p.Y))
			}
		}
		e.queue.Enqueue(0, particleOf(spec), TileList{Idxs: idxs})
	}
}

// targetTiles resolves targets to tile indexes; dead entities are skipped.
func (e *Engine) targetTiles(t Targets) []int {
	switch t := t.(type) {
	case Tile:
		return []int{t.Idx}
	case TileList:
		return t.Idxs
	case Single:
		if idx, ok := e.ws.TileOf(t.Entity); ok {
			return []int{idx}
		}
	case EntityList:
		var out []int
		for _, id := range t.Entities {
			if idx, ok := e.ws.TileOf(id); ok {
				out = append(out, idx)
			}
		}
		return out
	}
	return nil
}

func (e *Engine) randomFloor() (geom.Point, bool) {
	m := e.ws.Map()
	var open []int
	for _, idx := range m.FloorTiles() {
		if !m.Blocked[idx] {
			open = append(open, idx)
		}
	}
	if len(open) == 0 {
		return geom.Point{}, false
	}
	return m.Point(open[e.rng.Intn(len(open))]), true
}

func particleOf(s *component.ParticleSpec) Particle {
	return Particle{Glyph: s.Glyph, FG: s.FG, BG: s.BG, Lifetime: s.Lifetime}
}
