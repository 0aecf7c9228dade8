package effects

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/gamelog"
	"github.com/delvegame/delve/internal/particle"
	"github.com/delvegame/delve/internal/world"
)

var (
	colorOrange = colorful.Color{R: 1, G: 0.65, B: 0}
	colorGreen  = colorful.Color{R: 0, G: 1, B: 0}
	colorBlack  = colorful.Color{}
)

// Config tunes the engine.
type Config struct {
	// MaxPerDrain discards the rest of the queue after this many effects
	// in one drain; 0 disables the guard.
	MaxPerDrain        int
	BloodstainOnDamage bool
}

// Engine resolves targets and applies queued effects.
type Engine struct {
	queue     *Queue
	ws        *world.State
	particles particle.Sink
	msgs      *gamelog.Log
	log       *zap.Logger
	rng       *rand.Rand
	cfg       Config
}

func NewEngine(q *Queue, ws *world.State, particles particle.Sink, msgs *gamelog.Log,
	rng *rand.Rand, cfg Config, log *zap.Logger) *Engine {
	return &Engine{queue: q, ws: ws, particles: particles, msgs: msgs, rng: rng, cfg: cfg, log: log}
}

func (e *Engine) Queue() *Queue { return e.queue }

// Drain applies effects until the queue is empty, including effects enqueued
// while draining. It returns the number applied.
func (e *Engine) Drain() int {
	n := 0
	for {
		eff, ok := e.queue.Pop()
		if !ok {
			return n
		}
		if e.cfg.MaxPerDrain > 0 && n >= e.cfg.MaxPerDrain {
			dropped := e.queue.Len() + 1
			e.queue.Clear()
			e.log.Warn("effect queue runaway, discarding",
				zap.Int("applied", n), zap.Int("dropped", dropped))
			return n
		}
		e.apply(eff)
		n++
	}
}

func (e *Engine) apply(eff Effect) {
	if use, ok := eff.Kind.(ItemUse); ok {
		e.triggerItem(eff.Creator, use.Item, eff.Targets)
		return
	}
	switch t := eff.Targets.(type) {
	case Tile:
		e.affectTile(eff, t.Idx)
	case TileList:
		for _, idx := range t.Idxs {
			e.affectTile(eff, idx)
		}
	case Single:
		e.affectEntity(eff, t.Entity)
	case EntityList:
		for _, id := range t.Entities {
			e.affectEntity(eff, id)
		}
	}
}

func (e *Engine) affectTile(eff Effect, idx int) {
	m := e.ws.Map()
	if m == nil || idx < 0 || idx >= len(m.Tiles) {
		return
	}
	if hitsEntities(eff.Kind) {
		occupants := append([]ecs.EntityID(nil), m.ContentAt(idx)...)
		for _, id := range occupants {
			e.affectEntity(eff, id)
		}
		return
	}
	switch k := eff.Kind.(type) {
	case Bloodstain:
		m.AddBloodstain(idx)
	case Particle:
		e.particleAt(idx, k)
	case TeleportTo:
		for _, id := range m.ContentAt(idx) {
			if e.ws.IsPlayer(id) {
				e.teleport(id, k)
				return
			}
		}
	}
}

func (e *Engine) affectEntity(eff Effect, target ecs.EntityID) {
	if !e.ws.ECS.Alive(target) {
		return
	}
	switch k := eff.Kind.(type) {
	case Damage:
		e.damage(target, k.Amount)
	case Healing:
		e.heal(target, k.Amount)
	case GainMana:
		if st, ok := e.ws.Stats.Get(target); ok {
			st.Restore(component.PoolMana, k.Amount)
		}
	case LoseMana:
		e.loseMana(target, k.Amount)
	case Bloodstain:
		if idx, ok := e.ws.TileOf(target); ok {
			e.ws.Map().AddBloodstain(idx)
		}
	case Particle:
		if idx, ok := e.ws.TileOf(target); ok {
			e.particleAt(idx, k)
		}
	case TeleportTo:
		if e.ws.IsPlayer(target) {
			e.teleport(target, k)
		}
	}
}

func (e *Engine) damage(target ecs.EntityID, amount int) {
	st, ok := e.ws.Stats.Get(target)
	if !ok {
		return
	}
	st.Deplete(component.PoolHitPoints, amount)
	e.queue.Enqueue(0, Particle{Glyph: '‼', FG: colorOrange, BG: colorBlack, Lifetime: 100}, Single{Entity: target})
	if amount > 0 && e.cfg.BloodstainOnDamage {
		e.queue.Enqueue(0, Bloodstain{}, Single{Entity: target})
	}
}

func (e *Engine) heal(target ecs.EntityID, amount int) {
	st, ok := e.ws.Stats.Get(target)
	if !ok {
		return
	}
	st.Restore(component.PoolHitPoints, amount)
	e.queue.Enqueue(0, Particle{Glyph: '♥', FG: colorGreen, BG: colorBlack, Lifetime: 100}, Single{Entity: target})
}

// loseMana pays the cost from mana; any shortfall costs twice as much health.
func (e *Engine) loseMana(target ecs.EntityID, amount int) {
	st, ok := e.ws.Stats.Get(target)
	if !ok {
		return
	}
	short := st.Deplete(component.PoolMana, amount)
	if short <= 0 {
		return
	}
	e.msgs.Add("Insufficient mana, paying in blood")
	e.queue.Enqueue(0, Damage{Amount: 2 * short}, Single{Entity: target})
}

func (e *Engine) teleport(target ecs.EntityID, k TeleportTo) {
	m := e.ws.Map()
	if !m.InBounds(k.X, k.Y) {
		return
	}
	pos, ok := e.ws.Positions.Get(target)
	if !ok {
		return
	}
	pos.X, pos.Y = k.X, k.Y
	if vs, ok := e.ws.Viewsheds.Get(target); ok {
		vs.Dirty = true
	}
}

func (e *Engine) particleAt(idx int, k Particle) {
	if e.particles == nil {
		return
	}
	x, y := e.ws.Map().XY(idx)
	e.particles.Request(particle.Request{X: x, Y: y, Glyph: k.Glyph, FG: k.FG, BG: k.BG, Lifetime: k.Lifetime})
}
