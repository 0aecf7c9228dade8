package effects

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/gamelog"
	"github.com/delvegame/delve/internal/particle"
	"github.com/delvegame/delve/internal/world"
)

type fixture struct {
	ws        *world.State
	q         *Queue
	eng       *Engine
	particles *particle.Buffer
	msgs      *gamelog.Log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ws := world.NewState()
	m := world.NewMap(12, 12, 1)
	for y := 1; y < 11; y++ {
		for x := 1; x < 11; x++ {
			m.SetTile(x, y, world.TileFloor)
		}
	}
	m.PopulateBlocked()
	ws.SetMap(m)
	f := &fixture{
		ws:        ws,
		q:         NewQueue(),
		particles: particle.NewBuffer(0),
		msgs:      gamelog.New(16, "en", zap.NewNop()),
	}
	f.eng = NewEngine(f.q, ws, f.particles, f.msgs, rand.New(rand.NewSource(1)),
		Config{MaxPerDrain: 1000, BloodstainOnDamage: true}, zap.NewNop())
	return f
}

func (f *fixture) creature(x, y, hp, mana int) ecs.EntityID {
	id := f.ws.ECS.CreateEntity()
	f.ws.Positions.Set(id, &component.Position{X: x, Y: y})
	f.ws.Stats.Set(id, component.NewStats(4, 1, hp, mana))
	f.ws.Viewsheds.Set(id, &component.Viewshed{Range: 4})
	f.ws.Map().AddContent(f.ws.Map().Idx(x, y), id)
	return id
}

func (f *fixture) pool(id ecs.EntityID, name string) component.Pool {
	st, _ := f.ws.Stats.Get(id)
	return st.Get(name)
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Enqueue(0, Damage{Amount: 1}, Tile{Idx: 1})
	q.Enqueue(0, Damage{Amount: 2}, Tile{Idx: 2})
	assert.Equal(t, 2, q.Len())
	e, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, Damage{Amount: 1}, e.Kind)
	q.Enqueue(0, Damage{Amount: 3}, Tile{Idx: 3})
	e, _ = q.Pop()
	assert.Equal(t, Damage{Amount: 2}, e.Kind)
	e, _ = q.Pop()
	assert.Equal(t, Damage{Amount: 3}, e.Kind)
	_, ok = q.Pop()
	assert.False(t, ok)
	assert.Zero(t, q.Len())
}

func TestDrainIncludesReentrantEffects(t *testing.T) {
	f := newFixture(t)
	target := f.creature(3, 3, 10, 0)

	f.q.Enqueue(0, Damage{Amount: 4}, Single{Entity: target})
	n := f.eng.Drain()

	// damage -> particle + bloodstain
	assert.Equal(t, 3, n)
	assert.Zero(t, f.q.Len())
	assert.Equal(t, 6, f.pool(target, component.PoolHitPoints).Current)
	assert.True(t, f.ws.Map().HasBloodstain(f.ws.Map().Idx(3, 3)))
	assert.Equal(t, 1, f.particles.Pending())
}

func TestStatClampingUnderEffects(t *testing.T) {
	f := newFixture(t)
	target := f.creature(2, 2, 9, 0)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		amt := rng.Intn(7)
		if rng.Intn(2) == 0 {
			f.q.Enqueue(0, Damage{Amount: amt}, Single{Entity: target})
		} else {
			f.q.Enqueue(0, Healing{Amount: amt}, Single{Entity: target})
		}
		f.eng.Drain()
		p := f.pool(target, component.PoolHitPoints)
		require.GreaterOrEqual(t, p.Current, 0)
		require.LessOrEqual(t, p.Current, p.Max)
	}
}

func TestManaShortfallPaysInBlood(t *testing.T) {
	f := newFixture(t)
	caster := f.creature(4, 4, 20, 10)
	st, _ := f.ws.Stats.Get(caster)
	st.Pools[component.PoolMana].Current = 3

	f.eng.apply(Effect{Kind: LoseMana{Amount: 7}, Targets: Single{Entity: caster}})

	assert.Equal(t, 0, f.pool(caster, component.PoolMana).Current)
	require.Equal(t, 1, f.q.Len())
	next, _ := f.q.Pop()
	assert.Equal(t, Damage{Amount: 8}, next.Kind)
	assert.Equal(t, Single{Entity: caster}, next.Targets)
	assert.Equal(t, "Insufficient mana, paying in blood", f.msgs.Last())
}

func TestManaPaidInFull(t *testing.T) {
	f := newFixture(t)
	caster := f.creature(4, 4, 20, 10)
	f.eng.apply(Effect{Kind: LoseMana{Amount: 4}, Targets: Single{Entity: caster}})
	assert.Equal(t, 6, f.pool(caster, component.PoolMana).Current)
	assert.Zero(t, f.q.Len())

	f.q.Enqueue(0, GainMana{Amount: 50}, Single{Entity: caster})
	f.eng.Drain()
	assert.Equal(t, 10, f.pool(caster, component.PoolMana).Current)
}

func TestTileTargetsExpandToOccupants(t *testing.T) {
	f := newFixture(t)
	a := f.creature(5, 5, 10, 0)
	b := f.creature(5, 5, 10, 0)
	bystander := f.creature(6, 5, 10, 0)

	f.q.Enqueue(0, Damage{Amount: 3}, Tile{Idx: f.ws.Map().Idx(5, 5)})
	f.eng.Drain()

	assert.Equal(t, 7, f.pool(a, component.PoolHitPoints).Current)
	assert.Equal(t, 7, f.pool(b, component.PoolHitPoints).Current)
	assert.Equal(t, 10, f.pool(bystander, component.PoolHitPoints).Current)
}

func TestDeadTargetsAreDropped(t *testing.T) {
	f := newFixture(t)
	gone := f.creature(3, 3, 10, 0)
	f.ws.ECS.Destroy(gone)

	f.q.Enqueue(0, Damage{Amount: 5}, EntityList{Entities: []ecs.EntityID{gone, 0}})
	f.q.Enqueue(0, Healing{Amount: 5}, Tile{Idx: -4})
	f.q.Enqueue(0, Bloodstain{}, Tile{Idx: 9999})
	assert.Equal(t, 3, f.eng.Drain())
	assert.Empty(t, f.ws.Map().Bloodstains)
}

func TestTeleportOnlyMovesPlayer(t *testing.T) {
	f := newFixture(t)
	player := f.creature(2, 2, 10, 0)
	f.ws.Player = player
	monster := f.creature(3, 3, 10, 0)

	f.q.Enqueue(0, TeleportTo{X: 8, Y: 8}, EntityList{Entities: []ecs.EntityID{player, monster}})
	f.eng.Drain()

	pos, _ := f.ws.Positions.Get(player)
	assert.Equal(t, component.Position{X: 8, Y: 8}, *pos)
	vs, _ := f.ws.Viewsheds.Get(player)
	assert.True(t, vs.Dirty)

	mpos, _ := f.ws.Positions.Get(monster)
	assert.Equal(t, component.Position{X: 3, Y: 3}, *mpos)
	mvs, _ := f.ws.Viewsheds.Get(monster)
	assert.False(t, mvs.Dirty)
}

func TestAreaHealScenario(t *testing.T) {
	f := newFixture(t)
	user := f.creature(1, 1, 10, 0)
	f.ws.Player = user
	center := f.ws.Map().Idx(5, 5)
	var hurt []ecs.EntityID
	for _, start := range []int{2, 9, 5} {
		id := f.creature(5, 5, 10, 0)
		st, _ := f.ws.Stats.Get(id)
		st.Pools[component.PoolHitPoints].Current = start
		hurt = append(hurt, id)
	}

	item := f.ws.ECS.CreateEntity()
	f.ws.ItemEffects.Set(item, &component.ItemEffects{Healing: 4})
	f.ws.Consumables.Set(item, component.Consumable{})
	f.ws.Backpacks.Set(item, component.InBackpack{Owner: user})

	tiles := []int{center, f.ws.Map().Idx(5, 6), f.ws.Map().Idx(6, 5)}
	f.q.Enqueue(user, ItemUse{Item: item}, TileList{Idxs: tiles})
	f.eng.Drain()

	want := []int{6, 10, 9}
	for i, id := range hurt {
		assert.Equal(t, want[i], f.pool(id, component.PoolHitPoints).Current)
	}
	assert.Equal(t, 3, f.particles.Pending(), "one particle per healed occupant")
	assert.True(t, f.ws.ECS.Pending(item), "consumable queued for destruction")
	assert.Equal(t, 10, f.pool(user, component.PoolHitPoints).Current)
}

func TestItemWithoutEffectsIsKept(t *testing.T) {
	f := newFixture(t)
	user := f.creature(1, 1, 10, 0)
	item := f.ws.ECS.CreateEntity()
	f.ws.Consumables.Set(item, component.Consumable{})
	f.ws.ItemEffects.Set(item, &component.ItemEffects{})

	f.q.Enqueue(user, ItemUse{Item: item}, Single{Entity: user})
	f.eng.Drain()
	assert.False(t, f.ws.ECS.Pending(item))
}

func TestSpellCostsCasterAndDrawsLine(t *testing.T) {
	f := newFixture(t)
	caster := f.creature(1, 5, 10, 2)
	f.ws.Player = caster
	victim := f.creature(6, 5, 20, 0)
	spell := f.ws.ECS.CreateEntity()
	f.ws.ItemEffects.Set(spell, &component.ItemEffects{
		Damage:    5,
		CostsMana: 4,
		Line:      &component.ParticleSpec{Glyph: '*', Lifetime: 100},
	})

	f.q.Enqueue(caster, ItemUse{Item: spell}, Tile{Idx: f.ws.Map().Idx(6, 5)})
	f.eng.Drain()

	assert.Equal(t, 15, f.pool(victim, component.PoolHitPoints).Current)
	// 2 mana short -> 4 blood
	assert.Equal(t, 6, f.pool(caster, component.PoolHitPoints).Current)
	assert.Equal(t, 0, f.pool(caster, component.PoolMana).Current)
	assert.True(t, f.ws.ECS.Alive(spell))
	assert.False(t, f.ws.ECS.Pending(spell))

	f.particles.Tick(0)
	line := 0
	for _, p := range f.particles.Live() {
		if p.Glyph == '*' {
			line++
		}
	}
	assert.Equal(t, 6, line, "trail covers x=1..6")
}

func TestTeleportItemUsesRandomFloor(t *testing.T) {
	f := newFixture(t)
	player := f.creature(2, 2, 10, 0)
	f.ws.Player = player
	scroll := f.ws.ECS.CreateEntity()
	f.ws.ItemEffects.Set(scroll, &component.ItemEffects{Teleport: true})
	f.ws.Consumables.Set(scroll, component.Consumable{})

	f.q.Enqueue(player, ItemUse{Item: scroll}, Single{Entity: player})
	f.eng.Drain()

	pos, _ := f.ws.Positions.Get(player)
	assert.Equal(t, world.TileFloor, f.ws.Map().Tile(pos.X, pos.Y))
	assert.True(t, f.ws.ECS.Pending(scroll))
}

func TestRunawayQueueIsCapped(t *testing.T) {
	f := newFixture(t)
	f.eng.cfg.MaxPerDrain = 5
	for i := 0; i < 20; i++ {
		f.q.Enqueue(0, Bloodstain{}, Tile{Idx: i})
	}
	assert.Equal(t, 5, f.eng.Drain())
	assert.Zero(t, f.q.Len())
}
