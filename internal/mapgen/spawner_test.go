package mapgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/data"
	"github.com/delvegame/delve/internal/world"
)

const testRaws = `
items:
  - name: Potion
    consumable: true
    effects: { provides_healing: 5 }
mobs:
  - name: Rat
    blocks_tile: true
    vision_range: 5
    stats: { max_hp: 4, power: 2, defense: 0 }
spells:
  - name: Zap
    effects: { ranged: 4, damage: 3, costs_mana: 2 }
spawn_table:
  - { name: Rat, weight: 3, min_depth: 0, max_depth: 10 }
  - { name: Potion, weight: 1, min_depth: 0, max_depth: 10 }
`

func loadTestRaws(t *testing.T) *data.Raws {
	t.Helper()
	r, err := data.ParseRaws([]byte(testRaws))
	require.NoError(t, err)
	return r
}

func TestPopulateRooms(t *testing.T) {
	raws := loadTestRaws(t)
	m, _, err := NewRoomsAndCorridors().Build(3, 80, 43, 5)
	require.NoError(t, err)

	ws := world.NewState()
	ws.SetMap(m)
	sp := &Spawner{Raws: raws, MaxSpawns: 4, Log: zap.NewNop(),
		Budget: func(depth, maxSpawns int) int { return maxSpawns + depth - 1 }}
	n := sp.PopulateRooms(ws, m, rand.New(rand.NewSource(11)))

	assert.Equal(t, n, ws.Positions.Len())
	taken := map[component.Position]bool{}
	ws.Positions.Each(func(id ecs.EntityID, p *component.Position) {
		assert.False(t, taken[*p], "two spawns on %v", *p)
		taken[*p] = true
		assert.Equal(t, world.TileFloor, m.Tile(p.X, p.Y))
		inRoom := false
		for i, r := range m.Rooms {
			if p.X > r.X1 && p.X <= r.X2 && p.Y > r.Y1 && p.Y <= r.Y2 {
				assert.NotZero(t, i, "first room stays empty")
				inRoom = true
			}
		}
		assert.True(t, inRoom)
	})
	// per-room cap is budget (4+3-1=6)
	assert.LessOrEqual(t, n, 6*(len(m.Rooms)-1))
}

func TestSpawnRoomZeroBudgetSpawnsNothing(t *testing.T) {
	raws := loadTestRaws(t)
	m := world.NewMap(20, 20, 1)
	room := world.NewRect(1, 1, 6, 6)
	room.Interior(func(x, y int) { m.SetTile(x, y, world.TileFloor) })
	ws := world.NewState()
	sp := &Spawner{Raws: raws, MaxSpawns: 0, Log: zap.NewNop()}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		assert.Zero(t, sp.SpawnRoom(ws, m, room, rng))
	}
}

func TestSpawnArchetypes(t *testing.T) {
	raws := loadTestRaws(t)
	ws := world.NewState()

	rat, err := SpawnNamed(ws, raws, "Rat", 3, 4)
	require.NoError(t, err)
	assert.True(t, ws.Monsters.Has(rat))
	assert.True(t, ws.Blockers.Has(rat))
	st, ok := ws.Stats.Get(rat)
	require.True(t, ok)
	assert.Equal(t, component.Pool{Current: 4, Max: 4}, st.Get(component.PoolHitPoints))
	vs, _ := ws.Viewsheds.Get(rat)
	assert.True(t, vs.Dirty)

	potion, err := SpawnNamed(ws, raws, "Potion", 1, 1)
	require.NoError(t, err)
	assert.True(t, ws.Consumables.Has(potion))
	fx, ok := ws.ItemEffects.Get(potion)
	require.True(t, ok)
	assert.Equal(t, 5, fx.Healing)

	spell := SpawnSpell(ws, raws.Spell("Zap"), rat, 1)
	r, ok := ws.Ranged.Get(spell)
	require.True(t, ok)
	assert.Equal(t, 4, r.Range)
	assert.False(t, ws.Consumables.Has(spell))
	got, ok := ws.SpellByHotkey(rat, 1)
	require.True(t, ok)
	assert.Equal(t, spell, got)

	_, err = SpawnNamed(ws, raws, "Dragon", 0, 0)
	assert.Error(t, err)
}
