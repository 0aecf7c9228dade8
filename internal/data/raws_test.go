package data

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRaws = `
items:
  - name: Potion
    renderable: { glyph: "!", fg: "#ff00ff", bg: "#000000", order: 2 }
    consumable: true
    effects:
      provides_healing: 8
      particle: "*;#ff0000;200"
mobs:
  - name: Rat
    renderable: { glyph: "r", fg: "#808080", bg: "#000000", order: 1 }
    blocks_tile: true
    vision_range: 6
    stats: { max_hp: 4, power: 2, defense: 0 }
spells:
  - name: Bolt
    effects: { ranged: 5, damage: 4, costs_mana: 2, particle_line: "-;#ffffff;100" }
spawn_table:
  - { name: Rat, weight: 5, min_depth: 1, max_depth: 3 }
  - { name: Potion, weight: 1, min_depth: 0, max_depth: 9, add_map_depth_to_weight: true }
`

func TestParseRaws(t *testing.T) {
	r, err := ParseRaws([]byte(sampleRaws))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Count())

	potion := r.Item("Potion")
	require.NotNil(t, potion)
	fx := potion.ItemEffects()
	assert.Equal(t, 8, fx.Healing)
	require.NotNil(t, fx.Burst)
	assert.Equal(t, '*', fx.Burst.Glyph)
	assert.InDelta(t, 200.0, fx.Burst.Lifetime, 1e-9)
	assert.Equal(t, '!', potion.Renderable.Component().Glyph)

	rat := r.Mob("Rat")
	require.NotNil(t, rat)
	assert.Equal(t, 4, rat.Stats.HP, "missing hp defaults to max")

	bolt := r.Spell("Bolt")
	require.NotNil(t, bolt)
	assert.Equal(t, 2, bolt.ItemEffects().CostsMana)
	assert.NotNil(t, bolt.ItemEffects().Line)
	assert.Nil(t, r.Item("Bolt"), "spells are not spawnable items")
}

func TestSpawnTableDepthFilter(t *testing.T) {
	r, err := ParseRaws([]byte(sampleRaws))
	require.NoError(t, err)

	assert.Equal(t, 1, r.SpawnTableFor(0).Len())
	assert.Equal(t, 2, r.SpawnTableFor(2).Len())
	assert.Equal(t, 1, r.SpawnTableFor(7).Len())

	deep := r.SpawnTableFor(7)
	assert.Equal(t, 8, deep.total, "depth added to weight")
}

func TestRandomTableRoll(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	assert.Equal(t, "", NewRandomTable().Roll(rng))

	tbl := NewRandomTable().Add("a", 1).Add("b", 3).Add("never", 0)
	counts := map[string]int{}
	for i := 0; i < 4000; i++ {
		counts[tbl.Roll(rng)]++
	}
	assert.Zero(t, counts["never"])
	assert.Greater(t, counts["b"], counts["a"])
	assert.Equal(t, 4000, counts["a"]+counts["b"])
}

func TestParseRawsErrors(t *testing.T) {
	_, err := ParseRaws([]byte("spawn_table:\n  - { name: Ghost, weight: 1, min_depth: 0, max_depth: 1 }\n"))
	assert.ErrorContains(t, err, "Ghost")

	_, err = ParseRaws([]byte("items:\n  - name: X\n    effects: { particle: \"bad\" }\n"))
	assert.Error(t, err)

	_, err = ParseRaws([]byte("mobs:\n  - name: A\n    stats: { max_hp: 1 }\n  - name: A\n    stats: { max_hp: 1 }\n"))
	assert.ErrorContains(t, err, "duplicate")
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)

	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestShippedRawsLoad(t *testing.T) {
	path := filepath.Join("..", "..", "data", "raws.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skip("raw file not present")
	}
	r, err := LoadRaws(path)
	require.NoError(t, err)
	assert.NotNil(t, r.Spell("Fireball"))
	assert.Greater(t, r.SpawnTableFor(1).Len(), 0)
}
