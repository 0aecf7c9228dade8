package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, files map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestFallbackWithoutScripts(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.Equal(t, 8, e.MeleeDamage(MeleeContext{AttackerPower: 10, DefenderDefense: 2}))
	assert.Equal(t, 0, e.MeleeDamage(MeleeContext{AttackerPower: 1, DefenderDefense: 5}))
	assert.Equal(t, 6, e.SpawnBudget(3, 4))
	assert.Equal(t, 15, e.DescentHeal(3, 30))
	assert.Equal(t, 20, e.DescentHeal(20, 30))
}

func TestScriptedFormulas(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"combat/melee.lua": `
function calc_melee_damage(ctx)
  return ctx.attacker.power * 2 - ctx.defender.defense
end`,
		"world/spawn.lua": `
function spawn_budget(depth, max_spawns) return max_spawns + depth * 2 end
function descent_heal(hp, max_hp) return max_hp * 4 end`,
	})
	assert.Equal(t, 18, e.MeleeDamage(MeleeContext{AttackerPower: 10, DefenderDefense: 2}))
	assert.Equal(t, 0, e.MeleeDamage(MeleeContext{AttackerPower: 0, DefenderDefense: 2}), "clamped")
	assert.Equal(t, 10, e.SpawnBudget(3, 4))
	assert.Equal(t, 30, e.DescentHeal(1, 30), "clamped to max")
}

func TestScriptErrorFallsBack(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"combat/melee.lua": `function calc_melee_damage(ctx) error("boom") end`,
	})
	assert.Equal(t, 3, e.MeleeDamage(MeleeContext{AttackerPower: 5, DefenderDefense: 2}))
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "bad.lua"), []byte("function ("), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestShippedScripts(t *testing.T) {
	dir := filepath.Join("..", "..", "scripts")
	if _, err := os.Stat(dir); err != nil {
		t.Skip("scripts not present")
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.True(t, e.Has("calc_melee_damage"))
	assert.Equal(t, 8, e.MeleeDamage(MeleeContext{AttackerPower: 10, DefenderDefense: 2}))
	assert.Equal(t, 4, e.SpawnBudget(1, 4))
}
