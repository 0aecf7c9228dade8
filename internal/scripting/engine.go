package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Formulas are the tunable game rules. Engine evaluates them in Lua; Builtin
// is the pure-Go fallback used when no script defines a function.
type Formulas interface {
	MeleeDamage(ctx MeleeContext) int
	SpawnBudget(depth, maxSpawns int) int
	DescentHeal(hp, maxHP int) int
}

// MeleeContext holds pre-packed data for a melee damage calculation.
type MeleeContext struct {
	AttackerPower   int
	AttackerHP      int
	DefenderDefense int
	DefenderHP      int
	DefenderMaxHP   int
	Depth           int
}

// Builtin implements Formulas without Lua.
type Builtin struct{}

func (Builtin) MeleeDamage(ctx MeleeContext) int {
	return max(0, ctx.AttackerPower-ctx.DefenderDefense)
}

func (Builtin) SpawnBudget(depth, maxSpawns int) int {
	return maxSpawns + max(depth, 1) - 1
}

// DescentHeal restores the player to at least half of max.
func (Builtin) DescentHeal(hp, maxHP int) int {
	return max(hp, maxHP/2)
}

// Engine wraps a single gopher-lua VM for game rule evaluation.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback Builtin
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core scripts first, then feature scripts
	for _, sub := range []string{"core", "combat", "world"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// MeleeDamage calls the Lua calc_melee_damage function. The result is
// clamped at 0.
func (e *Engine) MeleeDamage(ctx MeleeContext) int {
	fn := e.vm.GetGlobal("calc_melee_damage")
	if fn == lua.LNil {
		return e.fallback.MeleeDamage(ctx)
	}

	t := e.vm.NewTable()

	atk := e.vm.NewTable()
	atk.RawSetString("power", lua.LNumber(ctx.AttackerPower))
	atk.RawSetString("hp", lua.LNumber(ctx.AttackerHP))
	t.RawSetString("attacker", atk)

	def := e.vm.NewTable()
	def.RawSetString("defense", lua.LNumber(ctx.DefenderDefense))
	def.RawSetString("hp", lua.LNumber(ctx.DefenderHP))
	def.RawSetString("max_hp", lua.LNumber(ctx.DefenderMaxHP))
	t.RawSetString("defender", def)
	t.RawSetString("depth", lua.LNumber(ctx.Depth))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_melee_damage error", zap.Error(err))
		return e.fallback.MeleeDamage(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_melee_damage returned non-number")
		return e.fallback.MeleeDamage(ctx)
	}
	return max(0, int(n))
}

// SpawnBudget calls Lua spawn_budget(depth, max_spawns).
func (e *Engine) SpawnBudget(depth, maxSpawns int) int {
	if !e.Has("spawn_budget") {
		return e.fallback.SpawnBudget(depth, maxSpawns)
	}
	n, err := e.callIntFunc("spawn_budget", depth, maxSpawns)
	if err != nil {
		return e.fallback.SpawnBudget(depth, maxSpawns)
	}
	return max(0, n)
}

// DescentHeal calls Lua descent_heal(hp, max_hp). Whatever the script
// returns, the result stays within [max_hp/2, max_hp].
func (e *Engine) DescentHeal(hp, maxHP int) int {
	floor := e.fallback.DescentHeal(hp, maxHP)
	if !e.Has("descent_heal") {
		return floor
	}
	n, err := e.callIntFunc("descent_heal", hp, maxHP)
	if err != nil {
		return floor
	}
	return min(max(n, maxHP/2), maxHP)
}

// --- Lua helpers ---

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) (int, error) {
	fn := e.vm.GetGlobal(name)
	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, err
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result)), nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
