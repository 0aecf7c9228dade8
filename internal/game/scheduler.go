package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/config"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/core/event"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/data"
	"github.com/delvegame/delve/internal/effects"
	"github.com/delvegame/delve/internal/gamelog"
	"github.com/delvegame/delve/internal/input"
	"github.com/delvegame/delve/internal/mapgen"
	"github.com/delvegame/delve/internal/particle"
	"github.com/delvegame/delve/internal/persist"
	"github.com/delvegame/delve/internal/scripting"
	"github.com/delvegame/delve/internal/system"
	"github.com/delvegame/delve/internal/world"
)

const storeTimeout = 10 * time.Second

// Deps are the collaborators a Scheduler is built from.
type Deps struct {
	Raws      *data.Raws
	Formulas  scripting.Formulas
	Store     persist.Store
	Particles particle.Sink
	Builder   mapgen.Builder
	Log       *zap.Logger
}

// Scheduler drives one game: it consumes one input command per Tick and
// runs the system pipeline on simulation ticks.
// Single-goroutine access only.
type Scheduler struct {
	cfg      *config.Config
	log      *zap.Logger
	raws     *data.Raws
	formulas scripting.Formulas
	store    persist.Store
	builder  mapgen.Builder
	spawner  *mapgen.Spawner

	ws     *world.State
	queue  *effects.Queue
	engine *effects.Engine
	bus    *event.Bus
	msgs   *gamelog.Log
	runner *coresys.Runner
	rng    *rand.Rand

	state RunState
	runID uuid.UUID
	seed  int64
	stats RunStats
}

// New wires a scheduler in the MainMenu state.
func New(cfg *config.Config, deps Deps) (*Scheduler, error) {
	if deps.Raws == nil {
		return nil, errors.New("game: raws are required")
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	formulas := deps.Formulas
	if formulas == nil {
		formulas = scripting.Builtin{}
	}
	store := deps.Store
	if store == nil {
		store = persist.NopStore{}
	}
	sink := deps.Particles
	if sink == nil {
		sink = particle.NewBuffer(0)
	}
	builder := deps.Builder
	if builder == nil {
		policy, err := mapgen.ParsePolicy(cfg.Dungeon.Connect)
		if err != nil {
			return nil, err
		}
		builder = &mapgen.RoomsAndCorridors{
			MaxRooms: cfg.Dungeon.MaxRooms,
			MinSize:  cfg.Dungeon.MinRoomSize,
			MaxSize:  cfg.Dungeon.MaxRoomSize,
			Policy:   policy,
		}
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Scheduler{
		cfg:      cfg,
		log:      log,
		raws:     deps.Raws,
		formulas: formulas,
		store:    store,
		builder:  builder,
		ws:       world.NewState(),
		queue:    effects.NewQueue(),
		bus:      event.NewBus(),
		msgs:     gamelog.New(cfg.Game.LogSize, cfg.Game.Language, log),
		runner:   coresys.NewRunner(),
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		state:    RunState{Mode: MainMenu},
	}
	s.spawner = &mapgen.Spawner{
		Raws:      deps.Raws,
		MaxSpawns: cfg.Dungeon.MaxSpawns,
		Budget:    formulas.SpawnBudget,
		Log:       log,
	}
	s.engine = effects.NewEngine(s.queue, s.ws, sink, s.msgs, s.rng, effects.Config{
		MaxPerDrain:        cfg.Effects.MaxPerDrain,
		BloodstainOnDamage: cfg.Effects.BloodstainOnDamage,
	}, log)
	s.registerSystems()
	s.stats.subscribe(s.bus)

	log.Debug("scheduler ready", zap.Int64("seed", seed))
	return s, nil
}

// registerSystems builds the fixed pipeline. Phases order the pass, not
// registration order.
func (s *Scheduler) registerSystems() {
	ws := s.ws
	monstersAct := func() bool { return s.state.Mode == MonsterTurn }
	s.runner.Register(
		system.NewMovementSystem(ws, ws.Intents, ws.Positions, ws.Viewsheds, ws.Stats, ws.Monsters, ws.Blockers),
		system.NewVisibilitySystem(ws, ws.Positions, ws.Viewsheds),
		system.NewMonsterAISystem(ws, monstersAct, ws.Intents, ws.Positions, ws.Viewsheds, ws.Monsters, ws.Blockers, s.log),
		system.NewMapIndexSystem(ws, ws.Positions, ws.Blockers),
		system.NewMeleeSystem(ws, ws.Intents, ws.Stats, ws.Names, s.queue, s.formulas, s.msgs),
		system.NewEffectsSystem(coresys.PhaseEffects, s.engine, s.log),
		system.NewItemSystem(ws, s.queue, s.bus, s.msgs, s.log),
		system.NewEffectsSystem(coresys.PhaseItemEffects, s.engine, s.log),
		system.NewDeathSystem(ws, s.bus, s.msgs, s.cfg.Effects.BloodstainOnDeath, s.log),
		system.NewCleanupSystem(ws.ECS, s.log),
	)
}

// ==================== Accessors ====================

func (s *Scheduler) State() RunState { return s.state }
func (s *Scheduler) World() *world.State { return s.ws }
func (s *Scheduler) Map() *world.Map { return s.ws.Map() }
func (s *Scheduler) Log() *gamelog.Log { return s.msgs }
func (s *Scheduler) Stats() RunStats { return s.stats }
func (s *Scheduler) RunID() uuid.UUID { return s.runID }
func (s *Scheduler) Queue() *effects.Queue { return s.queue }
func (s *Scheduler) Passes() int { return s.runner.Passes() }
func (s *Scheduler) Player() ecs.EntityID { return s.ws.Player }
func (s *Scheduler) Close() error { return s.store.Close() }

// ==================== Tick ====================

// Tick applies one command to the current state. Simulation modes ignore the
// command and run exactly one pipeline pass. ErrPlayerDead and ErrQuit end
// the run; any other error is fatal too.
func (s *Scheduler) Tick(cmd input.Command) (RunState, error) {
	var err error
	switch s.state.Mode {
	case MainMenu:
		err = s.tickMainMenu(cmd)
	case CharGen:
		s.tickCharGen(cmd)
	case PreRun:
		err = s.tickPreRun()
	case AwaitingInput:
		s.tickAwaiting(cmd)
	case PlayerTurn:
		err = s.pass(MonsterTurn)
	case MonsterTurn:
		if err = s.pass(AwaitingInput); err == nil {
			s.stats.Turns++
		}
	case ShowInventory:
		s.tickInventory(cmd)
	case ShowTargeting:
		s.tickTargeting(cmd)
	case NextLevel:
		err = s.tickNextLevel()
	}
	return s.state, err
}

// Step ticks cmd, then keeps ticking with no input until the game waits for
// the player again.
func (s *Scheduler) Step(cmd input.Command) (RunState, error) {
	st, err := s.Tick(cmd)
	for err == nil && st.Mode.Simulating() {
		st, err = s.Tick(input.Command{})
	}
	return st, err
}

// pass runs the pipeline once and moves to next.
func (s *Scheduler) pass(next Mode) error {
	err := s.runner.Run()
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	if errors.Is(err, system.ErrPlayerDead) {
		s.playerDied()
		return ErrPlayerDead
	}
	if err != nil {
		return fmt.Errorf("pipeline pass: %w", err)
	}
	s.state = RunState{Mode: next}
	return nil
}

func (s *Scheduler) playerDied() {
	s.log.Info("player died",
		zap.String("run", s.runID.String()),
		zap.Int("depth", s.ws.Map().Depth),
		zap.Int("kills", s.stats.Kills),
		zap.Int("turns", s.stats.Turns))
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := s.store.Delete(ctx); err != nil {
		s.log.Error("delete save after death", zap.Error(err))
	}
}

// ==================== Menus ====================

func (s *Scheduler) tickMainMenu(cmd input.Command) error {
	switch cmd.Kind {
	case input.Up:
		s.state.Selection = (s.state.Selection + menuRows - 1) % menuRows
	case input.Down:
		s.state.Selection = (s.state.Selection + 1) % menuRows
	case input.Cancel:
		return ErrQuit
	case input.Confirm:
		switch s.state.Selection {
		case MenuNewGame:
			s.state = RunState{Mode: CharGen}
		case MenuContinue:
			if s.loadGame() {
				s.state = RunState{Mode: AwaitingInput}
			}
		case MenuQuit:
			return ErrQuit
		}
	}
	return nil
}

// HasSave reports whether Continue would find a game.
func (s *Scheduler) HasSave() bool {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	ok, err := s.store.Exists(ctx)
	if err != nil {
		s.log.Warn("check save", zap.Error(err))
		return false
	}
	return ok
}

func (s *Scheduler) tickCharGen(cmd input.Command) {
	switch cmd.Kind {
	case input.Cancel:
		s.state = RunState{Mode: MainMenu}
	case input.Confirm:
		s.state = RunState{Mode: PreRun}
	}
}

func (s *Scheduler) tickPreRun() error {
	if err := s.newGame(); err != nil {
		return err
	}
	return s.pass(AwaitingInput)
}

func (s *Scheduler) tickNextLevel() error {
	if err := s.descend(); err != nil {
		return err
	}
	return s.pass(AwaitingInput)
}

// ==================== Save / Load ====================

func (s *Scheduler) saveGame() {
	snap := persist.Capture(s.ws, s.runID)
	snap.Seed = s.seed
	snap.Turn = s.stats.Turns
	snap.Log = append([]string(nil), s.msgs.Entries()...)
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := s.store.Save(ctx, snap); err != nil {
		s.log.Error("save game", zap.Error(err))
		s.msgs.Add("The game could not be saved.")
	}
}

func (s *Scheduler) loadGame() bool {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap, err := s.store.Load(ctx)
	if errors.Is(err, persist.ErrNoSave) {
		s.msgs.Add("There is no saved game.")
		return false
	}
	if err == nil {
		err = snap.Apply(s.ws)
	}
	if err == nil {
		err = s.rebuildDerived()
	}
	if err != nil {
		s.log.Error("load game", zap.Error(err))
		s.msgs.Add("The saved game could not be loaded.")
		return false
	}
	s.runID = snap.RunID
	s.queue.Clear()
	s.msgs.Clear()
	for _, m := range snap.Log {
		s.msgs.Add(m)
	}
	s.stats = RunStats{Turns: snap.Turn, Deepest: snap.Map.Depth}
	s.log.Info("game loaded", zap.String("run", s.runID.String()), zap.Int("depth", snap.Map.Depth))
	return true
}

// rebuildDerived recomputes viewsheds and the tile index after a load, so
// targeting and resting see the restored world before the first pass.
func (s *Scheduler) rebuildDerived() error {
	for _, phase := range []coresys.Phase{coresys.PhaseVisibility, coresys.PhaseIndex} {
		if err := s.runner.RunPhase(phase); err != nil {
			return err
		}
	}
	return nil
}
