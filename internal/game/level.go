package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/core/event"
	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/mapgen"
)

var playerGlyph = component.Renderable{
	Glyph: '@',
	FG:    colorful.Color{R: 1, G: 1, B: 0},
	Order: 0,
}

// newGame clears the world and builds depth 1 with a fresh player.
func (s *Scheduler) newGame() error {
	for _, id := range s.ws.ECS.Entities() {
		s.ws.ECS.Destroy(id)
	}
	s.ws.ECS.FlushDestroyQueue()
	s.ws.Player = 0
	s.queue.Clear()
	s.msgs.Clear()
	s.stats = RunStats{}
	s.runID = uuid.New()

	start, err := s.generate(1)
	if err != nil {
		return err
	}
	if err := s.createPlayer(start); err != nil {
		return err
	}
	s.msgs.Addf("Welcome to the dungeon, %s.", s.cfg.Player.Name)
	s.log.Info("new run", zap.String("run", s.runID.String()))
	return nil
}

// generate builds and populates a level and installs it as the current map.
func (s *Scheduler) generate(depth int) (geom.Point, error) {
	seed := s.rng.Int63()
	m, start, err := s.builder.Build(depth, s.cfg.Game.Width, s.cfg.Game.Height, seed)
	if err != nil {
		return geom.Point{}, fmt.Errorf("generate depth %d: %w", depth, err)
	}
	s.ws.SetMap(m)
	spawned := s.spawner.PopulateRooms(s.ws, m, s.rng)
	event.Emit(s.bus, event.LevelEntered{Depth: depth, Rooms: len(m.Rooms)})
	s.log.Debug("level generated",
		zap.Int("depth", depth),
		zap.Int("rooms", len(m.Rooms)),
		zap.Int("spawned", spawned),
		zap.Int64("seed", seed))
	return start, nil
}

func (s *Scheduler) createPlayer(start geom.Point) error {
	pc := s.cfg.Player
	ws := s.ws
	id := ws.ECS.CreateEntity()
	ws.Player = id
	ws.Players.Set(id, component.Player{})
	ws.Names.Set(id, component.Name(pc.Name))
	ws.Positions.Set(id, &component.Position{X: start.X, Y: start.Y})
	r := playerGlyph
	ws.Renderables.Set(id, &r)
	ws.Viewsheds.Set(id, component.NewViewshed(pc.Vision))
	ws.Stats.Set(id, component.NewStats(pc.Power, pc.Defense, pc.HP, pc.Mana))
	ws.Blockers.Set(id, component.BlocksTile{})
	ws.Serialize.Set(id, component.SerializeMe{})

	for _, name := range pc.Items {
		t := s.raws.Item(name)
		if t == nil {
			return fmt.Errorf("starting item %q not in raws", name)
		}
		item := mapgen.SpawnItem(ws, t)
		ws.Backpacks.Set(item, component.InBackpack{Owner: id})
	}
	for i, name := range pc.Spells {
		t := s.raws.Spell(name)
		if t == nil {
			return fmt.Errorf("starting spell %q not in raws", name)
		}
		mapgen.SpawnSpell(ws, t, id, i+1)
	}
	return nil
}

// keepers returns the player, its backpack items and its known spells.
func (s *Scheduler) keepers() map[ecs.EntityID]struct{} {
	player := s.ws.Player
	keep := map[ecs.EntityID]struct{}{player: {}}
	for _, id := range s.ws.Backpack(player) {
		keep[id] = struct{}{}
	}
	s.ws.KnownSpells.Each(func(id ecs.EntityID, k component.KnownSpell) {
		if k.Owner == player {
			keep[id] = struct{}{}
		}
	})
	return keep
}

// descend replaces the level with depth+1, keeping only the player and
// what the player owns.
func (s *Scheduler) descend() error {
	keep := s.keepers()
	removed := 0
	for _, id := range s.ws.ECS.Entities() {
		if _, ok := keep[id]; !ok {
			s.ws.ECS.Destroy(id)
			removed++
		}
	}
	s.ws.ECS.FlushDestroyQueue()
	s.queue.Clear()

	depth := s.ws.Map().Depth + 1
	start, err := s.generate(depth)
	if err != nil {
		return err
	}

	player := s.ws.Player
	if pos, ok := s.ws.Positions.Get(player); ok {
		pos.X, pos.Y = start.X, start.Y
	}
	if st, ok := s.ws.Stats.Get(player); ok {
		if hp, ok := st.Pools[component.PoolHitPoints]; ok {
			hp.Current = min(max(s.formulas.DescentHeal(hp.Current, hp.Max), hp.Max/2), hp.Max)
		}
	}
	s.ws.DirtyAll()
	s.msgs.Add("You descend to the next level, and take a moment to heal.")
	s.log.Info("descended", zap.Int("depth", depth), zap.Int("removed", removed))
	return nil
}
