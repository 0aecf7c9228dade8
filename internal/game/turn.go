package game

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/input"
	"github.com/delvegame/delve/internal/world"
)

// ==================== AwaitingInput ====================

func (s *Scheduler) tickAwaiting(cmd input.Command) {
	switch cmd.Kind {
	case input.Move:
		s.RequestMove(cmd.DX, cmd.DY)
		s.state = RunState{Mode: PlayerTurn}
	case input.Pickup:
		s.RequestPickup()
		s.state = RunState{Mode: PlayerTurn}
	case input.Wait:
		s.rest()
		s.state = RunState{Mode: PlayerTurn}
	case input.Inventory, input.Drop:
		s.state = RunState{Mode: ShowInventory}
	case input.Hotkey:
		s.castHotkey(cmd.N)
	case input.Descend:
		if s.onStairs() {
			s.state = RunState{Mode: NextLevel}
		} else {
			s.msgs.Add("There is no way down from here.")
		}
	case input.Cancel:
		s.saveGame()
		s.state = RunState{Mode: MainMenu}
	}
}

// rest heals one hit point when no monster is in sight.
func (s *Scheduler) rest() {
	player := s.ws.Player
	vs, ok := s.ws.Viewsheds.Get(player)
	if !ok {
		return
	}
	seen := false
	s.ws.Monsters.Each(func(id ecs.EntityID, _ component.Monster) {
		if pos, ok := s.ws.Positions.Get(id); ok && vs.Sees(geom.Pt(pos.X, pos.Y)) {
			seen = true
		}
	})
	if seen {
		return
	}
	if st, ok := s.ws.Stats.Get(player); ok {
		st.Restore(component.PoolHitPoints, 1)
	}
}

func (s *Scheduler) onStairs() bool {
	pos, ok := s.ws.Positions.Get(s.ws.Player)
	return ok && s.ws.Map().Tile(pos.X, pos.Y) == world.TileDownStairs
}

func (s *Scheduler) castHotkey(n int) {
	spell, ok := s.ws.SpellByHotkey(s.ws.Player, n)
	if !ok {
		return
	}
	s.activate(spell)
}

// activate either opens targeting for a ranged item or uses it on the
// player right away.
func (s *Scheduler) activate(item ecs.EntityID) {
	if r, ok := s.ws.Ranged.Get(item); ok {
		st := RunState{Mode: ShowTargeting, Range: r.Range, Item: item}
		if aoe, ok := s.ws.AreaEffects.Get(item); ok {
			st.Radius = aoe.Radius
		}
		s.state = st
		return
	}
	s.RequestUseItem(item, nil)
	s.state = RunState{Mode: PlayerTurn}
}

// ==================== Inventory ====================

func (s *Scheduler) tickInventory(cmd input.Command) {
	pack := s.ws.Backpack(s.ws.Player)
	switch cmd.Kind {
	case input.Cancel:
		s.state = RunState{Mode: AwaitingInput}
	case input.Up:
		if s.state.Selection > 0 {
			s.state.Selection--
		}
	case input.Down:
		if s.state.Selection < len(pack)-1 {
			s.state.Selection++
		}
	case input.Confirm, input.Drop:
		if s.state.Selection >= len(pack) {
			s.state = RunState{Mode: AwaitingInput}
			return
		}
		item := pack[s.state.Selection]
		if cmd.Kind == input.Drop {
			s.RequestDrop(item)
			s.state = RunState{Mode: PlayerTurn}
			return
		}
		s.activate(item)
	}
}

// ==================== Targeting ====================

func (s *Scheduler) tickTargeting(cmd input.Command) {
	switch cmd.Kind {
	case input.Cancel:
		s.state = RunState{Mode: AwaitingInput}
	case input.Target:
		if !s.validTarget(cmd.Point) {
			s.msgs.Add("Invalid target.")
			return
		}
		target := cmd.Point
		s.RequestUseItem(s.state.Item, &target)
		s.state = RunState{Mode: PlayerTurn}
	}
}

// validTarget accepts visible tiles within range of the player.
func (s *Scheduler) validTarget(p geom.Point) bool {
	player := s.ws.Player
	pos, ok := s.ws.Positions.Get(player)
	if !ok {
		return false
	}
	vs, ok := s.ws.Viewsheds.Get(player)
	if !ok || !vs.Sees(p) {
		return false
	}
	return geom.Distance(geom.Pt(pos.X, pos.Y), p) <= float64(s.state.Range)
}

// ==================== Requests ====================
// Each request records the player's intent; it takes effect on the next
// pipeline pass.

func (s *Scheduler) RequestMove(dx, dy int) {
	s.ws.Intents.Set(s.ws.Player, component.MoveIntent{DX: dx, DY: dy})
}

func (s *Scheduler) RequestPickup() {
	s.ws.Intents.Set(s.ws.Player, component.PickupIntent{})
}

func (s *Scheduler) RequestUseItem(item ecs.EntityID, target *geom.Point) {
	s.ws.Intents.Set(s.ws.Player, component.UseItemIntent{Item: item, Target: target})
}

func (s *Scheduler) RequestDrop(item ecs.EntityID) {
	s.ws.Intents.Set(s.ws.Player, component.DropIntent{Item: item})
}

func (s *Scheduler) RequestMelee(target ecs.EntityID) {
	s.ws.Intents.Set(s.ws.Player, component.MeleeIntent{Target: target})
}
