package world

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
)

// State holds the ECS world, every component store and the current level map.
// Accessed only from the simulation goroutine.
type State struct {
	ECS    *ecs.World
	Player ecs.EntityID

	level *Map

	Positions   *ecs.PtrComponentStore[component.Position]
	Renderables *ecs.PtrComponentStore[component.Renderable]
	Names       *ecs.ComponentStore[component.Name]
	Viewsheds   *ecs.PtrComponentStore[component.Viewshed]
	Stats       *ecs.PtrComponentStore[component.Stats]

	Players     *ecs.ComponentStore[component.Player]
	Monsters    *ecs.ComponentStore[component.Monster]
	Blockers    *ecs.ComponentStore[component.BlocksTile]
	Serialize   *ecs.ComponentStore[component.SerializeMe]
	Items       *ecs.ComponentStore[component.Item]
	Consumables *ecs.ComponentStore[component.Consumable]
	Backpacks   *ecs.ComponentStore[component.InBackpack]
	Ranged      *ecs.ComponentStore[component.Ranged]
	AreaEffects *ecs.ComponentStore[component.AreaOfEffect]
	ItemEffects *ecs.PtrComponentStore[component.ItemEffects]
	Spells      *ecs.ComponentStore[component.Spell]
	KnownSpells *ecs.ComponentStore[component.KnownSpell]

	Intents *ecs.ComponentStore[component.Intent]
}

func NewState() *State {
	s := &State{
		ECS:         ecs.NewWorld(),
		Positions:   ecs.NewPtrComponentStore[component.Position](),
		Renderables: ecs.NewPtrComponentStore[component.Renderable](),
		Names:       ecs.NewComponentStore[component.Name](),
		Viewsheds:   ecs.NewPtrComponentStore[component.Viewshed](),
		Stats:       ecs.NewPtrComponentStore[component.Stats](),
		Players:     ecs.NewComponentStore[component.Player](),
		Monsters:    ecs.NewComponentStore[component.Monster](),
		Blockers:    ecs.NewComponentStore[component.BlocksTile](),
		Serialize:   ecs.NewComponentStore[component.SerializeMe](),
		Items:       ecs.NewComponentStore[component.Item](),
		Consumables: ecs.NewComponentStore[component.Consumable](),
		Backpacks:   ecs.NewComponentStore[component.InBackpack](),
		Ranged:      ecs.NewComponentStore[component.Ranged](),
		AreaEffects: ecs.NewComponentStore[component.AreaOfEffect](),
		ItemEffects: ecs.NewPtrComponentStore[component.ItemEffects](),
		Spells:      ecs.NewComponentStore[component.Spell](),
		KnownSpells: ecs.NewComponentStore[component.KnownSpell](),
		Intents:     ecs.NewComponentStore[component.Intent](),
	}
	s.ECS.Registry().Register(
		s.Positions, s.Renderables, s.Names, s.Viewsheds, s.Stats,
		s.Players, s.Monsters, s.Blockers, s.Serialize,
		s.Items, s.Consumables, s.Backpacks, s.Ranged, s.AreaEffects,
		s.ItemEffects, s.Spells, s.KnownSpells, s.Intents,
	)
	return s
}

// Map returns the current level. Systems hold the State, not the map, because
// the map is replaced wholesale on descent.
func (s *State) Map() *Map { return s.level }

func (s *State) SetMap(m *Map) { s.level = m }

// NameOf returns the display name, or "something" for unnamed entities.
func (s *State) NameOf(id ecs.EntityID) string {
	if n, ok := s.Names.Get(id); ok {
		return string(n)
	}
	return "something"
}

// PlayerID returns the registered player entity.
func (s *State) PlayerID() ecs.EntityID { return s.Player }

// IsPlayer reports whether id is the registered player entity.
func (s *State) IsPlayer(id ecs.EntityID) bool {
	return !id.IsZero() && id == s.Player
}

// TileOf returns the tile index an entity stands on. Backpack items resolve
// to their owner's tile.
func (s *State) TileOf(id ecs.EntityID) (int, bool) {
	if s.level == nil || !s.ECS.Alive(id) {
		return 0, false
	}
	if pack, ok := s.Backpacks.Get(id); ok {
		id = pack.Owner
	}
	pos, ok := s.Positions.Get(id)
	if !ok || !s.level.InBounds(pos.X, pos.Y) {
		return 0, false
	}
	return s.level.Idx(pos.X, pos.Y), true
}

// Backpack returns the items owned by id in entity order.
func (s *State) Backpack(owner ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	s.Backpacks.Each(func(id ecs.EntityID, b component.InBackpack) {
		if b.Owner == owner {
			out = append(out, id)
		}
	})
	return out
}

// SpellByHotkey returns the owner's spell bound to key.
func (s *State) SpellByHotkey(owner ecs.EntityID, key int) (ecs.EntityID, bool) {
	for _, id := range s.Spells.IDs() {
		sp, _ := s.Spells.Get(id)
		known, ok := s.KnownSpells.Get(id)
		if ok && known.Owner == owner && sp.Hotkey == key {
			return id, true
		}
	}
	return 0, false
}

// DirtyAll marks every viewshed for recomputation.
func (s *State) DirtyAll() {
	s.Viewsheds.Each(func(_ ecs.EntityID, v *component.Viewshed) { v.Dirty = true })
}
