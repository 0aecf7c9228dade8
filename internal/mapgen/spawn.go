package mapgen

import (
	"fmt"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/data"
	"github.com/delvegame/delve/internal/world"
)

// SpawnNamed instantiates an item or mob archetype at (x, y).
func SpawnNamed(ws *world.State, raws *data.Raws, name string, x, y int) (ecs.EntityID, error) {
	if it := raws.Item(name); it != nil {
		id := SpawnItem(ws, it)
		ws.Positions.Set(id, &component.Position{X: x, Y: y})
		return id, nil
	}
	if mob := raws.Mob(name); mob != nil {
		return SpawnMob(ws, mob, x, y), nil
	}
	return 0, fmt.Errorf("unknown archetype %q", name)
}

// SpawnItem creates an item with no location; callers add a Position or an
// InBackpack owner.
func SpawnItem(ws *world.State, t *data.ItemTemplate) ecs.EntityID {
	id := ws.ECS.CreateEntity()
	ws.Names.Set(id, component.Name(t.Name))
	ws.Items.Set(id, component.Item{})
	ws.Serialize.Set(id, component.SerializeMe{})
	if t.Renderable != nil {
		ws.Renderables.Set(id, t.Renderable.Component())
	}
	if t.Consumable {
		ws.Consumables.Set(id, component.Consumable{})
	}
	applyEffects(ws, id, t)
	return id
}

// SpawnSpell creates a spell known by owner and bound to hotkey.
func SpawnSpell(ws *world.State, t *data.ItemTemplate, owner ecs.EntityID, hotkey int) ecs.EntityID {
	id := ws.ECS.CreateEntity()
	ws.Names.Set(id, component.Name(t.Name))
	ws.Spells.Set(id, component.Spell{Hotkey: hotkey})
	ws.KnownSpells.Set(id, component.KnownSpell{Owner: owner})
	ws.Serialize.Set(id, component.SerializeMe{})
	applyEffects(ws, id, t)
	return id
}

// SpawnMob creates a monster at (x, y).
func SpawnMob(ws *world.State, t *data.MobTemplate, x, y int) ecs.EntityID {
	id := ws.ECS.CreateEntity()
	ws.Positions.Set(id, &component.Position{X: x, Y: y})
	ws.Names.Set(id, component.Name(t.Name))
	ws.Monsters.Set(id, component.Monster{})
	ws.Serialize.Set(id, component.SerializeMe{})
	if t.Renderable != nil {
		ws.Renderables.Set(id, t.Renderable.Component())
	}
	stats := component.NewStats(t.Stats.Power, t.Stats.Defense, t.Stats.MaxHP, 0)
	stats.Pools[component.PoolHitPoints].Current = t.Stats.HP
	ws.Stats.Set(id, stats)
	ws.Viewsheds.Set(id, component.NewViewshed(t.VisionRange))
	if t.BlocksTile {
		ws.Blockers.Set(id, component.BlocksTile{})
	}
	return id
}

func applyEffects(ws *world.State, id ecs.EntityID, t *data.ItemTemplate) {
	if t.HasEffects() {
		ws.ItemEffects.Set(id, t.ItemEffects())
	}
	if t.Effects.Ranged > 0 {
		ws.Ranged.Set(id, component.Ranged{Range: t.Effects.Ranged})
	}
	if t.Effects.AreaOfEffect > 0 {
		ws.AreaEffects.Set(id, component.AreaOfEffect{Radius: t.Effects.AreaOfEffect})
	}
}
