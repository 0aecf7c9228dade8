package system

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/world"
)

// usableBy reports whether user may activate item: it must be carried in
// the user's backpack or be a spell the user knows.
func usableBy(ws *world.State, user, item ecs.EntityID) bool {
	if !ws.ECS.Alive(item) || ws.ECS.Pending(item) {
		return false
	}
	if pack, ok := ws.Backpacks.Get(item); ok {
		return pack.Owner == user
	}
	if known, ok := ws.KnownSpells.Get(item); ok {
		return known.Owner == user && ws.Spells.Has(item)
	}
	return false
}

// manaShort reports whether a spell costs more mana than user holds. The
// cast still goes through; the effects pipeline bills the difference in hp.
func manaShort(ws *world.State, user, item ecs.EntityID) bool {
	fx, ok := ws.ItemEffects.Get(item)
	if !ok || fx.CostsMana <= 0 {
		return false
	}
	st, ok := ws.Stats.Get(user)
	if !ok {
		return false
	}
	return st.Get(component.PoolMana).Current < fx.CostsMana
}
