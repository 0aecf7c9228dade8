package system

import (
	"sort"

	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/core/event"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/effects"
	"github.com/delvegame/delve/internal/fov"
	"github.com/delvegame/delve/internal/gamelog"
	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/world"
)

// ItemSystem resolves pickup, use and drop intents.
type ItemSystem struct {
	ws    *world.State
	queue *effects.Queue
	bus   *event.Bus
	msgs  *gamelog.Log
	log   *zap.Logger
}

func NewItemSystem(ws *world.State, queue *effects.Queue, bus *event.Bus, msgs *gamelog.Log, log *zap.Logger) *ItemSystem {
	return &ItemSystem{ws: ws, queue: queue, bus: bus, msgs: msgs, log: log}
}

func (s *ItemSystem) Phase() coresys.Phase { return coresys.PhaseItems }

func (s *ItemSystem) Update() error {
	for _, id := range s.ws.Intents.IDs() {
		in, _ := s.ws.Intents.Get(id)
		switch it := in.(type) {
		case component.PickupIntent:
			s.ws.Intents.Remove(id)
			s.pickup(id, it.Item)
		case component.UseItemIntent:
			s.ws.Intents.Remove(id)
			s.use(id, it)
		case component.DropIntent:
			s.ws.Intents.Remove(id)
			s.drop(id, it.Item)
		}
	}
	return nil
}

// ==================== Pickup ====================

func (s *ItemSystem) pickup(who, item ecs.EntityID) {
	if item.IsZero() {
		item = s.itemUnder(who)
	}
	pos, ok := s.ws.Positions.Get(item)
	whoPos, whoOK := s.ws.Positions.Get(who)
	if item.IsZero() || !ok || !whoOK || !s.ws.Items.Has(item) || *pos != *whoPos {
		if s.ws.IsPlayer(who) {
			s.msgs.Add("There is nothing here to pick up.")
		}
		return
	}

	s.ws.Positions.Remove(item)
	s.ws.Backpacks.Set(item, component.InBackpack{Owner: who})
	name := s.ws.NameOf(item)
	if s.ws.IsPlayer(who) {
		s.msgs.Addf("You pick up the %s.", name)
	} else {
		s.msgs.Addf("%s picks up the %s.", s.ws.NameOf(who), name)
	}
	event.Emit(s.bus, event.ItemPickedUp{Item: item, Owner: who, Name: name})
}

// itemUnder returns the lowest-id item lying on who's tile.
func (s *ItemSystem) itemUnder(who ecs.EntityID) ecs.EntityID {
	at, ok := s.ws.Positions.Get(who)
	if !ok {
		return 0
	}
	for _, id := range s.ws.Items.IDs() {
		if pos, ok := s.ws.Positions.Get(id); ok && *pos == *at {
			return id
		}
	}
	return 0
}

// ==================== Use ====================

func (s *ItemSystem) use(who ecs.EntityID, it component.UseItemIntent) {
	if !usableBy(s.ws, who, it.Item) {
		s.log.Debug("item not usable", zap.Uint64("user", uint64(who)), zap.Uint64("item", uint64(it.Item)))
		return
	}

	targets, ok := s.targetsFor(who, it)
	if !ok {
		if s.ws.IsPlayer(who) {
			s.msgs.Add("That is out of range.")
		}
		return
	}
	if s.ws.IsPlayer(who) {
		if manaShort(s.ws, who, it.Item) {
			s.msgs.Addf("You lack the mana to cast %s.", s.ws.NameOf(it.Item))
		}
		s.msgs.Addf("You use the %s.", s.ws.NameOf(it.Item))
	}
	s.queue.Enqueue(who, effects.ItemUse{Item: it.Item}, targets)
}

// targetsFor resolves where an item lands: the user itself when untargeted,
// the area around the target tile for area items, else the single tile.
func (s *ItemSystem) targetsFor(who ecs.EntityID, it component.UseItemIntent) (effects.Targets, bool) {
	if it.Target == nil {
		return effects.Single{Entity: who}, true
	}
	m := s.ws.Map()
	target := *it.Target
	if !m.InBounds(target.X, target.Y) {
		return nil, false
	}
	if r, ok := s.ws.Ranged.Get(it.Item); ok {
		pos, ok := s.ws.Positions.Get(who)
		if !ok || geom.Distance(geom.Point{X: pos.X, Y: pos.Y}, target) > float64(r.Range) {
			return nil, false
		}
	}

	aoe, ok := s.ws.AreaEffects.Get(it.Item)
	if !ok {
		return effects.Tile{Idx: m.Idx(target.X, target.Y)}, true
	}
	area := fov.Compute(target, aoe.Radius, m)
	idxs := make([]int, 0, len(area))
	for p := range area {
		idxs = append(idxs, m.Idx(p.X, p.Y))
	}
	sort.Ints(idxs)
	return effects.TileList{Idxs: idxs}, true
}

// ==================== Drop ====================

func (s *ItemSystem) drop(who, item ecs.EntityID) {
	pack, ok := s.ws.Backpacks.Get(item)
	if !ok || pack.Owner != who {
		return
	}
	pos, ok := s.ws.Positions.Get(who)
	if !ok {
		return
	}
	s.ws.Backpacks.Remove(item)
	s.ws.Positions.Set(item, &component.Position{X: pos.X, Y: pos.Y})
	if s.ws.IsPlayer(who) {
		s.msgs.Addf("You drop the %s.", s.ws.NameOf(item))
	}
}
