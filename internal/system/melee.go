package system

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/effects"
	"github.com/delvegame/delve/internal/gamelog"
	"github.com/delvegame/delve/internal/scripting"
)

// MeleeSystem turns melee intents into damage effects. Each intent is
// consumed whether or not it landed.
type MeleeSystem struct {
	level    Level
	intents  *ecs.ComponentStore[component.Intent]
	stats    *ecs.PtrComponentStore[component.Stats]
	names    *ecs.ComponentStore[component.Name]
	queue    *effects.Queue
	formulas scripting.Formulas
	msgs     *gamelog.Log
}

func NewMeleeSystem(level Level,
	intents *ecs.ComponentStore[component.Intent],
	stats *ecs.PtrComponentStore[component.Stats],
	names *ecs.ComponentStore[component.Name],
	queue *effects.Queue,
	formulas scripting.Formulas,
	msgs *gamelog.Log,
) *MeleeSystem {
	return &MeleeSystem{
		level:    level,
		intents:  intents,
		stats:    stats,
		names:    names,
		queue:    queue,
		formulas: formulas,
		msgs:     msgs,
	}
}

func (s *MeleeSystem) Phase() coresys.Phase { return coresys.PhaseMelee }

func (s *MeleeSystem) Update() error {
	for _, id := range s.intents.IDs() {
		in, _ := s.intents.Get(id)
		melee, ok := in.(component.MeleeIntent)
		if !ok {
			continue
		}
		s.intents.Remove(id)

		atk, ok := s.stats.Get(id)
		if !ok || !atk.Alive() {
			continue
		}
		def, ok := s.stats.Get(melee.Target)
		if !ok || !def.Alive() {
			continue
		}

		hp := def.Get(component.PoolHitPoints)
		dmg := s.formulas.MeleeDamage(scripting.MeleeContext{
			AttackerPower:   atk.Power,
			AttackerHP:      atk.Get(component.PoolHitPoints).Current,
			DefenderDefense: def.Defense,
			DefenderHP:      hp.Current,
			DefenderMaxHP:   hp.Max,
			Depth:           s.level.Map().Depth,
		})
		if dmg <= 0 {
			s.msgs.Addf("%s is unable to hurt %s", nameOf(s.names, id), nameOf(s.names, melee.Target))
			continue
		}
		s.queue.Enqueue(id, effects.Damage{Amount: dmg}, effects.Single{Entity: melee.Target})
		s.msgs.Addf("%s hits %s, for %d hp.", nameOf(s.names, id), nameOf(s.names, melee.Target), dmg)
	}
	return nil
}

func nameOf(names *ecs.ComponentStore[component.Name], id ecs.EntityID) string {
	if n, ok := names.Get(id); ok {
		return string(n)
	}
	return "Something"
}
