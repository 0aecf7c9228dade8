package system

import (
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/core/event"
	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/gamelog"
	"github.com/delvegame/delve/internal/world"
)

// DeathSystem sweeps entities whose hit points ran out. Non-players are
// queued for destruction along with what they carry; a dead player ends
// the run with ErrPlayerDead.
type DeathSystem struct {
	ws         *world.State
	bus        *event.Bus
	msgs       *gamelog.Log
	bloodstain bool
	log        *zap.Logger
}

func NewDeathSystem(ws *world.State, bus *event.Bus, msgs *gamelog.Log, bloodstain bool, log *zap.Logger) *DeathSystem {
	return &DeathSystem{ws: ws, bus: bus, msgs: msgs, bloodstain: bloodstain, log: log}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhaseSweep }

func (s *DeathSystem) Update() error {
	playerDead := false
	for _, id := range s.ws.Stats.IDs() {
		st, _ := s.ws.Stats.Get(id)
		if st.Alive() || s.ws.ECS.Pending(id) {
			continue
		}
		if s.ws.IsPlayer(id) {
			playerDead = true
			continue
		}
		s.kill(id)
	}

	if playerDead {
		s.msgs.Add("You are dead!")
		return ErrPlayerDead
	}
	return nil
}

func (s *DeathSystem) kill(id ecs.EntityID) {
	name := s.ws.NameOf(id)
	ev := event.EntityKilled{Victim: id, Name: name}
	if pos, ok := s.ws.Positions.Get(id); ok {
		ev.X, ev.Y = pos.X, pos.Y
		m := s.ws.Map()
		if s.bloodstain && m.InBounds(pos.X, pos.Y) {
			m.AddBloodstain(m.Idx(pos.X, pos.Y))
		}
		if s.ws.Blockers.Has(id) && m.InBounds(pos.X, pos.Y) {
			m.Blocked[m.Idx(pos.X, pos.Y)] = false
		}
	}

	s.msgs.Addf("%s is no more", name)
	s.ws.ECS.MarkForDestruction(id)
	for _, item := range s.ws.Backpack(id) {
		s.ws.ECS.MarkForDestruction(item)
	}
	event.Emit(s.bus, ev)
	s.log.Debug("entity died", zap.Uint64("entity", uint64(id)), zap.String("name", name))
}
