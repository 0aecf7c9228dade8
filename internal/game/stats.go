package game

import (
	"github.com/delvegame/delve/internal/core/event"
)

// RunStats is the end-of-run summary, fed by bus events.
type RunStats struct {
	Kills       int
	Pickups     int
	Deepest     int
	Turns       int
	LevelsSeen  int
	LastVictim  string
}

func (r *RunStats) subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(e event.EntityKilled) {
		if !e.Player {
			r.Kills++
			r.LastVictim = e.Name
		}
	})
	event.Subscribe(bus, func(e event.ItemPickedUp) {
		r.Pickups++
	})
	event.Subscribe(bus, func(e event.LevelEntered) {
		r.LevelsSeen++
		r.Deepest = max(r.Deepest, e.Depth)
	})
}
