// Package mapgen builds dungeon levels and populates them from raw archetypes.
package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/world"
)

// ErrDegenerateMap means no room could be placed. Callers must not start a
// run on such a map.
var ErrDegenerateMap = errors.New("degenerate map: no rooms placed")

// Builder produces a level and the player start position.
type Builder interface {
	Build(depth, width, height int, seed int64) (*world.Map, geom.Point, error)
}

// ConnectPolicy selects which earlier room a new room is tunnelled to.
type ConnectPolicy int

const (
	// ConnectNearest joins each room to the closest already placed room
	// (Euclidean center distance).
	ConnectNearest ConnectPolicy = iota
	// ConnectSequential joins each room to the one placed just before it.
	ConnectSequential
)

func (p ConnectPolicy) String() string {
	if p == ConnectSequential {
		return "sequential"
	}
	return "nearest"
}

// ParsePolicy maps a config value to a policy.
func ParsePolicy(s string) (ConnectPolicy, error) {
	switch s {
	case "", "nearest":
		return ConnectNearest, nil
	case "sequential":
		return ConnectSequential, nil
	}
	return ConnectNearest, fmt.Errorf("unknown connect policy %q", s)
}

// RoomsAndCorridors places non-overlapping rectangular rooms and joins them
// with L-shaped tunnels.
type RoomsAndCorridors struct {
	MaxRooms int
	MinSize  int
	MaxSize  int
	Policy   ConnectPolicy
}

func NewRoomsAndCorridors() *RoomsAndCorridors {
	return &RoomsAndCorridors{MaxRooms: 30, MinSize: 6, MaxSize: 10, Policy: ConnectNearest}
}

func (b *RoomsAndCorridors) Build(depth, width, height int, seed int64) (*world.Map, geom.Point, error) {
	rng := rand.New(rand.NewSource(seed))
	m := world.NewMap(width, height, depth)

	span := max(b.MaxSize-b.MinSize+1, 1)
	for i := 0; i < b.MaxRooms; i++ {
		w := b.MinSize + rng.Intn(span)
		h := b.MinSize + rng.Intn(span)
		// interior spans x+1..x+w, so x+w <= width-2 keeps a solid border
		if width-w-1 < 1 || height-h-1 < 1 {
			continue
		}
		x := rng.Intn(width-w-1)
		y := rng.Intn(height-h-1)
		room := world.NewRect(x, y, w, h)

		ok := true
		for _, other := range m.Rooms {
			if room.Intersects(other) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		carveRoom(m, room)
		if len(m.Rooms) > 0 {
			from := room.Center()
			to := m.Rooms[b.connectTarget(m.Rooms, room)].Center()
			if rng.Intn(2) == 1 {
				carveHorizontal(m, to.X, from.X, to.Y)
				carveVertical(m, to.Y, from.Y, from.X)
			} else {
				carveVertical(m, to.Y, from.Y, to.X)
				carveHorizontal(m, to.X, from.X, from.Y)
			}
		}
		m.Rooms = append(m.Rooms, room)
	}

	if len(m.Rooms) == 0 {
		return nil, geom.Point{}, fmt.Errorf("depth %d, %dx%d: %w", depth, width, height, ErrDegenerateMap)
	}

	stairs := m.Rooms[len(m.Rooms)-1].Center()
	m.SetTile(stairs.X, stairs.Y, world.TileDownStairs)
	m.PopulateBlocked()
	return m, m.Rooms[0].Center(), nil
}

// connectTarget returns the index of the placed room the new one joins.
func (b *RoomsAndCorridors) connectTarget(placed []world.Rect, room world.Rect) int {
	if b.Policy == ConnectSequential {
		return len(placed) - 1
	}
	c := room.Center()
	best, bestDist := 0, geom.Distance(c, placed[0].Center())
	for i := 1; i < len(placed); i++ {
		if d := geom.Distance(c, placed[i].Center()); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func carveRoom(m *world.Map, r world.Rect) {
	r.Interior(func(x, y int) { m.SetTile(x, y, world.TileFloor) })
}

func carveHorizontal(m *world.Map, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.SetTile(x, y, world.TileFloor)
	}
}

func carveVertical(m *world.Map, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.SetTile(x, y, world.TileFloor)
	}
}
