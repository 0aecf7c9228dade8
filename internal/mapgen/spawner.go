package mapgen

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/data"
	"github.com/delvegame/delve/internal/world"
)

// maxSpawnRetries bounds resampling when a slot lands on a taken tile.
const maxSpawnRetries = 20

// Budget returns the upper bound of the spawn roll for a depth.
type Budget func(depth, maxSpawns int) int

// Spawner populates rooms from the depth-filtered spawn table.
type Spawner struct {
	Raws      *data.Raws
	MaxSpawns int
	Budget    Budget
	Log       *zap.Logger
}

// PopulateRooms spawns into every room but the first, which holds the player.
// It returns the number of entities created.
func (s *Spawner) PopulateRooms(ws *world.State, m *world.Map, rng *rand.Rand) int {
	n := 0
	for i := 1; i < len(m.Rooms); i++ {
		n += s.SpawnRoom(ws, m, m.Rooms[i], rng)
	}
	return n
}

// SpawnRoom rolls a spawn count, picks distinct floor tiles and instantiates
// a spawn-table pick on each. Placement is applied in tile order.
func (s *Spawner) SpawnRoom(ws *world.State, m *world.Map, room world.Rect, rng *rand.Rand) int {
	table := s.Raws.SpawnTableFor(m.Depth)
	if table.Len() == 0 {
		return 0
	}

	var candidates []int
	room.Interior(func(x, y int) {
		if m.InBounds(x, y) && m.Tiles[m.Idx(x, y)] == world.TileFloor {
			candidates = append(candidates, m.Idx(x, y))
		}
	})
	if len(candidates) == 0 {
		return 0
	}

	budget := s.MaxSpawns
	if s.Budget != nil {
		budget = s.Budget(m.Depth, s.MaxSpawns)
	}
	budget = max(budget, 0)
	// 1d(budget+3) - 3: most rooms stay sparse
	count := rng.Intn(budget+3) + 1 - 3

	points := make(map[int]string, max(count, 0))
	for i := 0; i < count; i++ {
		for tries := 0; tries < maxSpawnRetries; tries++ {
			idx := candidates[rng.Intn(len(candidates))]
			if _, taken := points[idx]; !taken {
				points[idx] = table.Roll(rng)
				break
			}
		}
	}

	tiles := make([]int, 0, len(points))
	for idx := range points {
		tiles = append(tiles, idx)
	}
	sort.Ints(tiles)

	spawned := 0
	for _, idx := range tiles {
		x, y := m.XY(idx)
		if _, err := SpawnNamed(ws, s.Raws, points[idx], x, y); err != nil {
			s.Log.Warn("spawn failed", zap.String("name", points[idx]), zap.Error(err))
			continue
		}
		spawned++
	}
	return spawned
}
