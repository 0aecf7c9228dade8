package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/world"
)

// reachable flood-fills floor tiles from start (4-connected, as carved).
func reachable(m *world.Map, start geom.Point) map[int]bool {
	seen := map[int]bool{m.Idx(start.X, start.Y): true}
	stack := []geom.Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := p.Add(d[0], d[1])
			if !m.InBounds(n.X, n.Y) || m.Tile(n.X, n.Y) == world.TileWall {
				continue
			}
			if idx := m.Idx(n.X, n.Y); !seen[idx] {
				seen[idx] = true
				stack = append(stack, n)
			}
		}
	}
	return seen
}

func TestGenerationProperties(t *testing.T) {
	for _, policy := range []ConnectPolicy{ConnectNearest, ConnectSequential} {
		b := NewRoomsAndCorridors()
		b.Policy = policy
		for seed := int64(1); seed <= 40; seed++ {
			m, start, err := b.Build(1, 80, 43, seed)
			require.NoError(t, err)
			require.NotEmpty(t, m.Rooms)

			assert.Equal(t, m.Rooms[0].Center(), start, "%s seed %d", policy, seed)

			for i := range m.Rooms {
				for j := i + 1; j < len(m.Rooms); j++ {
					assert.False(t, m.Rooms[i].Intersects(m.Rooms[j]), "%s seed %d rooms %d/%d overlap", policy, seed, i, j)
				}
			}

			seen := reachable(m, start)
			for i, r := range m.Rooms {
				c := r.Center()
				assert.True(t, seen[m.Idx(c.X, c.Y)], "%s seed %d room %d unreachable", policy, seed, i)
			}

			stairs := m.Rooms[len(m.Rooms)-1].Center()
			assert.Equal(t, world.TileDownStairs, m.Tile(stairs.X, stairs.Y))

			for x := 0; x < m.Width; x++ {
				assert.Equal(t, world.TileWall, m.Tile(x, 0))
				assert.Equal(t, world.TileWall, m.Tile(x, m.Height-1))
			}
			for y := 0; y < m.Height; y++ {
				assert.Equal(t, world.TileWall, m.Tile(0, y))
				assert.Equal(t, world.TileWall, m.Tile(m.Width-1, y))
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewRoomsAndCorridors()
	a, sa, err := b.Build(2, 60, 30, 99)
	require.NoError(t, err)
	c, sc, err := b.Build(2, 60, 30, 99)
	require.NoError(t, err)
	assert.Equal(t, a.Tiles, c.Tiles)
	assert.Equal(t, sa, sc)
	assert.Equal(t, 2, a.Depth)
}

func TestDegenerateMap(t *testing.T) {
	b := NewRoomsAndCorridors()
	m, _, err := b.Build(1, 6, 6, 7)
	assert.ErrorIs(t, err, ErrDegenerateMap)
	assert.Nil(t, m)

	b.MaxRooms = 0
	_, _, err = b.Build(1, 80, 43, 7)
	assert.ErrorIs(t, err, ErrDegenerateMap)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("sequential")
	require.NoError(t, err)
	assert.Equal(t, ConnectSequential, p)
	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ConnectNearest, p)
	_, err = ParsePolicy("bogus")
	assert.Error(t, err)
}
