package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/geom"
)

func TestMapOutOfBoundsProbes(t *testing.T) {
	m := NewMap(10, 5, 1)
	for _, p := range []geom.Point{{X: -1, Y: 0}, {X: 10, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 5}} {
		assert.False(t, m.IsWall(p.X, p.Y))
		assert.False(t, m.IsOpaque(p.X, p.Y))
		assert.False(t, m.Walkable(p.X, p.Y))
	}
	assert.True(t, m.IsOpaque(0, 0))
}

func TestMapIndexRoundTrip(t *testing.T) {
	m := NewMap(7, 4, 1)
	for idx := 0; idx < 28; idx++ {
		x, y := m.XY(idx)
		assert.Equal(t, idx, m.Idx(x, y))
	}
}

func TestBloodstainIsIdempotent(t *testing.T) {
	m := NewMap(4, 4, 1)
	assert.True(t, m.AddBloodstain(5))
	assert.False(t, m.AddBloodstain(5))
	assert.False(t, m.AddBloodstain(99))
	assert.Len(t, m.Bloodstains, 1)
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(1, 1, 4, 4)
	assert.True(t, a.Intersects(NewRect(5, 5, 3, 3)), "shared edge counts")
	assert.False(t, a.Intersects(NewRect(6, 1, 3, 3)))
	assert.Equal(t, geom.Pt(3, 3), a.Center())
}

func TestStateTileOfBackpackItem(t *testing.T) {
	s := NewState()
	s.SetMap(NewMap(10, 10, 1))
	owner := s.ECS.CreateEntity()
	s.Positions.Set(owner, &component.Position{X: 2, Y: 3})
	item := s.ECS.CreateEntity()
	s.Backpacks.Set(item, component.InBackpack{Owner: owner})

	idx, ok := s.TileOf(item)
	require.True(t, ok)
	assert.Equal(t, 32, idx)
	assert.Equal(t, []ecs.EntityID{item}, s.Backpack(owner))

	s.ECS.Destroy(owner)
	_, ok = s.TileOf(owner)
	assert.False(t, ok)
}
