package fov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delvegame/delve/internal/geom"
)

type grid struct {
	w, h  int
	walls map[geom.Point]bool
}

func (g grid) InBounds(x, y int) bool { return x >= 0 && y >= 0 && x < g.w && y < g.h }
func (g grid) IsOpaque(x, y int) bool { return g.walls[geom.Pt(x, y)] }

func open(w, h int) grid { return grid{w: w, h: h, walls: map[geom.Point]bool{}} }

func TestOpenRoomRadius(t *testing.T) {
	g := open(21, 21)
	seen := Compute(geom.Pt(10, 10), 3, g)

	assert.Contains(t, seen, geom.Pt(10, 10))
	assert.Contains(t, seen, geom.Pt(13, 10))
	assert.Contains(t, seen, geom.Pt(12, 12))
	assert.NotContains(t, seen, geom.Pt(14, 10))
	assert.NotContains(t, seen, geom.Pt(13, 13), "corner is outside the euclidean radius")
	for p := range seen {
		assert.LessOrEqual(t, geom.Distance(p, geom.Pt(10, 10)), 3.0)
	}
}

func TestClippedToBounds(t *testing.T) {
	g := open(5, 5)
	seen := Compute(geom.Pt(0, 0), 8, g)
	for p := range seen {
		assert.True(t, g.InBounds(p.X, p.Y), "%v out of bounds", p)
	}
	assert.Len(t, seen, 25)
}

func TestWallBlocksSight(t *testing.T) {
	g := open(11, 3)
	g.walls[geom.Pt(5, 1)] = true
	seen := Compute(geom.Pt(2, 1), 8, g)

	assert.Contains(t, seen, geom.Pt(5, 1), "walls themselves are visible")
	assert.NotContains(t, seen, geom.Pt(6, 1))
	assert.NotContains(t, seen, geom.Pt(9, 1))
}

func TestSymmetry(t *testing.T) {
	g := open(15, 15)
	for _, p := range []geom.Point{{X: 4, Y: 4}, {X: 6, Y: 9}, {X: 10, Y: 5}, {X: 7, Y: 7}} {
		g.walls[p] = true
	}
	floor := func(p geom.Point) bool { return g.InBounds(p.X, p.Y) && !g.walls[p] }
	from := geom.Pt(2, 3)
	a := Compute(from, 20, g)
	for p := range a {
		if !floor(p) {
			continue
		}
		b := Compute(p, 20, g)
		assert.Contains(t, b, from, "%v sees %v but not back", from, p)
	}
}

func TestOriginOutOfBounds(t *testing.T) {
	assert.Empty(t, Compute(geom.Pt(-1, 2), 4, open(3, 3)))
}
