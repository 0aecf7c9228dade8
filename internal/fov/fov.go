// Package fov computes visible tile sets with symmetric shadowcasting: if A
// sees B then B sees A, walls are visible, and floor tiles are visible only
// when their center is in view.
package fov

import "github.com/delvegame/delve/internal/geom"

// Grid is the opacity source. Tiles outside InBounds are treated as opaque
// and never reported.
type Grid interface {
	InBounds(x, y int) bool
	IsOpaque(x, y int) bool
}

// slope is the rational num/den with den > 0.
type slope struct{ num, den int }

type row struct {
	depth      int
	start, end slope
}

// quadrant maps (depth, col) to world coordinates.
type quadrant func(origin geom.Point, depth, col int) geom.Point

var quadrants = [4]quadrant{
	func(o geom.Point, d, c int) geom.Point { return geom.Point{X: o.X + c, Y: o.Y - d} }, // north
	func(o geom.Point, d, c int) geom.Point { return geom.Point{X: o.X + d, Y: o.Y + c} }, // east
	func(o geom.Point, d, c int) geom.Point { return geom.Point{X: o.X + c, Y: o.Y + d} }, // south
	func(o geom.Point, d, c int) geom.Point { return geom.Point{X: o.X - d, Y: o.Y + c} }, // west
}

// Compute returns every tile visible from origin within a Euclidean radius.
// The origin is always visible when in bounds.
func Compute(origin geom.Point, radius int, g Grid) map[geom.Point]struct{} {
	seen := make(map[geom.Point]struct{}, (2*radius+1)*(2*radius+1)/2)
	if !g.InBounds(origin.X, origin.Y) || radius < 0 {
		return seen
	}
	seen[origin] = struct{}{}
	for _, q := range quadrants {
		s := scanner{origin: origin, radius: radius, grid: g, q: q, seen: seen}
		s.scan(row{depth: 1, start: slope{-1, 1}, end: slope{1, 1}})
	}
	return seen
}

type scanner struct {
	origin geom.Point
	radius int
	grid   Grid
	q      quadrant
	seen   map[geom.Point]struct{}
}

func (s *scanner) scan(r row) {
	if r.depth > s.radius {
		return
	}
	minCol := roundTiesUp(r.depth, r.start)
	maxCol := roundTiesDown(r.depth, r.end)

	prevWall, havePrev := false, false
	for col := minCol; col <= maxCol; col++ {
		p := s.q(s.origin, r.depth, col)
		wall := s.opaque(p)
		if (wall || symmetric(r, col)) && s.inRange(r.depth, col) && s.grid.InBounds(p.X, p.Y) {
			s.seen[p] = struct{}{}
		}
		if havePrev && prevWall && !wall {
			r.start = tileSlope(r.depth, col)
		}
		if havePrev && !prevWall && wall {
			next := row{depth: r.depth + 1, start: r.start, end: tileSlope(r.depth, col)}
			s.scan(next)
		}
		prevWall, havePrev = wall, true
	}
	if havePrev && !prevWall {
		s.scan(row{depth: r.depth + 1, start: r.start, end: r.end})
	}
}

func (s *scanner) opaque(p geom.Point) bool {
	return !s.grid.InBounds(p.X, p.Y) || s.grid.IsOpaque(p.X, p.Y)
}

func (s *scanner) inRange(depth, col int) bool {
	return depth*depth+col*col <= s.radius*s.radius
}

func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

// symmetric reports whether the tile center lies inside the row's sector.
func symmetric(r row, col int) bool {
	return col*r.start.den >= r.depth*r.start.num && col*r.end.den <= r.depth*r.end.num
}

// roundTiesUp is floor(depth*s + 1/2).
func roundTiesUp(depth int, s slope) int {
	return floorDiv(2*depth*s.num+s.den, 2*s.den)
}

// roundTiesDown is ceil(depth*s - 1/2).
func roundTiesDown(depth int, s slope) int {
	return -floorDiv(-(2*depth*s.num - s.den), 2*s.den)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
