// Package navigation builds weighted Dijkstra distance fields used by
// monsters to step toward a goal.
package navigation

import "github.com/delvegame/delve/internal/geom"

// Direction vectors, N clockwise to NW.
var dirVectors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Weighted edge costs: cardinal = 10, diagonal = 14 (≈10√2)
const (
	costCardinal    = 10
	costDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

var dirCosts = [8]int{
	costCardinal, costDiagonal, costCardinal, costDiagonal,
	costCardinal, costDiagonal, costCardinal, costDiagonal,
}

// Blocked reports whether a cell cannot be entered. Called only in bounds.
type Blocked func(x, y int) bool

// --- Min-heap for Dijkstra ---

type heapEntry struct {
	idx  int
	dist int
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// Field holds weighted distances from a goal cell.
type Field struct {
	Width, Height int
	Goal          geom.Point
	dist          []int
	heap          minHeap
}

func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		dist:   make([]int, width*height),
		heap:   make(minHeap, 0, width*height/4),
	}
}

func (f *Field) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// Compute runs Dijkstra outward from goal. The goal itself is never tested
// against blocked, so an occupied goal tile still anchors the field.
func (f *Field) Compute(goal geom.Point, blocked Blocked) {
	for i := range f.dist {
		f.dist[i] = costUnreachable
	}
	f.Goal = goal
	if !f.inBounds(goal.X, goal.Y) {
		return
	}
	w := f.Width
	start := goal.Y*w + goal.X
	f.dist[start] = 0
	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: start})

	for len(f.heap) > 0 {
		e := f.heap.pop()
		if e.dist > f.dist[e.idx] {
			continue
		}
		cx, cy := e.idx%w, e.idx/w
		for d, v := range dirVectors {
			nx, ny := cx+v[0], cy+v[1]
			if !f.inBounds(nx, ny) || blocked(nx, ny) {
				continue
			}
			// no corner cutting
			if v[0] != 0 && v[1] != 0 && (blocked(cx+v[0], cy) || blocked(cx, cy+v[1])) {
				continue
			}
			n := ny*w + nx
			if nd := e.dist + dirCosts[d]; nd < f.dist[n] {
				f.dist[n] = nd
				f.heap.push(heapEntry{idx: n, dist: nd})
			}
		}
	}
}

// Distance returns the weighted distance to the goal, -1 when unreachable.
func (f *Field) Distance(x, y int) int {
	if !f.inBounds(x, y) {
		return -1
	}
	d := f.dist[y*f.Width+x]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// Step returns the neighbor of from with the lowest distance to the goal.
// ok is false when no neighbor is reachable.
func (f *Field) Step(from geom.Point) (geom.Point, bool) {
	best := costUnreachable
	var next geom.Point
	for _, v := range dirVectors {
		nx, ny := from.X+v[0], from.Y+v[1]
		if !f.inBounds(nx, ny) {
			continue
		}
		if d := f.dist[ny*f.Width+nx]; d < best {
			best = d
			next = geom.Point{X: nx, Y: ny}
		}
	}
	return next, best < costUnreachable
}
