package world

import (
	"strings"

	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/geom"
)

// TileType is the terrain of one map cell.
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
	TileDownStairs
)

func (t TileType) Glyph() rune {
	switch t {
	case TileFloor:
		return '.'
	case TileDownStairs:
		return '>'
	default:
		return '#'
	}
}

// Map is one dungeon level. Tile arrays are flat, row-major: idx = y*Width + x.
// Accessed only from the simulation goroutine; no locks.
type Map struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`

	Tiles    []TileType `json:"tiles"`
	Revealed []bool     `json:"revealed"`
	Visible  []bool     `json:"visible"`
	Blocked  []bool     `json:"-"`

	// TileContent is rebuilt by the indexing system every pass and is stale
	// between passes.
	TileContent [][]ecs.EntityID `json:"-"`

	Rooms       []Rect           `json:"rooms"`
	Bloodstains map[int]struct{} `json:"bloodstains"`
}

// NewMap returns a map of solid wall.
func NewMap(width, height, depth int) *Map {
	n := width * height
	return &Map{
		Width:       width,
		Height:      height,
		Depth:       depth,
		Tiles:       make([]TileType, n),
		Revealed:    make([]bool, n),
		Visible:     make([]bool, n),
		Blocked:     make([]bool, n),
		TileContent: make([][]ecs.EntityID, n),
		Bloodstains: make(map[int]struct{}),
	}
}

// Restore rebuilds the derived arrays of a map decoded from a snapshot.
func (m *Map) Restore() {
	n := m.Width * m.Height
	if len(m.Revealed) != n {
		m.Revealed = make([]bool, n)
	}
	if len(m.Visible) != n {
		m.Visible = make([]bool, n)
	}
	m.Blocked = make([]bool, n)
	m.TileContent = make([][]ecs.EntityID, n)
	if m.Bloodstains == nil {
		m.Bloodstains = make(map[int]struct{})
	}
	m.PopulateBlocked()
}

func (m *Map) Idx(x, y int) int { return y*m.Width + x }

func (m *Map) XY(idx int) (int, int) { return idx % m.Width, idx / m.Width }

func (m *Map) Point(idx int) geom.Point {
	x, y := m.XY(idx)
	return geom.Point{X: x, Y: y}
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

func (m *Map) Tile(x, y int) TileType {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[m.Idx(x, y)]
}

func (m *Map) SetTile(x, y int, t TileType) {
	if m.InBounds(x, y) {
		m.Tiles[m.Idx(x, y)] = t
	}
}

// IsOpaque reports whether a tile blocks sight. Out-of-bounds is false.
func (m *Map) IsOpaque(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[m.Idx(x, y)] == TileWall
}

// IsWall is the renderer's wall-adjacency probe. Out-of-bounds is not a wall.
func (m *Map) IsWall(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[m.Idx(x, y)] == TileWall && m.Revealed[m.Idx(x, y)]
}

// Walkable reports a non-wall, non-blocked, in-bounds tile.
func (m *Map) Walkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	idx := m.Idx(x, y)
	return m.Tiles[idx] != TileWall && !m.Blocked[idx]
}

// PopulateBlocked resets Blocked to the terrain; the indexing system then
// adds tile-blocking entities.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = t == TileWall
	}
}

// --- tile content index ---

func (m *Map) ClearContentIndex() {
	for i := range m.TileContent {
		m.TileContent[i] = m.TileContent[i][:0]
	}
}

func (m *Map) AddContent(idx int, id ecs.EntityID) {
	m.TileContent[idx] = append(m.TileContent[idx], id)
}

// ContentAt returns the indexed occupants of a tile; nil when out of range.
func (m *Map) ContentAt(idx int) []ecs.EntityID {
	if idx < 0 || idx >= len(m.TileContent) {
		return nil
	}
	return m.TileContent[idx]
}

// --- visibility ---

func (m *Map) ClearVisible() {
	for i := range m.Visible {
		m.Visible[i] = false
	}
}

// AddBloodstain inserts idx into the stain set; false when already stained
// or out of range.
func (m *Map) AddBloodstain(idx int) bool {
	if idx < 0 || idx >= len(m.Tiles) {
		return false
	}
	if _, ok := m.Bloodstains[idx]; ok {
		return false
	}
	m.Bloodstains[idx] = struct{}{}
	return true
}

func (m *Map) HasBloodstain(idx int) bool {
	_, ok := m.Bloodstains[idx]
	return ok
}

// FloorTiles returns every non-wall tile index in ascending order.
func (m *Map) FloorTiles() []int {
	out := make([]int, 0, len(m.Tiles)/3)
	for i, t := range m.Tiles {
		if t != TileWall {
			out = append(out, i)
		}
	}
	return out
}

// Render draws the terrain as text, one row per line. Used by `delve gen`.
func (m *Map) Render(marks map[geom.Point]rune) string {
	var b strings.Builder
	b.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if r, ok := marks[geom.Point{X: x, Y: y}]; ok {
				b.WriteRune(r)
				continue
			}
			b.WriteRune(m.Tiles[m.Idx(x, y)].Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
