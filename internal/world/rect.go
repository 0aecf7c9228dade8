package world

import "github.com/delvegame/delve/internal/geom"

// Rect is an axis-aligned room rectangle. X2/Y2 are exclusive of the carved
// interior: a room covers tiles X1+1..X2 and Y1+1..Y2.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Intersects reports whether r and o overlap, edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

func (r Rect) Center() geom.Point {
	return geom.Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Interior calls fn for every tile of the carved room area.
func (r Rect) Interior(fn func(x, y int)) {
	for y := r.Y1 + 1; y <= r.Y2; y++ {
		for x := r.X1 + 1; x <= r.X2; x++ {
			fn(x, y)
		}
	}
}
