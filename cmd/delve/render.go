package main

import (
	"github.com/delvegame/delve/internal/component"
	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/geom"
	"github.com/delvegame/delve/internal/world"
)

// renderWorld draws the revealed map with every visible renderable on top,
// lowest Order winning a shared tile. Unrevealed tiles are blank.
func renderWorld(ws *world.State) string {
	m := ws.Map()
	marks := make(map[geom.Point]rune)
	for i, seen := range m.Revealed {
		if !seen {
			marks[m.Point(i)] = ' '
		}
	}
	order := make(map[geom.Point]int)
	ecs.Each2(ws.Positions, ws.Renderables, func(_ ecs.EntityID, pos *component.Position, r *component.Renderable) {
		if !m.InBounds(pos.X, pos.Y) || !m.Visible[m.Idx(pos.X, pos.Y)] {
			return
		}
		p := geom.Pt(pos.X, pos.Y)
		if o, ok := order[p]; ok && o <= r.Order {
			return
		}
		marks[p] = r.Glyph
		order[p] = r.Order
	})
	return m.Render(marks)
}
