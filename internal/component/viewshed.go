package component

import "github.com/delvegame/delve/internal/geom"

// Viewshed is an entity's visible tile set. VisibleTiles is valid only while
// Dirty is false; anything that moves the entity or changes the map around it
// must set Dirty.
type Viewshed struct {
	VisibleTiles map[geom.Point]struct{} `json:"-"`
	Range        int                     `json:"range"`
	Dirty        bool                    `json:"dirty"`
}

func NewViewshed(r int) *Viewshed {
	return &Viewshed{VisibleTiles: make(map[geom.Point]struct{}), Range: r, Dirty: true}
}

func (v *Viewshed) Sees(p geom.Point) bool {
	_, ok := v.VisibleTiles[p]
	return ok
}
