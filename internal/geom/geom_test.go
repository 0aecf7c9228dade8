package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineEndpoints(t *testing.T) {
	pts := Line(Pt(1, 1), Pt(5, 3))
	assert.Equal(t, Pt(1, 1), pts[0])
	assert.Equal(t, Pt(5, 3), pts[len(pts)-1])
	assert.Len(t, pts, 5)
	for i := 1; i < len(pts); i++ {
		assert.Equal(t, 1, Chebyshev(pts[i-1], pts[i]))
	}
}

func TestLineSinglePoint(t *testing.T) {
	assert.Equal(t, []Point{Pt(3, 3)}, Line(Pt(3, 3), Pt(3, 3)))
}

func TestDistances(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)), 1e-9)
	assert.Equal(t, 4, Chebyshev(Pt(0, 0), Pt(3, -4)))
}
