package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvegame/delve/internal/geom"
)

func TestFieldWeights(t *testing.T) {
	f := NewField(10, 10)
	f.Compute(geom.Pt(0, 0), func(int, int) bool { return false })

	assert.Equal(t, 0, f.Distance(0, 0))
	assert.Equal(t, 10, f.Distance(1, 0))
	assert.Equal(t, 14, f.Distance(1, 1))
	assert.Equal(t, 14*3+10, f.Distance(4, 3))
	assert.Equal(t, -1, f.Distance(-1, 0))
}

func TestStepAroundWall(t *testing.T) {
	// wall column at x=2 with a gap at y=4
	blocked := func(x, y int) bool { return x == 2 && y != 4 }
	f := NewField(5, 5)
	f.Compute(geom.Pt(4, 0), blocked)

	pos := geom.Pt(0, 0)
	for i := 0; i < 20 && pos != f.Goal; i++ {
		next, ok := f.Step(pos)
		require.True(t, ok)
		require.False(t, blocked(next.X, next.Y))
		assert.Equal(t, 1, geom.Chebyshev(pos, next))
		pos = next
	}
	assert.Equal(t, f.Goal, pos)
}

func TestUnreachable(t *testing.T) {
	blocked := func(x, _ int) bool { return x == 2 }
	f := NewField(5, 3)
	f.Compute(geom.Pt(4, 1), blocked)
	assert.Equal(t, -1, f.Distance(0, 1))
	_, ok := f.Step(geom.Pt(0, 1))
	assert.False(t, ok)
}
