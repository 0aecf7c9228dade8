package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversAfterSwap(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e EntityKilled) { got = append(got, "killed:"+e.Name) })
	Subscribe(b, func(e ItemPickedUp) { got = append(got, "picked:"+e.Name) })

	Emit(b, EntityKilled{Name: "orc"})
	Emit(b, ItemPickedUp{Name: "potion"})
	Emit(b, EntityKilled{Name: "goblin"})

	assert.Equal(t, 0, b.DispatchAll())
	assert.Empty(t, got)
	assert.Equal(t, 3, b.Pending())

	b.SwapBuffers()
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, 3, b.DispatchAll())
	assert.Equal(t, []string{"killed:orc", "picked:potion", "killed:goblin"}, got)

	// front buffer is consumed by dispatch
	assert.Equal(t, 0, b.DispatchAll())
}

func TestBusIgnoresUnsubscribedTypes(t *testing.T) {
	b := NewBus()
	Emit(b, LevelEntered{Depth: 2})
	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll())
}
