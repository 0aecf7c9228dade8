package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hp struct{ cur int }

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.False(t, a.IsZero(), "first entity must not collide with the zero id")
	assert.True(t, p.Alive(a))

	assert.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "stale destroy is a no-op")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "slot is recycled")
	assert.NotEqual(t, a, b)
	assert.False(t, p.Alive(a))
	assert.Equal(t, 1, p.Count())
}

func TestStoresIterateInIDOrder(t *testing.T) {
	w := NewWorld()
	s := NewPtrComponentStore[hp]()
	w.Registry().Register(s)

	var ids []EntityID
	for i := 0; i < 20; i++ {
		id := w.CreateEntity()
		ids = append(ids, id)
		s.Set(id, &hp{cur: i})
	}

	var seen []EntityID
	s.Each(func(id EntityID, _ *hp) { seen = append(seen, id) })
	assert.Equal(t, ids, seen)
}

func TestDestroyClearsRegisteredStores(t *testing.T) {
	w := NewWorld()
	ptr := NewPtrComponentStore[hp]()
	val := NewComponentStore[string]()
	w.Registry().Register(ptr, val)

	id := w.CreateEntity()
	ptr.Set(id, &hp{cur: 3})
	val.Set(id, "goblin")

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	assert.True(t, w.Pending(id))
	assert.True(t, w.Alive(id), "deferred until flush")

	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.False(t, w.Alive(id))
	assert.False(t, ptr.Has(id))
	assert.False(t, val.Has(id))
}

func TestEach2(t *testing.T) {
	a := NewPtrComponentStore[hp]()
	b := NewPtrComponentStore[string]()
	pool := NewEntityPool()
	x, y, z := pool.Create(), pool.Create(), pool.Create()
	a.Set(x, &hp{1})
	a.Set(y, &hp{2})
	a.Set(z, &hp{3})
	name := "y"
	b.Set(y, &name)

	var got []EntityID
	Each2(a, b, func(id EntityID, _ *hp, _ *string) { got = append(got, id) })
	assert.Equal(t, []EntityID{y}, got)
}

func TestWorldEntities(t *testing.T) {
	w := NewWorld()
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	w.Destroy(b)
	assert.Equal(t, []EntityID{a, c}, w.Entities())
}
