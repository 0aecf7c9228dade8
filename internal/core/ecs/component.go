package ecs

import "sort"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore is a generic typed map store for mutable components.
// Systems get a pointer back and mutate in place.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 64),
	}
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// Clear drops every component in the store.
func (s *PtrComponentStore[T]) Clear() {
	for id := range s.data {
		delete(s.data, id)
	}
}

// IDs returns the owning entities in ascending order. Map iteration order is
// random in Go; every system that must be deterministic iterates through IDs.
func (s *PtrComponentStore[T]) IDs() []EntityID {
	return sortedKeys(s.data)
}

// Each iterates in ascending entity order.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.IDs() {
		fn(id, s.data[id])
	}
}

// ComponentStore holds plain values. Used for small immutable payloads such as
// marker components and pending intents where a pointer buys nothing.
type ComponentStore[T any] struct {
	data map[EntityID]T
}

func NewComponentStore[T any]() *ComponentStore[T] {
	return &ComponentStore[T]{data: make(map[EntityID]T, 64)}
}

func (s *ComponentStore[T]) Set(id EntityID, c T) { s.data[id] = c }

func (s *ComponentStore[T]) Get(id EntityID) (T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *ComponentStore[T]) Remove(id EntityID) { delete(s.data, id) }

func (s *ComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *ComponentStore[T]) Len() int { return len(s.data) }

func (s *ComponentStore[T]) Clear() {
	for id := range s.data {
		delete(s.data, id)
	}
}

func (s *ComponentStore[T]) IDs() []EntityID { return sortedKeys(s.data) }

func (s *ComponentStore[T]) Each(fn func(EntityID, T)) {
	for _, id := range s.IDs() {
		fn(id, s.data[id])
	}
}

func sortedKeys[V any](m map[EntityID]V) []EntityID {
	ids := make([]EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
