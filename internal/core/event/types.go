package event

import "github.com/delvegame/delve/internal/core/ecs"

// EntityKilled is emitted by the death sweep for every removed entity.
type EntityKilled struct {
	Victim ecs.EntityID
	Name   string
	X, Y   int
	Player bool
}

// ItemPickedUp is emitted when an item moves into a backpack.
type ItemPickedUp struct {
	Item  ecs.EntityID
	Owner ecs.EntityID
	Name  string
}

// LevelEntered is emitted after a new level has been generated.
type LevelEntered struct {
	Depth int
	Rooms int
}
