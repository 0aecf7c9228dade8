// Package input turns player commands into the values the scheduler consumes
// once per tick.
package input

import (
	"fmt"

	"github.com/delvegame/delve/internal/geom"
)

// Kind identifies a command.
type Kind int

const (
	None Kind = iota
	Move
	Pickup
	Inventory
	Confirm
	Cancel
	Wait
	Hotkey
	Up
	Down
	Drop
	Descend
	Target
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Move:
		return "Move"
	case Pickup:
		return "Pickup"
	case Inventory:
		return "Inventory"
	case Confirm:
		return "Confirm"
	case Cancel:
		return "Cancel"
	case Wait:
		return "Wait"
	case Hotkey:
		return "Hotkey"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Drop:
		return "Drop"
	case Descend:
		return "Descend"
	case Target:
		return "Target"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Command is one tick of player input. DX/DY are used by Move, N by Hotkey,
// Point by Target.
type Command struct {
	Kind  Kind
	DX    int
	DY    int
	N     int
	Point geom.Point
}

func MoveBy(dx, dy int) Command { return Command{Kind: Move, DX: dx, DY: dy} }

func HotkeyN(n int) Command { return Command{Kind: Hotkey, N: n} }

func TargetAt(x, y int) Command { return Command{Kind: Target, Point: geom.Pt(x, y)} }

func (c Command) String() string {
	switch c.Kind {
	case Move:
		return fmt.Sprintf("Move(%d,%d)", c.DX, c.DY)
	case Hotkey:
		return fmt.Sprintf("Hotkey(%d)", c.N)
	case Target:
		return fmt.Sprintf("Target(%d,%d)", c.Point.X, c.Point.Y)
	default:
		return c.Kind.String()
	}
}
