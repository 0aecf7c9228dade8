// Package game owns a run: the RunState machine, the system pipeline, level
// generation and the save hooks.
package game

import (
	"errors"
	"fmt"

	"github.com/delvegame/delve/internal/core/ecs"
	"github.com/delvegame/delve/internal/system"
)

var (
	// ErrQuit is returned when Quit is chosen from the main menu.
	ErrQuit = errors.New("quit")
	// ErrPlayerDead ends the run.
	ErrPlayerDead = system.ErrPlayerDead
)

// Mode is the active top-level state.
type Mode int

const (
	MainMenu Mode = iota
	CharGen
	PreRun
	AwaitingInput
	PlayerTurn
	MonsterTurn
	ShowInventory
	ShowTargeting
	NextLevel
)

func (m Mode) String() string {
	switch m {
	case MainMenu:
		return "MainMenu"
	case CharGen:
		return "CharGen"
	case PreRun:
		return "PreRun"
	case AwaitingInput:
		return "AwaitingInput"
	case PlayerTurn:
		return "PlayerTurn"
	case MonsterTurn:
		return "MonsterTurn"
	case ShowInventory:
		return "ShowInventory"
	case ShowTargeting:
		return "ShowTargeting"
	case NextLevel:
		return "NextLevel"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Simulating reports whether a tick in this mode runs the pipeline.
func (m Mode) Simulating() bool {
	switch m {
	case PreRun, PlayerTurn, MonsterTurn, NextLevel:
		return true
	}
	return false
}

// RunState is the mode plus its payload. Selection is the highlighted menu
// or inventory row; Range, Item and Radius describe the pending target pick.
type RunState struct {
	Mode      Mode
	Selection int
	Range     int
	Item      ecs.EntityID
	Radius    int
}

// Main menu rows.
const (
	MenuNewGame = iota
	MenuContinue
	MenuQuit
	menuRows
)
