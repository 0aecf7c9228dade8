package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Command{
		"move north":   MoveBy(0, -1),
		"MOVE  SW":     MoveBy(-1, 1),
		"ne":           MoveBy(1, -1),
		"hotkey 1":     HotkeyN(1),
		"target 10 4":  TargetAt(10, 4),
		"g":            {Kind: Pickup},
		"wait":         {Kind: Wait},
		">":            {Kind: Descend},
		"inventory":    {Kind: Inventory},
		"esc":          {Kind: Cancel},
		"":             {Kind: None},
	}
	for line, want := range cases {
		got, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, got, line)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("dance")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	for _, line := range []string{"move", "move up-ish", "hotkey", "hotkey 0", "hotkey x", "target 1", "target a b", "wait 3"} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestReadScript(t *testing.T) {
	src := `# opening moves
move east

hotkey 1
target 3 4
confirm
`
	cmds, err := ReadScript(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Command{MoveBy(1, 0), HotkeyN(1), TargetAt(3, 4), {Kind: Confirm}}, cmds)

	_, err = ReadScript(strings.NewReader("move east\nfly\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Descend", Descend.String())
	assert.Equal(t, "Unknown(99)", Kind(99).String())
	assert.Equal(t, "Target(1,2)", TargetAt(1, 2).String())
}
