package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

type parseFunc func(args []string) (Command, error)

// verbs maps a command word to its parser. Aliases share one entry each.
var verbs = map[string]parseFunc{}

func register(fn parseFunc, names ...string) {
	for _, n := range names {
		verbs[n] = fn
	}
}

func simple(k Kind) parseFunc {
	return func(args []string) (Command, error) {
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%s takes no arguments", k)
		}
		return Command{Kind: k}, nil
	}
}

var directions = map[string][2]int{
	"north": {0, -1}, "n": {0, -1},
	"south": {0, 1}, "s": {0, 1},
	"east": {1, 0}, "e": {1, 0},
	"west": {-1, 0}, "w": {-1, 0},
	"northeast": {1, -1}, "ne": {1, -1},
	"northwest": {-1, -1}, "nw": {-1, -1},
	"southeast": {1, 1}, "se": {1, 1},
	"southwest": {-1, 1}, "sw": {-1, 1},
}

func init() {
	register(simple(None), "none", "noop")
	register(simple(Pickup), "pickup", "get", "g")
	register(simple(Inventory), "inventory", "inv", "i")
	register(simple(Confirm), "confirm", "enter", "ok")
	register(simple(Cancel), "cancel", "escape", "esc")
	register(simple(Wait), "wait", "rest", ".")
	register(simple(Up), "up")
	register(simple(Down), "down")
	register(simple(Drop), "drop", "d")
	register(simple(Descend), "descend", ">")
	register(parseMove, "move", "go")
	register(parseHotkey, "hotkey", "cast")
	register(parseTarget, "target", "aim")
	for name, d := range directions {
		d := d
		register(func(args []string) (Command, error) {
			if len(args) != 0 {
				return Command{}, fmt.Errorf("direction takes no arguments")
			}
			return MoveBy(d[0], d[1]), nil
		}, name)
	}
}

func parseMove(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("move needs a direction")
	}
	d, ok := directions[args[0]]
	if !ok {
		return Command{}, fmt.Errorf("unknown direction %q", args[0])
	}
	return MoveBy(d[0], d[1]), nil
}

func parseHotkey(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("hotkey needs a number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > 9 {
		return Command{}, fmt.Errorf("hotkey must be 1-9, got %q", args[0])
	}
	return HotkeyN(n), nil
}

func parseTarget(args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, fmt.Errorf("target needs x and y")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, fmt.Errorf("target x: %w", err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, fmt.Errorf("target y: %w", err)
	}
	return TargetAt(x, y), nil
}

// Parse reads one command line such as "move north", "hotkey 1" or
// "target 10 4". A blank line is None.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, nil
	}
	fn, ok := verbs[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return fn(fields[1:])
}

// ReadScript parses one command per line. Blank lines and lines starting
// with '#' are skipped.
func ReadScript(r io.Reader) ([]Command, error) {
	var out []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}
