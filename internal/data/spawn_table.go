package data

import "math/rand"

// SpawnTableEntry weights one archetype for a depth range.
type SpawnTableEntry struct {
	Name             string `yaml:"name"`
	Weight           int    `yaml:"weight"`
	MinDepth         int    `yaml:"min_depth"`
	MaxDepth         int    `yaml:"max_depth"`
	AddDepthToWeight bool   `yaml:"add_map_depth_to_weight"`
}

type tableEntry struct {
	name   string
	weight int
}

// RandomTable picks names proportionally to their weight.
type RandomTable struct {
	entries []tableEntry
	total   int
}

func NewRandomTable() *RandomTable { return &RandomTable{} }

// Add appends an entry; non-positive weights are ignored.
func (t *RandomTable) Add(name string, weight int) *RandomTable {
	if weight > 0 {
		t.entries = append(t.entries, tableEntry{name: name, weight: weight})
		t.total += weight
	}
	return t
}

func (t *RandomTable) Len() int { return len(t.entries) }

// Roll returns a weighted pick, or "" for an empty table.
func (t *RandomTable) Roll(rng *rand.Rand) string {
	if t.total == 0 {
		return ""
	}
	roll := rng.Intn(t.total)
	for _, e := range t.entries {
		if roll < e.weight {
			return e.name
		}
		roll -= e.weight
	}
	return ""
}
