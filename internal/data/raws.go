package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Raws holds every archetype loaded from the raw file, indexed by name.
type Raws struct {
	Items      []ItemTemplate    `yaml:"items"`
	Mobs       []MobTemplate     `yaml:"mobs"`
	Spells     []ItemTemplate    `yaml:"spells"`
	SpawnTable []SpawnTableEntry `yaml:"spawn_table"`

	items  map[string]*ItemTemplate
	mobs   map[string]*MobTemplate
	spells map[string]*ItemTemplate
}

// LoadRaws loads archetypes from a YAML file.
func LoadRaws(path string) (*Raws, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raws %s: %w", path, err)
	}
	return ParseRaws(raw)
}

// ParseRaws decodes and indexes a raw file. Duplicate names and spawn
// entries naming unknown archetypes are errors.
func ParseRaws(raw []byte) (*Raws, error) {
	var r Raws
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse raws: %w", err)
	}
	if err := r.index(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Raws) index() error {
	r.items = make(map[string]*ItemTemplate, len(r.Items))
	r.mobs = make(map[string]*MobTemplate, len(r.Mobs))
	r.spells = make(map[string]*ItemTemplate, len(r.Spells))
	used := make(map[string]struct{}, len(r.Items)+len(r.Mobs))

	for i := range r.Items {
		it := &r.Items[i]
		if _, dup := used[it.Name]; dup {
			return fmt.Errorf("duplicate raw name %q", it.Name)
		}
		if err := it.parse(); err != nil {
			return fmt.Errorf("item %q: %w", it.Name, err)
		}
		used[it.Name] = struct{}{}
		r.items[it.Name] = it
	}
	for i := range r.Mobs {
		mob := &r.Mobs[i]
		if _, dup := used[mob.Name]; dup {
			return fmt.Errorf("duplicate raw name %q", mob.Name)
		}
		if err := mob.parse(); err != nil {
			return fmt.Errorf("mob %q: %w", mob.Name, err)
		}
		used[mob.Name] = struct{}{}
		r.mobs[mob.Name] = mob
	}
	for i := range r.Spells {
		sp := &r.Spells[i]
		if _, dup := r.spells[sp.Name]; dup {
			return fmt.Errorf("duplicate spell %q", sp.Name)
		}
		if err := sp.parse(); err != nil {
			return fmt.Errorf("spell %q: %w", sp.Name, err)
		}
		r.spells[sp.Name] = sp
	}
	for _, e := range r.SpawnTable {
		if _, ok := used[e.Name]; !ok {
			return fmt.Errorf("spawn table references unknown entity %q", e.Name)
		}
	}
	return nil
}

func (r *Raws) Item(name string) *ItemTemplate { return r.items[name] }

func (r *Raws) Mob(name string) *MobTemplate { return r.mobs[name] }

func (r *Raws) Spell(name string) *ItemTemplate { return r.spells[name] }

// Count returns the number of spawnable archetypes.
func (r *Raws) Count() int { return len(r.items) + len(r.mobs) }

// SpawnTableFor builds the weighted table of entries valid at depth.
func (r *Raws) SpawnTableFor(depth int) *RandomTable {
	t := NewRandomTable()
	for _, e := range r.SpawnTable {
		if depth < e.MinDepth || depth > e.MaxDepth {
			continue
		}
		w := e.Weight
		if e.AddDepthToWeight {
			w += depth
		}
		t.Add(e.Name, w)
	}
	return t
}
