package component

import "github.com/lucasb-eyer/go-colorful"

// Item marks pick-up-able entities.
type Item struct{}

// InBackpack means the item has left the map and belongs to Owner.
type InBackpack = Owned

// Consumable items are destroyed once one of their effects fired.
type Consumable struct{}

// Ranged items need a target tile within Range.
type Ranged struct {
	Range int `json:"range"`
}

// AreaOfEffect widens a targeted use to every visible tile within Radius of
// the target.
type AreaOfEffect struct {
	Radius int `json:"radius"`
}

// ParticleSpec describes a particle burst or line drawn by item use.
type ParticleSpec struct {
	Glyph    rune           `json:"glyph"`
	FG       colorful.Color `json:"fg"`
	BG       colorful.Color `json:"bg"`
	Lifetime float64        `json:"lifetime_ms"`
}

// ItemEffects lists the sub-effects an item or spell fires on use.
// Zero fields are absent.
type ItemEffects struct {
	Healing   int           `json:"healing,omitempty"`
	Damage    int           `json:"damage,omitempty"`
	GainMana  int           `json:"gain_mana,omitempty"`
	CostsMana int           `json:"costs_mana,omitempty"`
	Teleport  bool          `json:"teleport,omitempty"`
	Burst     *ParticleSpec `json:"burst,omitempty"`
	Line      *ParticleSpec `json:"line,omitempty"`
}

// Spell is a castable ability bound to a number key.
type Spell struct {
	Hotkey int `json:"hotkey"`
}

// KnownSpell links a spell entity to its caster.
type KnownSpell = Owned
