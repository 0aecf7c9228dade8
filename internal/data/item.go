package data

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/delvegame/delve/internal/component"
)

// RenderTemplate is the raw form of a Renderable; colours are hex strings.
type RenderTemplate struct {
	Glyph string `yaml:"glyph"`
	FG    string `yaml:"fg"`
	BG    string `yaml:"bg"`
	Order int    `yaml:"order"`

	parsed component.Renderable
}

// EffectTemplate lists the use effects of an item or spell.
// Particle strings are "glyph;#rrggbb;lifetime_ms".
type EffectTemplate struct {
	ProvidesHealing int    `yaml:"provides_healing"`
	Damage          int    `yaml:"damage"`
	ProvidesMana    int    `yaml:"provides_mana"`
	CostsMana       int    `yaml:"costs_mana"`
	Teleportation   bool   `yaml:"teleportation"`
	Ranged          int    `yaml:"ranged"`
	AreaOfEffect    int    `yaml:"area_of_effect"`
	Particle        string `yaml:"particle"`
	ParticleLine    string `yaml:"particle_line"`
}

// ItemTemplate is an item or spell archetype.
type ItemTemplate struct {
	Name       string          `yaml:"name"`
	Renderable *RenderTemplate `yaml:"renderable"`
	Consumable bool            `yaml:"consumable"`
	Effects    EffectTemplate  `yaml:"effects"`

	itemEffects component.ItemEffects
}

func (t *ItemTemplate) parse() error {
	if t.Renderable != nil {
		if err := t.Renderable.parse(); err != nil {
			return err
		}
	}
	e := t.Effects
	t.itemEffects = component.ItemEffects{
		Healing:   e.ProvidesHealing,
		Damage:    e.Damage,
		GainMana:  e.ProvidesMana,
		CostsMana: e.CostsMana,
		Teleport:  e.Teleportation,
	}
	if e.Particle != "" {
		p, err := ParseParticle(e.Particle)
		if err != nil {
			return fmt.Errorf("particle: %w", err)
		}
		t.itemEffects.Burst = p
	}
	if e.ParticleLine != "" {
		p, err := ParseParticle(e.ParticleLine)
		if err != nil {
			return fmt.Errorf("particle_line: %w", err)
		}
		t.itemEffects.Line = p
	}
	return nil
}

// ItemEffects returns a fresh copy of the parsed use effects.
func (t *ItemTemplate) ItemEffects() *component.ItemEffects {
	fx := t.itemEffects
	return &fx
}

// HasEffects reports whether using the item would fire anything.
func (t *ItemTemplate) HasEffects() bool {
	fx := t.itemEffects
	return fx.Healing > 0 || fx.Damage > 0 || fx.GainMana > 0 || fx.CostsMana > 0 ||
		fx.Teleport || fx.Burst != nil || fx.Line != nil
}

func (r *RenderTemplate) parse() error {
	glyph, _ := utf8.DecodeRuneInString(r.Glyph)
	if glyph == utf8.RuneError {
		return fmt.Errorf("bad glyph %q", r.Glyph)
	}
	fg, err := ParseColor(r.FG)
	if err != nil {
		return err
	}
	bg, err := ParseColor(r.BG)
	if err != nil {
		return err
	}
	r.parsed = component.Renderable{Glyph: glyph, FG: fg, BG: bg, Order: r.Order}
	return nil
}

// Component returns the parsed Renderable.
func (r *RenderTemplate) Component() *component.Renderable {
	c := r.parsed
	return &c
}

// ParseColor accepts "#rrggbb"; an empty string is black.
func ParseColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colour %q: %w", hex, err)
	}
	return c, nil
}

// ParseParticle decodes "glyph;#rrggbb;lifetime_ms".
func ParseParticle(s string) (*component.ParticleSpec, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return nil, fmt.Errorf("want glyph;colour;lifetime, got %q", s)
	}
	glyph, _ := utf8.DecodeRuneInString(parts[0])
	if glyph == utf8.RuneError {
		return nil, fmt.Errorf("bad glyph %q", parts[0])
	}
	fg, err := ParseColor(parts[1])
	if err != nil {
		return nil, err
	}
	ms, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("lifetime %q: %w", parts[2], err)
	}
	return &component.ParticleSpec{Glyph: glyph, FG: fg, Lifetime: ms}, nil
}
