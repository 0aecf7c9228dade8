package data

import "fmt"

// MobStats is the raw combat block of a mob.
type MobStats struct {
	MaxHP   int `yaml:"max_hp"`
	HP      int `yaml:"hp"`
	Power   int `yaml:"power"`
	Defense int `yaml:"defense"`
}

// MobTemplate is a monster archetype.
type MobTemplate struct {
	Name        string          `yaml:"name"`
	Renderable  *RenderTemplate `yaml:"renderable"`
	BlocksTile  bool            `yaml:"blocks_tile"`
	VisionRange int             `yaml:"vision_range"`
	Stats       MobStats        `yaml:"stats"`
}

func (m *MobTemplate) parse() error {
	if m.Stats.MaxHP <= 0 {
		return fmt.Errorf("max_hp must be positive")
	}
	if m.Stats.HP <= 0 || m.Stats.HP > m.Stats.MaxHP {
		m.Stats.HP = m.Stats.MaxHP
	}
	if m.Renderable != nil {
		return m.Renderable.parse()
	}
	return nil
}
