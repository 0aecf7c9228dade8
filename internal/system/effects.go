package system

import (
	"go.uber.org/zap"

	coresys "github.com/delvegame/delve/internal/core/system"
	"github.com/delvegame/delve/internal/effects"
)

// EffectsSystem drains the effects queue. The pipeline registers it twice:
// after melee and again after item resolution.
type EffectsSystem struct {
	phase  coresys.Phase
	engine *effects.Engine
	log    *zap.Logger
}

func NewEffectsSystem(phase coresys.Phase, engine *effects.Engine, log *zap.Logger) *EffectsSystem {
	return &EffectsSystem{phase: phase, engine: engine, log: log}
}

func (s *EffectsSystem) Phase() coresys.Phase { return s.phase }

func (s *EffectsSystem) Update() error {
	if n := s.engine.Drain(); n > 0 {
		s.log.Debug("effects applied", zap.Stringer("phase", s.phase), zap.Int("count", n))
	}
	return nil
}
