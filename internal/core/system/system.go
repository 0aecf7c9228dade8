package system

// Phase defines execution ordering within a single pipeline pass. The order is
// fixed: later systems read the tile occupant index rebuilt by PhaseIndex and
// the viewsheds recomputed by PhaseVisibility.
type Phase int

const (
	PhaseMovement    Phase = iota // 0: apply pending move intents
	PhaseVisibility               // 1: recompute dirty viewsheds
	PhaseAI                       // 2: monster decisions
	PhaseIndex                    // 3: rebuild tile occupant lists
	PhaseMelee                    // 4: melee intents -> damage effects
	PhaseEffects                  // 5: drain the effects queue
	PhaseItems                    // 6: pickup / use / drop intents
	PhaseItemEffects              // 7: drain effects produced by item use
	PhaseSweep                    // 8: remove zero-hit-point entities
	PhaseCleanup                  // 9: destroy queued entities
)

var phaseNames = [...]string{
	"movement", "visibility", "ai", "index", "melee",
	"effects", "items", "item_effects", "sweep", "cleanup",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements. Update returns
// an error only for run-ending conditions; per-entity failures are logged.
type System interface {
	Phase() Phase
	Update() error
}
