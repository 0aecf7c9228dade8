package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
	err   error
	hook  func()
}

func (r *recorder) Phase() Phase { return r.phase }

func (r *recorder) Update() error {
	*r.log = append(*r.log, r.name)
	if r.hook != nil {
		r.hook()
	}
	return r.err
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(
		&recorder{phase: PhaseSweep, name: "sweep", log: &log},
		&recorder{phase: PhaseVisibility, name: "vis", log: &log},
		&recorder{phase: PhaseEffects, name: "drain", log: &log},
		&recorder{phase: PhaseIndex, name: "index", log: &log},
		&recorder{phase: PhaseEffects, name: "drain2", log: &log},
	)
	require.NoError(t, r.Run())
	assert.Equal(t, []string{"vis", "index", "drain", "drain2", "sweep"}, log)
	assert.Equal(t, 1, r.Passes())
}

func TestRunnerStopsOnError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	r := NewRunner()
	r.Register(
		&recorder{phase: PhaseMelee, name: "melee", log: &log, err: boom},
		&recorder{phase: PhaseCleanup, name: "cleanup", log: &log},
	)
	err := r.Run()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"melee"}, log)
	assert.False(t, r.Active())
}

func TestRunnerRejectsReentry(t *testing.T) {
	var log []string
	r := NewRunner()
	var inner error
	rec := &recorder{phase: PhaseAI, name: "ai", log: &log}
	rec.hook = func() { inner = r.Run() }
	r.Register(rec)
	require.NoError(t, r.Run())
	assert.ErrorIs(t, inner, ErrPassActive)
}
