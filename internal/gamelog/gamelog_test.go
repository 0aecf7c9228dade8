package gamelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogBoundsAndOrder(t *testing.T) {
	l := New(3, "en", zap.NewNop())
	for _, m := range []string{"a", "b", "c", "d"} {
		l.Add(m)
	}
	assert.Equal(t, []string{"b", "c", "d"}, l.Entries())
	assert.Equal(t, []string{"c", "d"}, l.Recent(2))
	assert.Equal(t, "d", l.Last())
	l.Clear()
	assert.Equal(t, "", l.Last())
}

func TestLogFormatsNumbers(t *testing.T) {
	l := New(8, "en", zap.NewNop())
	l.Addf("%s hits %s, for %d hp.", "Orc", "Player", 1200)
	assert.Equal(t, "Orc hits Player, for 1,200 hp.", l.Last())

	de := New(8, "de", zap.NewNop())
	de.Addf("%d", 1200)
	assert.Equal(t, "1.200", de.Last())
}

func TestLogMirrorsToZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := New(4, "not a tag!", zap.New(core))
	l.Add("Goblin is no more")
	entries := logs.FilterMessage("game log").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Goblin is no more", entries[0].ContextMap()["msg"])
	}
}
