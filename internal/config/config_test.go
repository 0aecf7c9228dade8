package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "delve.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
seed = 42

[dungeon]
connect = "sequential"
max_rooms = 12

[persistence]
backend = "redis"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 80, cfg.Game.Width, "unset keys keep defaults")
	assert.Equal(t, "sequential", cfg.Dungeon.Connect)
	assert.Equal(t, 12, cfg.Dungeon.MaxRooms)
	assert.Equal(t, 6, cfg.Dungeon.MinRoomSize)
	assert.Equal(t, "redis", cfg.Persistence.Backend)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"policy":  "[dungeon]\nconnect = \"random\"\n",
		"backend": "[persistence]\nbackend = \"s3\"\n",
		"rooms":   "[dungeon]\nmin_room_size = 8\nmax_room_size = 4\n",
		"size":    "[game]\nwidth = 3\n",
		"syntax":  "[game\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}
