package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/delvegame/delve/internal/data"
	"github.com/delvegame/delve/internal/mapgen"
	"github.com/delvegame/delve/internal/scripting"
	"github.com/delvegame/delve/internal/world"
)

var (
	genDepth  int
	genSeed   int64
	genPolicy string
	genSpawn  bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a level and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		policy := cfg.Dungeon.Connect
		if genPolicy != "" {
			policy = genPolicy
		}
		p, err := mapgen.ParsePolicy(policy)
		if err != nil {
			return err
		}
		b := &mapgen.RoomsAndCorridors{
			MaxRooms: cfg.Dungeon.MaxRooms,
			MinSize:  cfg.Dungeon.MinRoomSize,
			MaxSize:  cfg.Dungeon.MaxRoomSize,
			Policy:   p,
		}
		m, start, err := b.Build(genDepth, cfg.Game.Width, cfg.Game.Height, genSeed)
		if err != nil {
			return err
		}
		for i := range m.Revealed {
			m.Revealed[i] = true
			m.Visible[i] = true
		}

		ws := world.NewState()
		ws.SetMap(m)
		spawned := 0
		if genSpawn {
			raws, err := data.LoadRaws(cfg.Data.Raws)
			if err != nil {
				return fmt.Errorf("raws: %w", err)
			}
			sp := &mapgen.Spawner{
				Raws:      raws,
				MaxSpawns: cfg.Dungeon.MaxSpawns,
				Budget:    scripting.Builtin{}.SpawnBudget,
				Log:       log,
			}
			spawned = sp.PopulateRooms(ws, m, rand.New(rand.NewSource(genSeed)))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderWorld(ws))
		fmt.Fprintf(out, "depth %d  seed %d  policy %s  rooms %d  start (%d,%d)  spawned %d\n",
			genDepth, genSeed, p, len(m.Rooms), start.X, start.Y, spawned)
		return nil
	},
}

func init() {
	genCmd.Flags().IntVar(&genDepth, "depth", 1, "dungeon depth")
	genCmd.Flags().Int64Var(&genSeed, "seed", 1, "generator seed")
	genCmd.Flags().StringVar(&genPolicy, "policy", "", "corridor policy: nearest or sequential")
	genCmd.Flags().BoolVar(&genSpawn, "spawn", true, "populate rooms from the spawn table")
}
