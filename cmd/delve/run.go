package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/config"
	"github.com/delvegame/delve/internal/data"
	"github.com/delvegame/delve/internal/game"
	"github.com/delvegame/delve/internal/input"
	"github.com/delvegame/delve/internal/particle"
	"github.com/delvegame/delve/internal/persist"
	"github.com/delvegame/delve/internal/scripting"
)

var (
	scriptPath string
	showMap    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a run from scripted commands",
	Long: `Reads one command per line ("move north", "hotkey 1", "target 10 4", ...)
from --script or stdin and feeds them to the scheduler, one tick each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "command script (default stdin)")
	runCmd.Flags().BoolVar(&showMap, "map", true, "print the map when the script ends")
}

func runGame(out io.Writer) error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Seed)

	// 3. Load raws and scripts
	printSection("data")
	raws, err := data.LoadRaws(cfg.Data.Raws)
	if err != nil {
		return fmt.Errorf("raws: %w", err)
	}
	printStat("archetypes", raws.Count())

	formulas, closeScripts, err := loadFormulas(cfg, log)
	if err != nil {
		return err
	}
	defer closeScripts()

	// 4. Save store
	printSection("persistence")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := persist.Open(ctx, cfg.Persistence, log)
	if err != nil {
		return fmt.Errorf("persistence: %w", err)
	}
	printOK(fmt.Sprintf("save backend: %s", cfg.Persistence.Backend))
	fmt.Println()

	// 5. Scheduler
	particles := particle.NewBuffer(256)
	sched, err := game.New(cfg, game.Deps{
		Raws:      raws,
		Formulas:  formulas,
		Store:     store,
		Particles: particles,
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer sched.Close()

	cmds, err := readCommands()
	if err != nil {
		return err
	}
	printReady(fmt.Sprintf("playing %d commands", len(cmds)))
	fmt.Println()

	// 6. Feed commands
	for i, c := range cmds {
		st, err := sched.Step(c)
		particles.Tick(100)
		switch {
		case errors.Is(err, game.ErrQuit):
			printSummary(out, sched)
			return nil
		case errors.Is(err, game.ErrPlayerDead):
			printLog(out, sched, 5)
			fmt.Fprintln(out, "\n  You died.")
			printSummary(out, sched)
			return nil
		case err != nil:
			return fmt.Errorf("command %d (%s): %w", i+1, c, err)
		}
		log.Debug("tick", zap.Int("cmd", i+1), zap.Stringer("input", c), zap.Stringer("mode", st.Mode))
	}

	if showMap && sched.Map() != nil {
		fmt.Fprintln(out, renderWorld(sched.World()))
	}
	printLog(out, sched, 10)
	printSummary(out, sched)
	return nil
}

// loadFormulas returns the Lua engine when a script dir is configured.
func loadFormulas(cfg *config.Config, log *zap.Logger) (scripting.Formulas, func(), error) {
	if cfg.Scripting.Dir == "" {
		return scripting.Builtin{}, func() {}, nil
	}
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("scripting: %w", err)
	}
	printOK("lua formulas loaded")
	return engine, engine.Close, nil
}

func readCommands() ([]input.Command, error) {
	var r io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	return input.ReadScript(r)
}

func printLog(out io.Writer, sched *game.Scheduler, n int) {
	for _, line := range sched.Log().Recent(n) {
		fmt.Fprintf(out, "  %s\n", line)
	}
}

func printSummary(out io.Writer, sched *game.Scheduler) {
	st := sched.Stats()
	fmt.Fprintln(out)
	printSection("run")
	printStat("turns", st.Turns)
	printStat("deepest level", st.Deepest)
	printStat("kills", st.Kills)
	printStat("items picked up", st.Pickups)
}
