package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagSteps     int
	flagRecord    bool
	flagProfile   string
	flagRun       string
	flagJumpEvery int
	flagShowFrame bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless",
	Long: `Step a game without a terminal UI and print a summary.

Input comes from a fixed script: hold --run in one direction and press
jump every --jump-every ticks. Runs with the same seed, config and
script end in the same state hash.

Examples:
  platformer sim penguin --seed 1 --steps 600
  platformer sim crates --seed 7 --jump-every 20 --record
  platformer sim penguin --steps 100000 --profile cpu`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	addConfigFlags(simCmd)
	simCmd.Flags().IntVar(&flagSteps, "steps", 3600, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run to the database")
	simCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile: cpu or mem")
	simCmd.Flags().StringVar(&flagRun, "run", "right", "Direction to hold: left, right, none")
	simCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 45, "Press jump every N ticks (0 = never)")
	simCmd.Flags().BoolVar(&flagShowFrame, "frame", false, "Print the final frame")
}

// script is the input a headless run feeds the game.
type script struct {
	run       core.Action // ActionNone to stand still
	jumpEvery int
}

func parseScript(run string, jumpEvery int) (script, error) {
	s := script{jumpEvery: jumpEvery}
	switch run {
	case "right":
		s.run = core.ActionRight
	case "left":
		s.run = core.ActionLeft
	case "none", "":
		s.run = core.ActionNone
	default:
		return s, fmt.Errorf("invalid --run %q: want left, right or none", run)
	}
	if jumpEvery < 0 {
		return s, errors.New("--jump-every must not be negative")
	}
	return s, nil
}

// frame returns the input for tick i.
func (s script) frame(i int) core.InputFrame {
	in := core.NewInputFrame()
	if s.run != core.ActionNone {
		in.Set(s.run)
	}
	if s.jumpEvery > 0 && i%s.jumpEvery == 0 {
		in.Set(core.ActionJump)
	}
	return in
}

// simulate steps game until steps ticks ran or the game ended.
func simulate(game registry.Game, rt core.RuntimeConfig, steps int, in script, logger *log.Logger) storage.RunRecord {
	if l, ok := game.(registry.Logged); ok {
		l.SetLogger(logger)
	}
	game.Reset(rt)

	outcome := storage.OutcomeCompleted
	for i := range steps {
		res := game.Step(in.frame(i))
		for _, e := range res.Events {
			logger.Debug("event", "tick", res.State.Tick, "event", e)
		}
		if res.State.GameOver {
			outcome = storage.OutcomeGameOver
			logger.Info("game over", "tick", res.State.Tick, "reason", res.State.Reason)
			break
		}
	}

	state := game.State()
	run := storage.RunRecord{
		GameID:          game.ID(),
		Seed:            rt.Seed,
		Ticks:           state.Tick,
		Score:           state.Score,
		BodiesRemaining: state.Bodies,
		Outcome:         outcome,
	}
	if s, ok := game.(registry.Snapshotter); ok {
		snap := s.Snapshot()
		run.StateHash = snap.Hash()
	}
	return run
}

func runSim(cmd *cobra.Command, args []string) error {
	logger, err := newLogger("sim")
	if err != nil {
		return err
	}

	game, err := registry.Create(args[0])
	if err != nil {
		return err
	}
	in, err := parseScript(flagRun, flagJumpEvery)
	if err != nil {
		return err
	}
	if flagSteps <= 0 {
		return errors.New("--steps must be positive")
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if c, ok := game.(registry.Configurable); ok {
		c.Configure(gameCfg)
	}

	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("invalid --profile %q: want cpu or mem", flagProfile)
	}

	rt := runtimeConfig()
	if flagSeed == 0 {
		logger.Info("no --seed given, using the clock", "seed", rt.Seed)
	}

	run := simulate(game, rt, flagSteps, in, logger)
	logger.Info("run finished",
		"game", run.GameID,
		"seed", run.Seed,
		"ticks", run.Ticks,
		"score", run.Score,
		"bodies", run.BodiesRemaining,
		"outcome", run.Outcome,
		"hash", fmt.Sprintf("%016x", run.StateHash),
	)

	if flagShowFrame {
		screen := core.NewScreen(rt.ScreenW, rt.ScreenH)
		game.Render(screen)
		fmt.Fprintln(cmd.OutOrStdout(), screen.String())
	}

	if flagRecord {
		if err := recordRun(run); err != nil {
			return err
		}
		logger.Info("run recorded", "db", flagDBPath)
	}
	return nil
}

func recordRun(run storage.RunRecord) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(run); err != nil {
		return err
	}
	if run.Outcome == storage.OutcomeGameOver && run.Score > 0 {
		if _, err := store.SaveScore(run.GameID, run.Score); err != nil {
			return err
		}
	}
	return nil
}
