package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/watch"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  A/D, Left/Right  - Run (penguin), move the dropper (crates)
  Space/W/Up       - Jump (penguin), drop a crate (crates)
  S/Down           - Duck and slide
  +/-              - Zoom
  X                - Recenter the camera
  P                - Pause
  R                - Respawn, or restart after game over
  Esc/B            - Back to the menu (when paused or over)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

With --watch the config file is re-read whenever it is saved and the
new physics and player settings apply without a restart.

Examples:
  platformer play penguin
  platformer play crates --difficulty easy
  platformer play penguin --config ./platformer.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addConfigFlags(playCmd)
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownGame) {
			return fmt.Errorf("%w (run 'platformer list' to see available games)", err)
		}
		return err
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	opts := tui.RunOptions{Config: &gameCfg}

	if flagWatch {
		w, err := startWatcher()
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Reloads = w.Reloads
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startWatcher watches --config, or the user config file when none is given.
// The watcher stays silent since the terminal belongs to the game.
func startWatcher() (*watch.ConfigWatcher, error) {
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return nil, errors.New("--watch needs --config or a user config file")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("--watch: %w", err)
	}
	return watch.New(path, watch.DefaultDebounce, nil)
}
