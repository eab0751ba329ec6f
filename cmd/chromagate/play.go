package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromagate/internal/platform/tui"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the level sequence",
	Long: `Play the configured levels in order, starting at the first one or at --level.

Controls:
  W/A/S/D, arrows  - Step one cell
  Mouse click      - Move to the clicked cell
  ] / [            - Next / previous level
  Enter            - Dismiss a completion notice
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Examples:
  chromagate play
  chromagate play --level 3
  chromagate --levels ./my-levels play
  chromagate --seed 42 play`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels interactively",
	Long:  `Shows the level picker; pressing b or Esc while playing returns to it.`,
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "ID of the level to start at")
}

func gameOptions(start int) tui.GameOptions {
	return tui.GameOptions{
		StartLevel:     start,
		NoticeDuration: appConfig.UI.NoticeDuration(),
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	lvls, err := loadLevels(cmd.Context(), logger)
	if err != nil {
		return err
	}
	if flagLevel != 0 && !hasLevel(lvls, flagLevel) {
		return fmt.Errorf("unknown level %d (run 'chromagate list')", flagLevel)
	}

	logger.Info("playing", "levels", len(lvls), "start", flagLevel)
	start := time.Now()
	_, err = tui.RunGame(lvls, runtimeConfig(), gameOptions(flagLevel))
	logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	return err
}

// runMenu alternates between the level picker and the game until quit.
func runMenu(cmd *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	lvls, err := loadLevels(cmd.Context(), logger)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	for {
		menu, err := tui.RunMenu(lvls, cfg)
		if err != nil {
			return err
		}
		if menu.Quit {
			return nil
		}
		cfg = menu.Config

		logger.Info("level picked", "level", menu.LevelID)
		result, err := tui.RunGame(lvls, cfg, gameOptions(menu.LevelID))
		if err != nil {
			return err
		}
		if !result.BackToMenu {
			return nil
		}
		cfg = result.Config
	}
}

func hasLevel(lvls []puzzle.Level, id int) bool {
	for _, l := range lvls {
		if l.ID == id {
			return true
		}
	}
	return false
}
