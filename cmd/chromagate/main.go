// chromagate is a color-gate grid puzzle for the terminal.
//
// Usage:
//
//	chromagate list                 - List the levels of the configured source
//	chromagate play [--level id]    - Play the level sequence
//	chromagate menu                 - Pick levels interactively
//	chromagate check [files...]     - Lint level files
//	chromagate import <files...>    - Add level files to the sqlite library
//	chromagate library              - List or remove library levels
//	chromagate serve                - Start SSH server for remote play
//	chromagate web                  - Start HTTP + websocket server
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.chromagate, ./configs)
//	--levels <source>   - builtin, sqlite, or a directory of level files
//	--db <path>         - sqlite level library (default: ~/.chromagate/levels.db)
//	--seed <value>      - Portal RNG seed for reproducible play
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chromagate/internal/config"
	"github.com/vovakirdan/chromagate/internal/core"
	"github.com/vovakirdan/chromagate/internal/levels"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

var (
	// Global flags
	flagConfig   string
	flagLevels   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string

	// Resolved in PersistentPreRunE
	appConfig  config.Config
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chromagate",
	Short: "chromagate - a red/blue color-gate puzzle for your terminal",
	Long: `chromagate is a grid puzzle: walk from S to E, switching between red and
blue on T cells so the matching colored zones let you through. Portals
(@ and O) jump to another portal of the same kind.

Available commands:
  list     - Show the levels of the configured source
  play     - Play the level sequence
  menu     - Interactive level picker
  check    - Report problems in level files
  import   - Add level files to the sqlite library
  library  - List or remove library levels
  serve    - Start SSH server for remote play
  web      - Start HTTP + websocket server

Examples:
  chromagate play
  chromagate play --level 3
  chromagate --levels ./my-levels menu
  chromagate import ./my-levels/*.txt && chromagate --levels sqlite list
  chromagate serve`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level source: builtin, sqlite, or a directory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sqlite level library")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Portal RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// loadConfig loads the config file and applies global flag overrides.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("levels") {
		cfg.Levels.Source = flagLevels
	}
	if flags.Changed("db") {
		cfg.Levels.DB = flagDBPath
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	configPath = path
	return nil
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(appConfig.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// fileLogger logs to ~/.chromagate/chromagate.log so a full-screen TUI is
// not drawn over. The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	dir, err := config.DataDir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "chromagate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "chromagate"), func() { f.Close() }
}

// loadLevels opens the configured level source and loads every level.
// An empty result is not an error; callers show the empty state.
func loadLevels(ctx context.Context, logger *log.Logger) ([]puzzle.Level, error) {
	spec := appConfig.Levels.SourceSpec()
	src, closeSrc, err := levels.Open(spec, appConfig.Levels.DB)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	lvls, err := levels.Load(ctx, src, logger)
	if errors.Is(err, levels.ErrNoLevels) {
		logger.Warn("no levels loaded", "source", src.String())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("levels loaded", "source", src.String(), "count", len(lvls), "config", configPath)
	return lvls, nil
}

// runtimeConfig builds the screen config from the terminal size and config.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = appConfig.Game.Seed
	cfg.CellWidth = appConfig.UI.CellWidth
	cfg.ShowLegend = appConfig.UI.ShowLegend
	return cfg
}
