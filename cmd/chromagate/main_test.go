package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/chromagate/internal/puzzle"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	flags := rootCmd.PersistentFlags()
	for name, value := range map[string]string{
		"levels":    "sqlite",
		"db":        "/tmp/lib.db",
		"seed":      "7",
		"log-level": "debug",
	} {
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("Set(%s) error = %v", name, err)
		}
	}

	if err := loadConfig(rootCmd, nil); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if appConfig.Levels.Source != "sqlite" || appConfig.Levels.DB != "/tmp/lib.db" {
		t.Errorf("levels = %+v", appConfig.Levels)
	}
	if appConfig.Game.Seed != 7 || appConfig.Log.Level != "debug" {
		t.Errorf("seed = %d, log level = %q", appConfig.Game.Seed, appConfig.Log.Level)
	}
	if cfg := runtimeConfig(); cfg.Seed != 7 {
		t.Errorf("runtimeConfig().Seed = %d, want 7", cfg.Seed)
	}
}

func TestCheckStrict(t *testing.T) {
	dir := t.TempDir()
	clean := filepath.Join(dir, "clean.txt")
	broken := filepath.Join(dir, "broken.txt")
	if err := os.WriteFile(clean, []byte("S.E\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("S.X\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagStrict = true
	t.Cleanup(func() { flagStrict = false })

	if err := runCheck(checkCmd, []string{clean}); err != nil {
		t.Errorf("check clean level: %v", err)
	}
	if err := runCheck(checkCmd, []string{clean, broken}); err == nil {
		t.Error("check --strict on a broken level should fail")
	}
	if err := runCheck(checkCmd, []string{filepath.Join(dir, "missing.txt")}); err == nil {
		t.Error("check on a missing file should fail")
	}
}

func TestHelpers(t *testing.T) {
	if got := port(":23234"); got != "23234" {
		t.Errorf("port(:23234) = %q", got)
	}
	if got := port("localhost"); got != "localhost" {
		t.Errorf("port(localhost) = %q", got)
	}

	lvls := []puzzle.Level{puzzle.NewLevel(3, "", "SE")}
	if !hasLevel(lvls, 3) || hasLevel(lvls, 1) {
		t.Error("hasLevel() mismatch")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
