package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/chromagate/internal/levels"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)
	return home, work
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	isolate(t)

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("Load() path = %q, want embedded", path)
	}
	if len(cfg.Web.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v, want none", cfg.Web.AllowedOrigins)
	}
	want := Default()
	want.Web.AllowedOrigins = cfg.Web.AllowedOrigins
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config = %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "ui:\n  cell_width: 1\ngame:\n  seed: 42\n")

	cfg, got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != path {
		t.Errorf("Load() path = %q, want %q", got, path)
	}
	if cfg.UI.CellWidth != 1 || cfg.Game.Seed != 42 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.UI.NoticeSeconds != 3 || cfg.SSH.Address != ":23234" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "ui: [not, a, map\n")
	if _, _, err := Load(bad); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	local := filepath.Join(work, "configs", FileName)
	writeFile(t, local, "log:\n  level: debug\n")

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != filepath.Join("configs", FileName) || cfg.Log.Level != "debug" {
		t.Errorf("local config not used: path %q level %q", path, cfg.Log.Level)
	}

	user := filepath.Join(home, ".chromagate", "config.yaml")
	writeFile(t, user, "log:\n  level: warn\n")

	cfg, path, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != user || cfg.Log.Level != "warn" {
		t.Errorf("user config should win: path %q level %q", path, cfg.Log.Level)
	}
}

func TestLoadSkipsInvalidUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".chromagate", "config.yaml"), "::::")

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" || cfg.Levels.Source != SourceBuiltin {
		t.Errorf("expected embedded fallback, got path %q cfg %+v", path, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"empty source", func(c *Config) { c.Levels.Source = " " }, true},
		{"sqlite without db", func(c *Config) { c.Levels.Source = SourceSQLite; c.Levels.DB = "" }, true},
		{"cell width zero", func(c *Config) { c.UI.CellWidth = 0 }, true},
		{"cell width three", func(c *Config) { c.UI.CellWidth = 3 }, true},
		{"negative notice", func(c *Config) { c.UI.NoticeSeconds = -1 }, true},
		{"negative idle", func(c *Config) { c.SSH.IdleTimeoutMinutes = -5 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"upper log level", func(c *Config) { c.Log.Level = "DEBUG" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSourceSpec(t *testing.T) {
	tests := []struct {
		cfg  LevelsConfig
		want string
	}{
		{LevelsConfig{Source: SourceBuiltin}, "builtin"},
		{LevelsConfig{Source: SourceSQLite, DB: "x.db"}, "sqlite"},
		{LevelsConfig{Source: SourceDir, Dir: "./levels"}, "./levels"},
		{LevelsConfig{Source: "/srv/levels"}, "/srv/levels"},
	}
	for _, tc := range tests {
		if got := tc.cfg.SourceSpec(); got != tc.want {
			t.Errorf("SourceSpec(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestDefaultSourceOpens(t *testing.T) {
	spec := Default().Levels.SourceSpec()

	src, closeFn, err := levels.Open(spec, "")
	if err != nil {
		t.Fatalf("levels.Open(%q) error = %v", spec, err)
	}
	defer closeFn()
	if src.String() != "builtin" {
		t.Errorf("default source = %s, want builtin", src)
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
