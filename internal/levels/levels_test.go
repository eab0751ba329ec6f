package levels

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chromagate/internal/puzzle"
	"github.com/vovakirdan/chromagate/internal/storage"
)

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

func TestBuiltinLevels(t *testing.T) {
	lvls, err := Load(context.Background(), Builtin(), nil)
	if err != nil {
		t.Fatalf("Load(builtin) error: %v", err)
	}
	if len(lvls) != 4 {
		t.Fatalf("Load(builtin) = %d levels, want 4", len(lvls))
	}

	for i, lvl := range lvls {
		if lvl.ID != i+1 {
			t.Errorf("level %d ID = %d, want %d", i, lvl.ID, i+1)
		}
		rep := puzzle.Inspect(lvl.Grid.String())
		if !rep.Clean() {
			t.Errorf("builtin level %d has issues: %v", lvl.ID, rep.Issues)
		}
	}
	if lvls[0].Name != "First Steps" {
		t.Errorf("first level name = %q", lvls[0].Name)
	}
}

func TestFSSourceWithoutManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"b.txt":       {Data: []byte("S.E")},
		"a.txt":       {Data: []byte("S#E")},
		"notes.md":    {Data: []byte("# not a level")},
		"sub/c.txt":   {Data: []byte("SE")},
		"UPPER.TXT":   {Data: []byte("S..E")},
		"zz_last.txt": {Data: []byte("SE")},
	}

	entries, err := NewFSSource(fsys, "test").Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}

	wantKeys := []string{"UPPER.TXT", "a.txt", "b.txt", "zz_last.txt"}
	if len(entries) != len(wantKeys) {
		t.Fatalf("Entries() = %+v, want keys %v", entries, wantKeys)
	}
	for i, e := range entries {
		if e.Key != wantKeys[i] {
			t.Errorf("entry %d key = %q, want %q", i, e.Key, wantKeys[i])
		}
		if e.ID != i+1 {
			t.Errorf("entry %d ID = %d, want %d", i, e.ID, i+1)
		}
		if want := "Level " + string(rune('1'+i)); e.Name != want {
			t.Errorf("entry %d name = %q, want %q", i, e.Name, want)
		}
	}
}

func TestFSSourceManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"levels.yaml": {Data: []byte(`levels:
  - id: 10
    name: Intro
    file: intro.txt
  - file: second.txt
  - id: 30
    name: "  "
    file: third.txt
`)},
		"intro.txt":  {Data: []byte("S.E")},
		"second.txt": {Data: []byte("S#E")},
		"third.txt":  {Data: []byte("SE")},
		"extra.txt":  {Data: []byte("ignored without manifest entry")},
	}

	entries, err := NewFSSource(fsys, "test").Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}

	want := []Entry{
		{ID: 10, Name: "Intro", Key: "intro.txt"},
		{ID: 2, Name: "Level 2", Key: "second.txt"},
		{ID: 30, Name: "Level 30", Key: "third.txt"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Entries() = %+v, want %+v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestFSSourceBadManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"levels.yaml": {Data: []byte("levels: {broken")},
	}
	if _, err := NewFSSource(fsys, "test").Entries(context.Background()); err == nil {
		t.Error("Entries() with invalid manifest should fail")
	}
}

func TestLoadSkipsFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"levels.yaml": {Data: []byte(`levels:
  - {id: 1, file: one.txt}
  - {id: 2, file: missing.txt}
  - {id: 1, file: dup.txt}
  - {id: 3, file: three.txt}
`)},
		"one.txt":   {Data: []byte("S.E")},
		"dup.txt":   {Data: []byte("S#E")},
		"three.txt": {Data: []byte("S..\n..E")},
	}
	logger, buf := testLogger()

	lvls, err := Load(context.Background(), NewFSSource(fsys, "test"), logger)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(lvls) != 2 || lvls[0].ID != 1 || lvls[1].ID != 3 {
		t.Fatalf("Load() = %+v, want IDs 1 and 3", lvls)
	}
	if !lvls[0].Grid.Equal(puzzle.Parse("S.E")) {
		t.Error("duplicate ID replaced the first level")
	}
	if out := buf.String(); !strings.Contains(out, "missing.txt") || !strings.Contains(out, "duplicate") {
		t.Errorf("expected warnings for skipped entries, got:\n%s", out)
	}
}

func TestLoadSkipsEmptyLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt": {Data: []byte("   \n\n")},
		"b.txt": {Data: []byte("S.E")},
		"c.txt": {Data: []byte("")},
		"d.txt": {Data: []byte("SE")},
	}
	logger, buf := testLogger()

	lvls, err := Load(context.Background(), NewFSSource(fsys, "test"), logger)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(lvls) != 2 || lvls[0].ID != 2 || lvls[1].ID != 4 {
		t.Fatalf("Load() = %+v, want IDs 2 and 4", lvls)
	}
	for _, lvl := range lvls {
		if lvl.Grid.Empty() {
			t.Errorf("level %d has an empty grid", lvl.ID)
		}
	}
	if out := buf.String(); !strings.Contains(out, "skipping empty level") || !strings.Contains(out, "a.txt") || !strings.Contains(out, "c.txt") {
		t.Errorf("expected warnings for blank entries, got:\n%s", out)
	}
}

func TestFSSourceNaturalOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"level10.txt":  {Data: []byte("SE")},
		"level2.txt":   {Data: []byte("SE")},
		"level1.txt":   {Data: []byte("SE")},
		"level01b.txt": {Data: []byte("SE")},
		"bonus.txt":    {Data: []byte("SE")},
	}

	entries, err := NewFSSource(fsys, "test").Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}

	want := []string{"bonus.txt", "level1.txt", "level01b.txt", "level2.txt", "level10.txt"}
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Key
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Entries() order = %v, want %v", got, want)
	}
}

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"level2.txt", "level10.txt", -1},
		{"level10.txt", "level2.txt", 1},
		{"a", "a", 0},
		{"a", "ab", -1},
		{"007", "7", -1},
		{"x9y", "x09z", -1},
		{"B", "a", -1},
	}
	for _, tc := range tests {
		if got := compareNatural(tc.a, tc.b); got != tc.want {
			t.Errorf("compareNatural(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLoadNoLevels(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"empty directory", fstest.MapFS{}},
		{"all entries fail", fstest.MapFS{
			"levels.yaml": {Data: []byte("levels:\n  - file: gone.txt\n")},
		}},
		{"only blank levels", fstest.MapFS{
			"blank.txt": {Data: []byte(" \n\t\n")},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvls, err := Load(context.Background(), NewFSSource(tc.fsys, "test"), nil)
			if !errors.Is(err, ErrNoLevels) {
				t.Errorf("Load() error = %v, want ErrNoLevels", err)
			}
			if lvls == nil || len(lvls) != 0 {
				t.Errorf("Load() = %v, want empty slice", lvls)
			}
		})
	}
}

func TestLoadListingFailure(t *testing.T) {
	src := Dir(filepath.Join(t.TempDir(), "does-not-exist"))

	lvls, err := Load(context.Background(), src, nil)
	if err == nil || errors.Is(err, ErrNoLevels) {
		t.Errorf("Load() error = %v, want listing error", err)
	}
	if len(lvls) != 0 {
		t.Errorf("Load() = %v, want none", lvls)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, Builtin(), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestStoreSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lib.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	first, _ := store.SaveLevel("Alpha", "S.E")
	second, _ := store.SaveLevel("Beta", "ST\n.E")

	lvls, err := Load(context.Background(), NewStoreSource(store, dbPath), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("Load() = %d levels, want 2", len(lvls))
	}
	if lvls[0].ID != int(first) || lvls[0].Name != "Alpha" {
		t.Errorf("lvls[0] = %+v", lvls[0])
	}
	if lvls[1].ID != int(second) || !lvls[1].Grid.Equal(puzzle.Parse("ST\n.E")) {
		t.Errorf("lvls[1] = %+v", lvls[1])
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.txt"), []byte("S.E"), 0o600); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "one.txt")
	dbPath := filepath.Join(t.TempDir(), "lib.db")

	tests := []struct {
		spec    string
		wantErr bool
		want    string
	}{
		{"builtin", false, "builtin"},
		{"", false, "builtin"},
		{"sqlite", false, "sqlite:" + dbPath},
		{dir, false, dir},
		{file, true, ""},
		{filepath.Join(dir, "nope"), true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			src, closeFn, err := Open(tc.spec, dbPath)
			defer closeFn()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tc.spec, err, tc.wantErr)
			}
			if err == nil && src.String() != tc.want {
				t.Errorf("Open(%q) = %s, want %s", tc.spec, src, tc.want)
			}
		})
	}
}
