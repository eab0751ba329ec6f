package levels

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional file that declares order, IDs and names.
const ManifestFile = "levels.yaml"

//go:embed builtin
var builtinFS embed.FS

// manifest is the YAML structure of levels.yaml.
type manifest struct {
	Levels []manifestEntry `yaml:"levels"`
}

type manifestEntry struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// FSSource reads levels from a file system.
//
// With a levels.yaml manifest at the root, the manifest defines the sequence.
// Entries without an id get their position+1, entries without a name get
// "Level N". Without a manifest every *.txt file at the root is a level,
// sorted by file name.
type FSSource struct {
	fsys  fs.FS
	label string
}

// NewFSSource creates a source over fsys. label names it in logs.
func NewFSSource(fsys fs.FS, label string) *FSSource {
	return &FSSource{fsys: fsys, label: label}
}

// Dir returns a source over a directory on disk.
func Dir(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), dir)
}

// Builtin returns the levels compiled into the binary.
func Builtin() *FSSource {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded levels missing: %v", err))
	}
	return NewFSSource(sub, "builtin")
}

func (s *FSSource) String() string {
	return s.label
}

// Entries implements Source.
func (s *FSSource) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, ManifestFile)
	switch {
	case err == nil:
		return parseManifest(data)
	case errors.Is(err, fs.ErrNotExist):
		return s.scan()
	default:
		return nil, fmt.Errorf("levels: reading %s in %s: %w", ManifestFile, s.label, err)
	}
}

// Read implements Source.
func (s *FSSource) Read(ctx context.Context, e Entry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(s.fsys, e.Key)
	if err != nil {
		return "", fmt.Errorf("levels: reading %s: %w", e.Key, err)
	}
	return string(data), nil
}

func (s *FSSource) scan() ([]Entry, error) {
	dirEntries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: listing %s: %w", s.label, err)
	}

	var files []string
	for _, d := range dirEntries {
		if d.IsDir() || !strings.EqualFold(path.Ext(d.Name()), ".txt") {
			continue
		}
		files = append(files, d.Name())
	}
	slices.SortFunc(files, compareNatural)

	entries := make([]Entry, len(files))
	for i, f := range files {
		entries[i] = Entry{ID: i + 1, Name: defaultName(i + 1), Key: f}
	}
	return entries, nil
}

func parseManifest(data []byte) ([]Entry, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", ManifestFile, err)
	}

	entries := make([]Entry, 0, len(m.Levels))
	for i, me := range m.Levels {
		id := me.ID
		if id == 0 {
			id = i + 1
		}
		name := strings.TrimSpace(me.Name)
		if name == "" {
			name = defaultName(id)
		}
		entries = append(entries, Entry{ID: id, Name: name, Key: me.File})
	}
	return entries, nil
}

// compareNatural orders strings byte-wise except that runs of ASCII digits
// compare by numeric value. Equal values with different zero padding fall
// back to plain string order.
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if !isDigit(a[i]) || !isDigit(b[j]) {
			if a[i] != b[j] {
				if a[i] < b[j] {
					return -1
				}
				return 1
			}
			i++
			j++
			continue
		}

		si, sj := i, j
		for i < len(a) && isDigit(a[i]) {
			i++
		}
		for j < len(b) && isDigit(b[j]) {
			j++
		}
		na := strings.TrimLeft(a[si:i], "0")
		nb := strings.TrimLeft(b[sj:j], "0")
		if len(na) != len(nb) {
			if len(na) < len(nb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(na, nb); c != 0 {
			return c
		}
	}
	if c := (len(a) - i) - (len(b) - j); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func defaultName(id int) string {
	return fmt.Sprintf("Level %d", id)
}
