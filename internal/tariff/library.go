// Package tariff is the library of tariff definition files the tariff
// selector offers. A bundled set is embedded in the binary; a directory on
// disk can replace it.
package tariff

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"energy-measures/internal/idf"

	"github.com/sirupsen/logrus"
)

//go:embed resources/*.idf
var bundled embed.FS

// TariffType is the object type every definition file must hold exactly once.
const TariffType = "UtilityCost:Tariff"

const (
	fieldTariffName = 0
	fieldMeter      = 1
)

var ErrNotFound = errors.New("tariff file not found")

// Entry describes one usable definition file.
type Entry struct {
	File       string `json:"file"` // base name without ".idf"
	TariffName string `json:"tariff_name"`
	Meter      string `json:"meter"`
	Objects    int    `json:"objects"`
}

type Library struct {
	fsys    fs.FS
	source  string
	entries []Entry
	cache   *Cache
}

// Bundled returns the library embedded in the binary.
func Bundled() (*Library, error) {
	sub, err := fs.Sub(bundled, "resources")
	if err != nil {
		return nil, err
	}
	return New(sub, "embedded")
}

// Open returns a library over the .idf files in dir.
func Open(dir string) (*Library, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("tariff directory: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("tariff directory %s is not a directory", dir)
	}
	return New(os.DirFS(dir), dir)
}

// Default opens TARIFF_DIR when set, the bundled library otherwise.
func Default() (*Library, error) {
	if dir := os.Getenv("TARIFF_DIR"); dir != "" {
		return Open(dir)
	}
	return Bundled()
}

// New scans fsys for definition files. Files that do not parse or do not hold
// exactly one tariff are skipped with a warning.
func New(fsys fs.FS, source string) (*Library, error) {
	names, err := fs.Glob(fsys, "*.idf")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	l := &Library{fsys: fsys, source: source}
	for _, name := range names {
		objs, err := l.parse(name)
		if err != nil {
			logrus.WithField("source", source).Warnf("skipping %s: %v", name, err)
			continue
		}
		var tariffs []*idf.Object
		for _, o := range objs {
			if o.Is(TariffType) {
				tariffs = append(tariffs, o)
			}
		}
		if len(tariffs) != 1 {
			logrus.WithField("source", source).Warnf("skipping %s: expected one tariff object but got %d", name, len(tariffs))
			continue
		}
		t := tariffs[0]
		meter, _ := t.Field(fieldMeter)
		if meter == "" {
			logrus.WithField("source", source).Warnf("skipping %s: tariff %q has no meter", name, t.Name())
			continue
		}
		l.entries = append(l.entries, Entry{
			File:       strings.TrimSuffix(name, ".idf"),
			TariffName: t.Fields[fieldTariffName],
			Meter:      meter,
			Objects:    len(objs),
		})
	}
	return l, nil
}

// WithCache makes Load consult c before parsing.
func (l *Library) WithCache(c *Cache) *Library {
	l.cache = c
	return l
}

// Source is "embedded" or the directory the library was opened from.
func (l *Library) Source() string { return l.source }

// Entries returns the usable files sorted by file name.
func (l *Library) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Meters returns each distinct meter once, in order of its first file.
func (l *Library) Meters() []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range l.entries {
		if !seen[e.Meter] {
			seen[e.Meter] = true
			out = append(out, e.Meter)
		}
	}
	return out
}

// ByMeter groups entries by meter, keeping file order within each group.
func (l *Library) ByMeter() map[string][]Entry {
	out := map[string][]Entry{}
	for _, e := range l.entries {
		out[e.Meter] = append(out[e.Meter], e)
	}
	return out
}

// Load returns copies of every object in the named file. file may be given
// with or without the ".idf" extension.
func (l *Library) Load(file string) ([]*idf.Object, error) {
	name := strings.TrimSuffix(file, ".idf") + ".idf"
	if name != path.Base(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	key := CacheKey(l.source, name)
	objs, ok := l.cache.Get(key)
	if !ok {
		var err error
		objs, err = l.parse(name)
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, objs)
	}

	out := make([]*idf.Object, len(objs))
	for i, o := range objs {
		out[i] = o.Clone()
	}
	return out, nil
}

func (l *Library) parse(name string) ([]*idf.Object, error) {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	objs, err := idf.ParseObjects(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return objs, nil
}
