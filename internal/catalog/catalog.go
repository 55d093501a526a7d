package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Names of the catalogs shipped with the tool.
const (
	UnsupportedHardware       = "unsupported_hw"
	ObsoleteFunctionBlocks    = "obsolete_fbks"
	ObsoleteFunctions         = "obsolete_funcs"
	DeprecatedStringFunctions = "deprecated_string_functions"
	DeprecatedMathFunctions   = "deprecated_math_functions"
)

//go:embed data/*.json
var embedded embed.FS

// Catalog maps a discontinuation reason to the identifiers it applies to.
//
// Three JSON shapes are accepted:
//
//	{"reason": ["id", ...]}   reasons grouping identifiers
//	{"id": "reason"}          one reason per identifier
//	["id", ...]               identifiers without a reason
type Catalog map[string][]string

// UnmarshalJSON accepts all three catalog shapes.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	out := Catalog{}

	switch {
	case bytes.HasPrefix(data, []byte("[")):
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		out[""] = ids

	case bytes.HasPrefix(data, []byte("{")):
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for key, value := range raw {
			var ids []string
			if err := json.Unmarshal(value, &ids); err == nil {
				out[key] = append(out[key], ids...)
				continue
			}
			var reason string
			if err := json.Unmarshal(value, &reason); err != nil {
				return fmt.Errorf("entry %q is neither a list nor a reason", key)
			}
			out[reason] = append(out[reason], key)
		}

	default:
		return fmt.Errorf("catalog must be a JSON object or array")
	}

	*c = out
	return nil
}

// Index inverts the catalog to identifier -> reason.
// When an identifier appears under several reasons, the alphabetically first reason wins.
func (c Catalog) Index() map[string]string {
	index := make(map[string]string)
	for _, reason := range c.reasons() {
		for _, id := range c[reason] {
			if _, ok := index[id]; !ok {
				index[id] = reason
			}
		}
	}
	return index
}

// Entry is an identifier as written in the catalog with its reason.
type Entry struct {
	ID     string
	Reason string
}

// IndexFold is Index keyed by lower-cased identifier, for case-insensitive lookups.
func (c Catalog) IndexFold() map[string]Entry {
	index := make(map[string]Entry)
	for id, reason := range c.Index() {
		key := strings.ToLower(id)
		if existing, ok := index[key]; !ok || id < existing.ID {
			index[key] = Entry{ID: id, Reason: reason}
		}
	}
	return index
}

// Identifiers returns every identifier in sorted order, without duplicates.
func (c Catalog) Identifiers() []string {
	index := c.Index()
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of distinct identifiers.
func (c Catalog) Len() int {
	return len(c.Index())
}

func (c Catalog) reasons() []string {
	reasons := make([]string, 0, len(c))
	for r := range c {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	return reasons
}

// Loader reads catalogs from an override directory or the embedded defaults.
type Loader struct {
	fsProvider filesystem.FileSystemProvider
	dir        string
	logger     as6mig.Logger
}

// NewLoader creates a loader. An empty dir selects the embedded catalogs.
// Panics if logger is nil.
func NewLoader(dir string, logger as6mig.Logger) *Loader {
	if dir == "" {
		return NewLoaderWithFS(filesystem.NewFSFileSystem(embedded, "data"), "", logger)
	}
	return NewLoaderWithFS(filesystem.NewOSFileSystem(), dir, logger)
}

// NewLoaderWithFS creates a loader reading <dir>/<name>.json through fsProvider.
// Panics if fsProvider or logger is nil.
func NewLoaderWithFS(fsProvider filesystem.FileSystemProvider, dir string, logger as6mig.Logger) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{fsProvider: fsProvider, dir: dir, logger: logger}
}

// Read loads the named catalog and reports any error.
func (l *Loader) Read(name string) (Catalog, error) {
	file := path.Join(l.dir, name+".json")
	data, err := l.fsProvider.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}
	return c, nil
}

// Load returns the named catalog. A missing or malformed catalog is logged
// as an error and yields an empty catalog, so the check using it finds nothing.
func (l *Loader) Load(name string) Catalog {
	c, err := l.Read(name)
	if err != nil {
		l.logger.Error("Error loading JSON file '%s': %v", name, err)
		return Catalog{}
	}
	return c
}
