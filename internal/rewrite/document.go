package rewrite

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Document is an ordered set of mapping tables, as loaded from YAML:
//
//	tables:
//	  - name: fb_mapping
//	    mode: word
//	    category: replace
//	    rules:
//	      - {old: MC_BR_SecAddShWithMov_AcpTrak, new: MC_BR_SecAddShuttle_AcpTrak}
type Document struct {
	Tables []*Table
}

type documentYAML struct {
	Tables []tableYAML `yaml:"tables"`
}

type tableYAML struct {
	Name     string `yaml:"name"`
	Mode     string `yaml:"mode"`
	Category string `yaml:"category"`
	Rules    []Rule `yaml:"rules"`
}

// ParseDocument parses and validates a mapping document.
// Errors wrap as6mig.ErrInvalidConfig.
func ParseDocument(data []byte) (*Document, error) {
	var raw documentYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse mapping document: %w", as6mig.ErrInvalidConfig, err)
	}
	if len(raw.Tables) == 0 {
		return nil, fmt.Errorf("%w: mapping document has no tables", as6mig.ErrInvalidConfig)
	}

	doc := &Document{}
	names := make(map[string]struct{}, len(raw.Tables))
	for _, rt := range raw.Tables {
		if _, dup := names[rt.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate table %q", as6mig.ErrInvalidConfig, rt.Name)
		}
		names[rt.Name] = struct{}{}

		mode, err := ParseMode(rt.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: table %q: %w", as6mig.ErrInvalidConfig, rt.Name, err)
		}
		category, err := ParseCategory(rt.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: table %q: %w", as6mig.ErrInvalidConfig, rt.Name, err)
		}
		table, err := NewTable(rt.Name, mode, category, rt.Rules)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", as6mig.ErrInvalidConfig, err)
		}
		doc.Tables = append(doc.Tables, table)
	}
	return doc, nil
}

// LoadDocument reads and parses a mapping document through the filesystem provider.
func LoadDocument(fsProvider filesystem.FileSystemProvider, path string) (*Document, error) {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read mapping document %s: %w", as6mig.ErrInvalidConfig, path, err)
	}
	return ParseDocument(data)
}

// Table returns the table with the given name.
func (d *Document) Table(name string) (*Table, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Require returns the named table and checks its category.
func (d *Document) Require(name string, category Category) (*Table, error) {
	t, ok := d.Table(name)
	if !ok {
		return nil, fmt.Errorf("%w: mapping document has no table %q", as6mig.ErrInvalidConfig, name)
	}
	if t.Category != category {
		return nil, fmt.Errorf("%w: table %q has category %q, want %q", as6mig.ErrInvalidConfig, name, t.Category, category)
	}
	return t, nil
}
