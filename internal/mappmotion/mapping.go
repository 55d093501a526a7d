package mappmotion

import (
	_ "embed"
	"fmt"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/rewrite"
)

// Table names a mapping document must provide.
const (
	TableInputWarnings = "input_mapping_warning"
	TableEnums         = "enum_mapping"
	TableInputs        = "input_mapping"
	TableFunctionBlock = "fb_mapping"
	TableRemovals      = "fb_removal_mapping"
	TableTypes         = "type_mapping"
)

// Libraries whose presence in Package.pkg indicates a mappMotion project.
var Libraries = []string{"McAxis", "MpAxis", "McBase", "McAcpAx", "McAcpTrak"}

//go:embed mapping.yaml
var defaultMapping []byte

// Mapping holds the tables of one migration, resolved by role.
type Mapping struct {
	InputWarnings  *rewrite.Table
	Enums          *rewrite.Table
	Inputs         *rewrite.Table
	FunctionBlocks *rewrite.Table
	Removals       *rewrite.Table
	Types          *rewrite.Table
}

// DefaultMapping returns the built-in mappMotion 5 -> 6 tables.
func DefaultMapping() (*Mapping, error) {
	doc, err := rewrite.ParseDocument(defaultMapping)
	if err != nil {
		return nil, fmt.Errorf("built-in mapping: %w", err)
	}
	return FromDocument(doc)
}

// LoadMapping reads a mapping document. An empty path selects the built-in tables.
func LoadMapping(fsProvider filesystem.FileSystemProvider, path string) (*Mapping, error) {
	if path == "" {
		return DefaultMapping()
	}
	doc, err := rewrite.LoadDocument(fsProvider, path)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// FromDocument resolves the six migration tables from a mapping document.
func FromDocument(doc *rewrite.Document) (*Mapping, error) {
	var m Mapping
	for _, spec := range []struct {
		name     string
		category rewrite.Category
		dst      **rewrite.Table
	}{
		{TableInputWarnings, rewrite.WarnOnly, &m.InputWarnings},
		{TableEnums, rewrite.Replace, &m.Enums},
		{TableInputs, rewrite.Replace, &m.Inputs},
		{TableFunctionBlock, rewrite.Replace, &m.FunctionBlocks},
		{TableRemovals, rewrite.Removal, &m.Removals},
		{TableTypes, rewrite.Replace, &m.Types},
	} {
		t, err := doc.Require(spec.name, spec.category)
		if err != nil {
			return nil, err
		}
		*spec.dst = t
	}
	return &m, nil
}

// ChainRisks lists rule pairs that could rewrite the same token twice within
// one pass over a file.
func (m *Mapping) ChainRisks() []rewrite.ChainRisk {
	risks := rewrite.ChainRisks(m.Enums, m.Inputs)
	return append(risks, rewrite.ChainRisks(m.FunctionBlocks, m.Types)...)
}
