package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	testhelpers "github.com/vvka-141/as6mig/internal/testing"
)

func TestCatalog_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Catalog
	}{
		{
			name: "reason to identifiers",
			json: `{"EOL": ["X100", "X200"], "Replaced": ["Y1"]}`,
			want: Catalog{"EOL": {"X100", "X200"}, "Replaced": {"Y1"}},
		},
		{
			name: "identifier to reason",
			json: `{"MpAlarmXConfigMapping": "Obsolete", "MpOld": "Obsolete"}`,
			want: Catalog{"Obsolete": {"MpAlarmXConfigMapping", "MpOld"}},
		},
		{
			name: "plain list",
			json: `["ftoa", "atof"]`,
			want: Catalog{"": {"ftoa", "atof"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Catalog
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			for reason, ids := range tt.want {
				assert.ElementsMatch(t, ids, c[reason])
			}
			assert.Len(t, c, len(tt.want))
		})
	}
}

func TestCatalog_UnmarshalInvalid(t *testing.T) {
	for _, doc := range []string{`"text"`, `{"a": 1}`, `[1, 2]`, `{`} {
		var c Catalog
		assert.Error(t, json.Unmarshal([]byte(doc), &c), doc)
	}
}

func TestCatalog_Index(t *testing.T) {
	c := Catalog{"B reason": {"X", "Y"}, "A reason": {"Y"}}

	assert.Equal(t, map[string]string{"X": "B reason", "Y": "A reason"}, c.Index())
	assert.Equal(t, []string{"X", "Y"}, c.Identifiers())
	assert.Equal(t, 2, c.Len())
}

func TestCatalog_IndexFold(t *testing.T) {
	c := Catalog{"Obsolete": {"MpAlarmXConfigMapping"}}

	entry, ok := c.IndexFold()["mpalarmxconfigmapping"]
	require.True(t, ok)
	assert.Equal(t, Entry{ID: "MpAlarmXConfigMapping", Reason: "Obsolete"}, entry)
}

func TestLoader_EmbeddedDefaults(t *testing.T) {
	logger := testhelpers.NewLogCapture()
	loader := NewLoader("", logger)

	for _, name := range []string{
		UnsupportedHardware,
		ObsoleteFunctionBlocks,
		ObsoleteFunctions,
		DeprecatedStringFunctions,
		DeprecatedMathFunctions,
	} {
		t.Run(name, func(t *testing.T) {
			c, err := loader.Read(name)
			require.NoError(t, err)
			assert.NotZero(t, c.Len())
		})
	}
	assert.Empty(t, logger.Messages(testhelpers.SeverityError))
}

func TestLoader_OverrideDirectory(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/catalogs")
	fs.AddFile("unsupported_hw.json", `{"EOL": ["X100"]}`)

	c := NewLoaderWithFS(fs, "/catalogs", testhelpers.NewLogCapture()).Load(UnsupportedHardware)
	assert.Equal(t, map[string]string{"X100": "EOL"}, c.Index())
}

func TestLoader_MissingOrMalformedIsEmpty(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/catalogs")
	fs.AddFile("obsolete_fbks.json", `{not json`)
	logger := testhelpers.NewLogCapture()
	loader := NewLoaderWithFS(fs, "/catalogs", logger)

	assert.Empty(t, loader.Load(UnsupportedHardware))
	assert.Empty(t, loader.Load(ObsoleteFunctionBlocks))

	errs := logger.Messages(testhelpers.SeverityError)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Error loading JSON file 'unsupported_hw'")
	assert.Contains(t, errs[1], "Error loading JSON file 'obsolete_fbks'")
}

func TestNewLoaderWithFS_NilArgs(t *testing.T) {
	assert.Panics(t, func() { NewLoaderWithFS(nil, "", testhelpers.NewLogCapture()) })
	assert.Panics(t, func() { NewLoaderWithFS(filesystem.NewMemoryFileSystem("/"), "", nil) })
}
