package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/as6mig/internal/files/scanner"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
}

func envMap(m map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `workers: 8
hash: highway
catalog_dir: catalogs
mapping_file: /etc/as6mig/mapping.yaml
log_file: logs/run.log
assume_yes: true
dialog: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "highway", cfg.Hash)
	assert.Equal(t, filepath.Join(dir, "catalogs"), cfg.CatalogDir)
	assert.Equal(t, "/etc/as6mig/mapping.yaml", cfg.MappingFile)
	assert.Equal(t, filepath.Join(dir, "logs", "run.log"), cfg.LogFile)
	assert.True(t, cfg.AssumeYes)
	assert.True(t, cfg.Dialog)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_ProjectPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "Demo.apj")
	require.NoError(t, os.WriteFile(file, []byte("<Project />"), 0644))

	cfg, err := Load(file)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Nil(t, cfg)

	_, err = Resolve(file, nil, Flags{})
	assert.NoError(t, err, "a file path is left to project validation")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{{invalid")

	cfg, err := Load(dir)
	assert.ErrorIs(t, err, as6mig.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestResolve_Defaults(t *testing.T) {
	s, err := Resolve(t.TempDir(), envMap(nil), Flags{})
	require.NoError(t, err)

	assert.Equal(t, scanner.DefaultWorkers(), s.Workers)
	assert.Equal(t, "sha256", s.Hash)
	assert.False(t, s.Verbose)
	assert.Empty(t, s.CatalogDir)
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `workers: 2
catalog_dir: /from/yaml
log_file: /from/yaml.log
hash: highway
`)

	env := envMap(map[string]string{
		EnvWorkers:    "6",
		EnvCatalogDir: "/from/env",
	})
	workers := 12
	verbose := true

	s, err := Resolve(dir, env, Flags{Workers: &workers, Verbose: &verbose})
	require.NoError(t, err)

	assert.Equal(t, 12, s.Workers, "flag beats env")
	assert.Equal(t, "/from/env", s.CatalogDir, "env beats yaml")
	assert.Equal(t, "/from/yaml.log", s.LogFile, "yaml beats default")
	assert.Equal(t, "highway", s.Hash)
	assert.True(t, s.Verbose)
}

func TestResolve_EmptyEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "catalog_dir: /from/yaml\n")

	s, err := Resolve(dir, envMap(map[string]string{EnvCatalogDir: ""}), Flags{})
	require.NoError(t, err)
	assert.Equal(t, "/from/yaml", s.CatalogDir)
}

func TestResolve_Invalid(t *testing.T) {
	zero := 0
	tests := []struct {
		name  string
		yaml  string
		env   map[string]string
		flags Flags
	}{
		{"non-numeric workers env", "", map[string]string{EnvWorkers: "many"}, Flags{}},
		{"zero workers flag", "", nil, Flags{Workers: &zero}},
		{"negative workers yaml", "workers: -1\n", nil, Flags{}},
		{"unknown hash", "hash: md5\n", nil, Flags{}},
		{"broken yaml", "workers: [", nil, Flags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.yaml != "" {
				writeConfig(t, dir, tt.yaml)
			}
			_, err := Resolve(dir, envMap(tt.env), tt.flags)
			assert.ErrorIs(t, err, as6mig.ErrInvalidConfig)
		})
	}
}

func TestSettings_Calculator(t *testing.T) {
	s := Defaults()
	s.Hash = "highway"

	calc, err := s.Calculator()
	require.NoError(t, err)
	assert.Equal(t, "highway", calc.Name())
}
