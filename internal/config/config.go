package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the optional as6mig.yaml stored in a project directory.
type ProjectConfig struct {
	Workers     int    `yaml:"workers,omitempty"`
	Hash        string `yaml:"hash,omitempty"`
	CatalogDir  string `yaml:"catalog_dir,omitempty"`
	MappingFile string `yaml:"mapping_file,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
	AssumeYes   bool   `yaml:"assume_yes,omitempty"`
	Dialog      bool   `yaml:"dialog,omitempty"`
}

const ConfigFileName = "as6mig.yaml"

// Load reads as6mig.yaml from projectPath. Relative paths in the file are
// resolved against projectPath.
func Load(projectPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectPath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		// ENOTDIR: projectPath is a file; project validation reports that.
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", as6mig.ErrInvalidConfig, configPath, err)
	}
	cfg.CatalogDir = resolvePath(projectPath, cfg.CatalogDir)
	cfg.MappingFile = resolvePath(projectPath, cfg.MappingFile)
	cfg.LogFile = resolvePath(projectPath, cfg.LogFile)
	return &cfg, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
