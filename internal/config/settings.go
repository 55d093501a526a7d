package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vvka-141/as6mig/internal/checksum"
	"github.com/vvka-141/as6mig/internal/files/scanner"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Environment variables that override as6mig.yaml.
const (
	EnvWorkers     = "AS6MIG_WORKERS"
	EnvHash        = "AS6MIG_HASH"
	EnvCatalogDir  = "AS6MIG_CATALOG_DIR"
	EnvMappingFile = "AS6MIG_MAPPING_FILE"
	EnvLogFile     = "AS6MIG_LOG_FILE"
)

// Settings is the resolved configuration of one run.
type Settings struct {
	Verbose     bool
	Workers     int
	Hash        string
	CatalogDir  string
	MappingFile string
	LogFile     string
	AssumeYes   bool
	Dialog      bool
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		Workers: scanner.DefaultWorkers(),
		Hash:    checksum.SHA256{}.Name(),
	}
}

// Flags holds command-line values. A nil field was not given on the command line.
type Flags struct {
	Verbose     *bool
	Workers     *int
	CatalogDir  *string
	MappingFile *string
	LogFile     *string
	AssumeYes   *bool
	Dialog      *bool
}

// LookupEnv has the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Resolve layers defaults, as6mig.yaml from projectPath, the environment and
// flags, in increasing precedence. A missing as6mig.yaml is not an error.
func Resolve(projectPath string, env LookupEnv, flags Flags) (Settings, error) {
	s := Defaults()

	cfg, err := Load(projectPath)
	switch {
	case errors.Is(err, ErrConfigNotFound):
	case err != nil:
		return Settings{}, err
	default:
		s.applyFile(cfg)
	}

	if env != nil {
		if err := s.applyEnv(env); err != nil {
			return Settings{}, err
		}
	}
	s.applyFlags(flags)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges and names.
func (s Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", as6mig.ErrInvalidConfig, s.Workers)
	}
	if _, err := checksum.ForName(s.Hash); err != nil {
		return fmt.Errorf("%w: %w", as6mig.ErrInvalidConfig, err)
	}
	return nil
}

// Calculator returns the content fingerprint selected by Hash.
func (s Settings) Calculator() (checksum.Calculator, error) {
	return checksum.ForName(s.Hash)
}

func (s *Settings) applyFile(cfg *ProjectConfig) {
	if cfg.Workers != 0 {
		s.Workers = cfg.Workers
	}
	setString(&s.Hash, cfg.Hash)
	setString(&s.CatalogDir, cfg.CatalogDir)
	setString(&s.MappingFile, cfg.MappingFile)
	setString(&s.LogFile, cfg.LogFile)
	s.AssumeYes = s.AssumeYes || cfg.AssumeYes
	s.Dialog = s.Dialog || cfg.Dialog
}

func (s *Settings) applyEnv(env LookupEnv) error {
	if v, ok := env(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", as6mig.ErrInvalidConfig, EnvWorkers, v)
		}
		s.Workers = n
	}
	for key, dst := range map[string]*string{
		EnvHash:        &s.Hash,
		EnvCatalogDir:  &s.CatalogDir,
		EnvMappingFile: &s.MappingFile,
		EnvLogFile:     &s.LogFile,
	} {
		if v, ok := env(key); ok {
			setString(dst, v)
		}
	}
	return nil
}

func (s *Settings) applyFlags(f Flags) {
	if f.Verbose != nil {
		s.Verbose = *f.Verbose
	}
	if f.Workers != nil {
		s.Workers = *f.Workers
	}
	if f.CatalogDir != nil {
		s.CatalogDir = *f.CatalogDir
	}
	if f.MappingFile != nil {
		s.MappingFile = *f.MappingFile
	}
	if f.LogFile != nil {
		s.LogFile = *f.LogFile
	}
	if f.AssumeYes != nil {
		s.AssumeYes = *f.AssumeYes
	}
	if f.Dialog != nil {
		s.Dialog = *f.Dialog
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
