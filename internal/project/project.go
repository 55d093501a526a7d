package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-zglob"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/files/textcodec"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Project is a validated Automation Studio project directory.
type Project struct {
	// Path is the project directory.
	Path string

	// File is the base name of the .apj descriptor.
	File string

	// Logical and Physical are the two top-level folders.
	Logical  string
	Physical string
}

// ProjectFilePath returns the full path of the .apj descriptor.
func (p Project) ProjectFilePath() string {
	return filepath.Join(p.Path, p.File)
}

// PackageFilePath returns the path of the library package descriptor.
func (p Project) PackageFilePath() string {
	return filepath.Join(p.Logical, as6mig.LibrariesDir, as6mig.PackageFileName)
}

// Validate checks that path is a directory containing an .apj descriptor.
// When several descriptors exist the first in name order is used.
func Validate(fsProvider filesystem.FileSystemProvider, path string) (Project, error) {
	info, err := fsProvider.Stat(path)
	if err != nil {
		return Project{}, fmt.Errorf("%w: '%s'", as6mig.ErrProjectNotFound, path)
	}
	if !info.IsDir() {
		return Project{}, fmt.Errorf("%w: '%s' is not a directory", as6mig.ErrProjectNotFound, path)
	}

	entries, err := fsProvider.ReadDir(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to list project directory: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := zglob.Match(as6mig.ProjectFilePattern, entry.Name())
		if err != nil {
			return Project{}, fmt.Errorf("invalid project file pattern: %w", err)
		}
		if ok {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return Project{}, fmt.Errorf("%w: no .apj file found in the provided path: %s", as6mig.ErrProjectFileMissing, path)
	}
	sort.Strings(candidates)

	return Project{
		Path:     path,
		File:     candidates[0],
		Logical:  filepath.Join(path, as6mig.LogicalDir),
		Physical: filepath.Join(path, as6mig.PhysicalDir),
	}, nil
}

// DetectLibraries returns the names from candidates that occur in the library
// package descriptor, in candidate order and without duplicates.
// The search is a plain substring match on the descriptor text.
func DetectLibraries(fsProvider filesystem.FileSystemProvider, p Project, candidates []string) ([]string, error) {
	pkgPath := p.PackageFilePath()
	raw, err := fsProvider.ReadFile(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not find Package.pkg file in: %s", as6mig.ErrPackageFileMissing, pkgPath)
	}
	content := textcodec.DecodeLenient(raw)

	var found []string
	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if strings.Contains(content, name) {
			found = append(found, name)
		}
	}
	return found, nil
}

// ConfigName returns the configuration a hardware file belongs to:
// the name of the directory that directly contains it.
func ConfigName(path string) string {
	return filepath.Base(filepath.Dir(path))
}

// MatchRelative reports whether the slash-separated path rel matches a glob
// pattern such as "**/Cpu.pkg".
func MatchRelative(pattern, rel string) bool {
	ok, err := zglob.Match(pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// Glob lists files under root whose path relative to root matches pattern.
// A root that does not exist has no matches.
func Glob(fsProvider filesystem.FileSystemProvider, root, pattern string) ([]string, error) {
	if _, err := fsProvider.Stat(root); err != nil {
		return nil, nil
	}
	dir, err := fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if !file.Info().IsDir() && MatchRelative(pattern, file.RelativePath()) {
			files = append(files, file.Path())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
