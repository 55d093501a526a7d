package checks

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vvka-141/as6mig/internal/catalog"
	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/files/scanner"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Stages used to tag findings: work to do in Automation Studio 4 before
// converting, and work to do in Automation Studio 6 after converting.
const (
	StageAS4 = "AS4"
	StageAS6 = "AS6"
)

var separator = strings.Repeat("─", 80)

// Report summarizes one check.
type Report struct {
	Name string

	// Findings is the number of distinct problems reported.
	Findings int

	// Mandatory is the part of Findings that blocks migration.
	Mandatory int
}

// Checker runs the discontinuation checks against a project.
// Checker is safe for concurrent use when its dependencies are.
type Checker struct {
	fsProvider filesystem.FileSystemProvider
	scanner    *scanner.Scanner
	catalogs   *catalog.Loader
	logger     as6mig.Logger
}

// NewChecker creates a Checker.
// Panics if any argument is nil.
func NewChecker(fsProvider filesystem.FileSystemProvider, s *scanner.Scanner, catalogs *catalog.Loader, logger as6mig.Logger) *Checker {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if s == nil {
		panic("scanner cannot be nil")
	}
	if catalogs == nil {
		panic("catalogs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Checker{fsProvider: fsProvider, scanner: s, catalogs: catalogs, logger: logger}
}

func (c *Checker) header(title string) {
	c.logger.Print("%s\n%s", separator, title)
}

// scan runs the tasks and reports skipped files as errors.
// A missing root yields an empty result, like a directory without matching files.
func (c *Checker) scan(ctx context.Context, root string, exts []string, tasks ...as6mig.Task) (as6mig.ScanResult, error) {
	if _, err := c.fsProvider.Stat(root); err != nil {
		c.logger.Verbose("Skipping %s: %v", root, err)
		return as6mig.ScanResult{ByTask: map[as6mig.TaskID][]as6mig.Match{}}, nil
	}
	result, err := c.scanner.Scan(ctx, root, exts, tasks...)
	if err != nil {
		return result, err
	}
	if result.Skipped != nil {
		c.logger.Error("Some files could not be read and were skipped: %v", result.Skipped)
	}
	return result, nil
}

// onlyExtensions restricts an extraction function to files with the given extensions.
// Several tasks with different file types can then share one scan.
func onlyExtensions(fn as6mig.ExtractFunc, exts ...string) as6mig.ExtractFunc {
	return func(ctx context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
		ext := strings.ToLower(filepath.Ext(f.Path))
		for _, e := range exts {
			if ext == e {
				return fn(ctx, f)
			}
		}
		return nil, nil
	}
}

// matchSet collects matches for one file without duplicates, keeping first-seen order.
type matchSet struct {
	seen    map[as6mig.Match]struct{}
	matches []as6mig.Match
}

func (s *matchSet) add(m as6mig.Match) {
	if s.seen == nil {
		s.seen = make(map[as6mig.Match]struct{})
	}
	if _, ok := s.seen[m]; ok {
		return
	}
	s.seen[m] = struct{}{}
	s.matches = append(s.matches, m)
}
