package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/files/textcodec"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// DefaultWorkers returns the pool size used when none is configured.
// Scans are I/O bound, so the pool is deliberately wider than the CPU count.
func DefaultWorkers() int {
	return runtime.NumCPU() * 4
}

// Scanner discovers files in a directory tree and runs extraction tasks over them
// on a bounded pool of goroutines.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	workers    int
}

// NewScanner creates a scanner over the OS filesystem.
// A workers value below 1 selects DefaultWorkers.
func NewScanner(workers int) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), workers)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, workers int) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if workers < 1 {
		workers = DefaultWorkers()
	}
	return &Scanner{
		fsProvider: fsProvider,
		workers:    workers,
	}
}

// Workers returns the size of the worker pool.
func (s *Scanner) Workers() int {
	return s.workers
}

// List walks root and returns every regular file whose extension matches one of exts.
// Extensions are compared case-insensitively and may be given with or without the dot.
// The whole list is built before any file is processed.
func (s *Scanner) List(root string, exts []string) ([]string, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	wanted := normalizeExtensions(exts)

	var files []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}
		if _, ok := wanted[strings.ToLower(filepath.Ext(file.Path()))]; ok {
			files = append(files, file.Path())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// fileResult is what one worker reports back for one file.
type fileResult struct {
	path    string
	byTask  map[as6mig.TaskID][]as6mig.Match
	readErr error
}

// Scan applies every task to every file under root matching exts.
//
// Each file is read and decoded once; all tasks then run over the same content.
// Results are merged in completion order, so the order of matches within a task is
// not stable. Files that cannot be read are skipped and reported in
// ScanResult.Skipped. The first extraction error cancels the remaining work and is
// returned wrapped in as6mig.ErrExtractionFailed.
func (s *Scanner) Scan(ctx context.Context, root string, exts []string, tasks ...as6mig.Task) (as6mig.ScanResult, error) {
	if err := validateTasks(tasks); err != nil {
		return as6mig.ScanResult{}, err
	}

	files, err := s.List(root, exts)
	if err != nil {
		return as6mig.ScanResult{}, err
	}

	result := as6mig.ScanResult{
		ByTask: make(map[as6mig.TaskID][]as6mig.Match, len(tasks)),
		Files:  len(files),
	}
	for _, task := range tasks {
		result.ByTask[task.ID] = nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	results := make(chan fileResult)
	var waitErr error

	go func() {
		defer close(results)
		for _, path := range files {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				r, err := s.processFile(gctx, root, path, tasks)
				if err != nil {
					return err
				}
				select {
				case results <- r:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		waitErr = g.Wait()
	}()

	var skipped *multierror.Error
	for r := range results {
		if r.readErr != nil {
			skipped = multierror.Append(skipped, r.readErr)
			continue
		}
		for id, matches := range r.byTask {
			result.ByTask[id] = append(result.ByTask[id], matches...)
		}
	}

	if waitErr != nil {
		return as6mig.ScanResult{}, waitErr
	}
	if err := ctx.Err(); err != nil {
		return as6mig.ScanResult{}, err
	}

	result.Skipped = skipped.ErrorOrNil()
	return result, nil
}

// ScanOne runs a single extraction function and returns its matches directly.
func (s *Scanner) ScanOne(ctx context.Context, root string, exts []string, id as6mig.TaskID, extract as6mig.ExtractFunc) ([]as6mig.Match, error) {
	result, err := s.Scan(ctx, root, exts, as6mig.Task{ID: id, Extract: extract})
	if err != nil {
		return nil, err
	}
	return result.Flat(), nil
}

// processFile reads one file and runs every task over its content.
// A read failure is reported in the result rather than as an error.
func (s *Scanner) processFile(ctx context.Context, root, path string, tasks []as6mig.Task) (fileResult, error) {
	if err := ctx.Err(); err != nil {
		return fileResult{}, err
	}

	raw, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return fileResult{path: path, readErr: fmt.Errorf("skipped %s: %w", path, err)}, nil
	}
	content, err := textcodec.Decode(raw)
	if err != nil {
		return fileResult{path: path, readErr: fmt.Errorf("skipped %s: %w", path, err)}, nil
	}

	source := as6mig.SourceFile{
		Path:         path,
		RelativePath: relativePath(root, path),
		Content:      content,
	}

	byTask := make(map[as6mig.TaskID][]as6mig.Match, len(tasks))
	for _, task := range tasks {
		matches, err := task.Extract(ctx, source)
		if err != nil {
			return fileResult{}, fmt.Errorf("%w: task %q on %s: %w", as6mig.ErrExtractionFailed, task.ID, path, err)
		}
		if len(matches) > 0 {
			byTask[task.ID] = matches
		}
	}

	return fileResult{path: path, byTask: byTask}, nil
}

func validateTasks(tasks []as6mig.Task) error {
	if len(tasks) == 0 {
		return fmt.Errorf("scan requires at least one task")
	}
	seen := make(map[as6mig.TaskID]struct{}, len(tasks))
	for _, task := range tasks {
		if task.ID == "" {
			return fmt.Errorf("scan task has an empty id")
		}
		if task.Extract == nil {
			return fmt.Errorf("scan task %q has no extraction function", task.ID)
		}
		if _, dup := seen[task.ID]; dup {
			return fmt.Errorf("duplicate scan task id %q", task.ID)
		}
		seen[task.ID] = struct{}{}
	}
	return nil
}

func normalizeExtensions(exts []string) map[string]struct{} {
	wanted := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = struct{}{}
	}
	return wanted
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Verify Scanner implements the interface at compile time
var _ as6mig.FileScanner = (*Scanner)(nil)
