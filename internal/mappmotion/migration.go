package mappmotion

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/as6mig/internal/checksum"
	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/files/scanner"
	"github.com/vvka-141/as6mig/internal/project"
	"github.com/vvka-141/as6mig/internal/retry"
	"github.com/vvka-141/as6mig/internal/rewrite"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

var (
	sourceExtensions      = []string{".st", ".c", ".cpp", ".ab"}
	declarationExtensions = []string{".typ", ".var", ".fun"}
)

const intro = "as6mig will search for usages of mappMotion function blocks, types and enumerators and update the naming.\n" +
	"Before proceeding, make sure you have a backup or are using version control (e.g., Git)."

// CompileNote accompanies the confirmation prompt.
const CompileNote = "After conversion, the project will no longer compile in Automation Studio 4."

// Options configures a migration run.
type Options struct {
	ProjectPath string

	// Mapping defaults to DefaultMapping.
	Mapping *Mapping

	Prompter as6mig.Prompter
	Logger   as6mig.Logger

	// FileSystem defaults to the OS filesystem.
	FileSystem filesystem.FileSystemProvider

	// Calculator fingerprints files around each write; defaults to SHA-256.
	Calculator checksum.Calculator
}

// Summary holds the totals of a migration run.
type Summary struct {
	FunctionBlocks int
	Inputs         int
	Enums          int
	Types          int

	// FilesChanged counts distinct files, not passes.
	FilesChanged int
}

// Empty reports whether nothing was replaced.
func (s Summary) Empty() bool {
	return s.FunctionBlocks == 0 && s.Inputs == 0 && s.Enums == 0 && s.Types == 0
}

// Run migrates the mappMotion identifiers of the project at opts.ProjectPath.
// Nothing is written until the prompter approves; a refusal returns
// as6mig.ErrApprovalDenied.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Prompter == nil {
		return Summary{}, fmt.Errorf("%w: prompter is required", as6mig.ErrInvalidConfig)
	}
	if opts.Logger == nil {
		return Summary{}, fmt.Errorf("%w: logger is required", as6mig.ErrInvalidConfig)
	}
	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewOSFileSystem()
	}
	if opts.Calculator == nil {
		opts.Calculator = checksum.New()
	}
	if opts.Mapping == nil {
		m, err := DefaultMapping()
		if err != nil {
			return Summary{}, err
		}
		opts.Mapping = m
	}
	log := opts.Logger

	proj, err := project.Validate(opts.FileSystem, opts.ProjectPath)
	if err != nil {
		return Summary{}, err
	}
	log.Print("Project path validated: %s", proj.Path)
	log.Print("Using project file: %s", proj.File)

	found, err := project.DetectLibraries(opts.FileSystem, proj, Libraries)
	if err != nil {
		return Summary{}, err
	}

	log.Print(intro)

	q := as6mig.Question{Message: "Do you want to continue?", Note: CompileNote, Default: true}
	if len(found) == 0 {
		log.Print("None of the libraries supported by the script were found.")
		q.Message = "Do you want to proceed with replacing functions and constants anyway?"
	} else {
		log.Print("Libraries found: %s.", strings.Join(found, ", "))
	}

	ok, err := opts.Prompter.Ask(ctx, q)
	if err != nil {
		return Summary{}, err
	}
	if !ok {
		log.Print("Operation cancelled. No changes were made.")
		return Summary{}, as6mig.ErrApprovalDenied
	}

	for _, risk := range opts.Mapping.ChainRisks() {
		log.Verbose("Rule order matters: %s", risk)
	}

	m := &migration{
		mapping:  opts.Mapping,
		rewriter: rewrite.NewRewriterWithFS(opts.Calculator, opts.FileSystem).WithRetry(writeRetry(log)),
		log:      log,
		changed:  make(map[string]struct{}),
	}

	files, err := scanner.NewScannerWithFS(opts.FileSystem, 1).
		List(proj.Logical, append(append([]string{}, sourceExtensions...), declarationExtensions...))
	if err != nil {
		return Summary{}, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return m.summary, err
		}
		if underLibraries(proj.Logical, path) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case hasExtension(sourceExtensions, ext):
			err = m.source(ctx, path)
		case hasExtension(declarationExtensions, ext):
			err = m.declarations(ctx, path)
		}
		if err != nil {
			return m.summary, err
		}
	}
	m.summary.FilesChanged = len(m.changed)

	logSummary(log, m.summary)
	return m.summary, nil
}

type migration struct {
	mapping  *Mapping
	rewriter *rewrite.Rewriter
	log      as6mig.Logger
	summary  Summary
	changed  map[string]struct{}
}

// source handles program files: warnings, then enumerators, then inputs.
func (m *migration) source(ctx context.Context, path string) error {
	content, err := m.rewriter.Read(path)
	if err != nil {
		return err
	}
	for _, hit := range m.rewriter.Warn(content, m.mapping.InputWarnings) {
		m.log.Print("Found usages of '%s', needs replacing with '%s' - skipping auto-replacement due to possible functionality change", hit.Old, hit.New)
	}

	res, err := m.rewriter.Apply(ctx, path, m.mapping.Enums)
	if err != nil {
		return err
	}
	if m.record(res) {
		m.summary.Enums += res.Replacements
	}

	res, err = m.rewriter.Apply(ctx, path, m.mapping.Inputs)
	if err != nil {
		return err
	}
	if m.record(res) {
		m.summary.Inputs += res.Replacements
	}
	return nil
}

// declarations handles type and variable files: function blocks and types in
// one write, with notices for blocks that were folded into others.
func (m *migration) declarations(ctx context.Context, path string) error {
	content, err := m.rewriter.Read(path)
	if err != nil {
		return err
	}
	for _, r := range m.rewriter.Removals(content, m.mapping.Removals) {
		if r.Element != "" {
			m.log.Print("Found usage(s) of '%s', the functionality is now covered by the element '%s' of the FB '%s' - skipping auto-replacement due to expected functionality change", r.Old, r.Element, r.Owner)
		} else {
			m.log.Print("Found usage(s) of '%s', the functionality is now covered by the FB '%s' - skipping auto-replacement due to expected functionality change", r.Old, r.Owner)
		}
	}

	res, err := m.rewriter.Apply(ctx, path, m.mapping.FunctionBlocks, m.mapping.Types)
	if err != nil {
		return err
	}
	if m.record(res) {
		for _, hit := range res.Hits {
			switch hit.Table {
			case m.mapping.FunctionBlocks.Name:
				m.summary.FunctionBlocks += hit.Count
			case m.mapping.Types.Name:
				m.summary.Types += hit.Count
			}
		}
	}
	return nil
}

// record logs one pass and reports whether it changed the file.
func (m *migration) record(res as6mig.RewriteResult) bool {
	for _, hit := range res.Hits {
		m.log.Verbose("Replaced %d occurrence(s) of '%s' with '%s'", hit.Count, hit.Old, hit.New)
	}
	if !res.Changed {
		return false
	}
	m.changed[res.Path] = struct{}{}
	m.log.Print("%4d change(s) written to: %s", res.Replacements, res.Path)
	return true
}

// writeRetry waits out files that are briefly locked by another program.
func writeRetry(log as6mig.Logger) *retry.Executor {
	return retry.NewExecutor(retry.NewFileLockClassifier(), retry.NewExponentialBackoff(4)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Warning("%v - file is in use, retrying in %s", err, delay.Round(time.Millisecond))
		})
}

func logSummary(log as6mig.Logger, s Summary) {
	log.Print("")
	log.Print("Summary:")
	log.Print("Total function blocks replaced: %d", s.FunctionBlocks)
	log.Print("Total function block inputs replaced: %d", s.Inputs)
	log.Print("Total enumerators replaced: %d", s.Enums)
	log.Print("Total types replaced: %d", s.Types)
	log.Print("Total files changed: %d", s.FilesChanged)
	if s.Empty() {
		log.Print("No functions, inputs or constants needed to be replaced.")
	} else {
		log.Print("Replacement completed successfully.")
	}
}

// underLibraries reports whether path sits in a library directory below logical.
// User libraries are not migrated yet.
func underLibraries(logical, path string) bool {
	rel, err := filepath.Rel(logical, filepath.Dir(path))
	if err != nil {
		return false
	}
	return strings.Contains(filepath.ToSlash(rel), as6mig.LibrariesDir)
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
