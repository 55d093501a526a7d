package rewrite

import (
	"context"
	"fmt"

	"github.com/vvka-141/as6mig/internal/checksum"
	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/files/textcodec"
	"github.com/vvka-141/as6mig/internal/retry"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Rewriter applies replacement tables to files in place.
// Rewriter is safe for concurrent use on distinct files.
type Rewriter struct {
	fsProvider filesystem.FileSystemProvider
	calculator checksum.Calculator
	writes     *retry.Executor
}

// NewRewriter creates a rewriter over the OS filesystem.
// Panics if calculator is nil.
func NewRewriter(calculator checksum.Calculator) *Rewriter {
	return NewRewriterWithFS(calculator, filesystem.NewOSFileSystem())
}

// NewRewriterWithFS creates a rewriter with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewRewriterWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Rewriter {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Rewriter{
		calculator: calculator,
		fsProvider: fsProvider,
		writes:     retry.NewExecutor(retry.NewFileLockClassifier(), retry.NewExponentialBackoff(3)),
	}
}

// WithRetry returns a copy of r that writes files through executor.
func (r *Rewriter) WithRetry(executor *retry.Executor) *Rewriter {
	clone := *r
	clone.writes = executor
	return &clone
}

// Apply runs the replacement tables over the file at path, in order, and writes
// the result back when the text changed.
//
// The file is read as ISO-8859-1 and written back in the same encoding without a
// byte-order mark. Changed is decided by comparing content digests taken before
// and after the write, so a pass whose substitutions cancel out or encode to the
// original bytes reports Changed=false even though Replacements is positive.
func (r *Rewriter) Apply(ctx context.Context, path string, tables ...*Table) (as6mig.RewriteResult, error) {
	result := as6mig.RewriteResult{Path: path}

	for _, t := range tables {
		if t.Category != Replace {
			return result, fmt.Errorf("%w: table %q is a %s table and cannot rewrite files", ErrInvalidTable, t.Name, t.Category)
		}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	before, err := checksum.FileDigest(r.fsProvider, r.calculator, path)
	if err != nil {
		return result, err
	}

	raw, err := r.fsProvider.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}
	original := textcodec.DecodeLenient(raw)

	content := original
	for _, t := range tables {
		var hits []as6mig.RuleHit
		content, hits = t.apply(content)
		for _, h := range hits {
			result.Replacements += h.Count
		}
		result.Hits = append(result.Hits, hits...)
	}

	if result.Replacements == 0 || content == original {
		return result, nil
	}

	encoded, err := textcodec.Encode(content)
	if err != nil {
		return result, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	err = r.writes.Execute(ctx, func(context.Context) error {
		return r.fsProvider.WriteFile(path, encoded)
	})
	if err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}

	after, err := checksum.FileDigest(r.fsProvider, r.calculator, path)
	if err != nil {
		return result, err
	}
	result.Changed = before != after
	return result, nil
}

// Read decodes the file at path for the notice-only passes.
func (r *Rewriter) Read(path string) (string, error) {
	raw, err := r.fsProvider.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return textcodec.DecodeLenient(raw), nil
}

// Warn reports occurrences of warn-only identifiers. They are never rewritten.
func (r *Rewriter) Warn(content string, table *Table) []as6mig.RuleHit {
	return table.Find(content)
}

// Removals reports occurrences of identifiers whose functionality moved into
// another function block. They are never rewritten.
func (r *Rewriter) Removals(content string, table *Table) []RemovalNotice {
	return table.Removals(content)
}
