package as6mig

import "context"

// FileScanner defines the interface for parallel extraction over a directory tree.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// List returns every file under root whose extension matches one of exts.
	List(root string, exts []string) ([]string, error)

	// Scan applies every task to every listed file and aggregates the matches per task.
	Scan(ctx context.Context, root string, exts []string, tasks ...Task) (ScanResult, error)
}

// SourceFile is the decoded content of one file handed to an extraction function.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path string

	// RelativePath is the path relative to the scan root.
	RelativePath string

	// Content is the file decoded as ISO-8859-1.
	Content string
}

// ExtractFunc extracts matches from one file. Returning an error fails the whole scan.
type ExtractFunc func(ctx context.Context, file SourceFile) ([]Match, error)

// Task pairs an extraction function with the identifier its results are keyed by.
type Task struct {
	ID      TaskID
	Extract ExtractFunc
}
