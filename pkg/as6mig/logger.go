package as6mig

// Logger provides a pluggable logging interface for as6mig operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information, tagged INFO.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Print writes a plain line with no severity tag: progress, headers, summaries.
	Print(format string, args ...interface{})

	// Info logs informational findings, tagged INFO.
	Info(format string, args ...interface{})

	// Warning logs findings the user should review but that do not block migration.
	Warning(format string, args ...interface{})

	// Mandatory logs findings that must be resolved before or during migration.
	Mandatory(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})

	// WithStage returns a logger that tags every message with the given stage,
	// e.g. "AS4" for work to do before conversion and "AS6" for work after it.
	WithStage(stage string) Logger
}
