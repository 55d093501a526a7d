package as6mig

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := mappmotion.Run(ctx, opts)
//	if errors.Is(err, as6mig.ErrApprovalDenied) {
//	    // Nothing was changed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrProjectNotFound indicates the given project path does not exist.
	ErrProjectNotFound = errors.New("project path not found")

	// ErrProjectFileMissing indicates no *.apj project file exists in the project path.
	ErrProjectFileMissing = errors.New("project file (*.apj) not found")

	// ErrPackageFileMissing indicates Logical/Libraries/Package.pkg could not be found.
	ErrPackageFileMissing = errors.New("library package file not found")

	// ErrApprovalDenied indicates the user declined the confirmation prompt.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrExtractionFailed indicates an extraction function failed during a parallel scan.
	ErrExtractionFailed = errors.New("extraction failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrProjectNotFound):
		return ExitProjectNotFound
	case errors.Is(err, ErrProjectFileMissing):
		return ExitProjectFileMissing
	case errors.Is(err, ErrPackageFileMissing):
		return ExitPackageFileMissing
	case errors.Is(err, ErrExtractionFailed):
		return ExitExtractionFailed
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	// cobra reports argument and flag misuse as plain errors
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts at most",
	"accepts 1 arg",
	"invalid argument",
	"flag needs an argument",
}
