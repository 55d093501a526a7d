package as6mig_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, as6mig.ExitSuccess},
		{"general error", errors.New("something went wrong"), as6mig.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag: --foo"), as6mig.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), as6mig.ExitUsageError},
		{"too many args", errors.New("accepts at most 1 arg(s), received 2"), as6mig.ExitUsageError},
		{"invalid config", as6mig.ErrInvalidConfig, as6mig.ExitConfigError},
		{"project not found", as6mig.ErrProjectNotFound, as6mig.ExitProjectNotFound},
		{"apj missing", as6mig.ErrProjectFileMissing, as6mig.ExitProjectFileMissing},
		{"package missing", as6mig.ErrPackageFileMissing, as6mig.ExitPackageFileMissing},
		{"extraction failed", as6mig.ErrExtractionFailed, as6mig.ExitExtractionFailed},
		{"approval denied", as6mig.ErrApprovalDenied, as6mig.ExitApprovalDenied},
		{"wrapped sentinel", fmt.Errorf("validate: %w", as6mig.ErrProjectFileMissing), as6mig.ExitProjectFileMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := as6mig.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
