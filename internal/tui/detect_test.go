package tui

import (
	"testing"
)

func TestDetectMode_AS6MIG_NON_INTERACTIVE(t *testing.T) {
	t.Setenv("AS6MIG_NON_INTERACTIVE", "1")
	t.Setenv("CI", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv("AS6MIG_NON_INTERACTIVE", "")
	t.Setenv("CI", "true")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stdin/stdout are not terminals
	t.Setenv("AS6MIG_NON_INTERACTIVE", "")
	t.Setenv("CI", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive (no terminal in test)", got)
	}
}

func TestIsInteractive_ReturnsFalseInTests(t *testing.T) {
	t.Setenv("AS6MIG_NON_INTERACTIVE", "")
	t.Setenv("CI", "")

	if IsInteractive() {
		t.Error("IsInteractive() = true in test environment, want false")
	}
}

func TestMode_String(t *testing.T) {
	if got := ModeInteractive.String(); got != "interactive" {
		t.Errorf("ModeInteractive.String() = %q", got)
	}
	if got := ModeNonInteractive.String(); got != "non-interactive" {
		t.Errorf("ModeNonInteractive.String() = %q", got)
	}
}
