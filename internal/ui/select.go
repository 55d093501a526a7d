package ui

import (
	"github.com/vvka-141/as6mig/internal/tui"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// PromptSettings are the user's choices that affect prompting.
type PromptSettings struct {
	AssumeYes bool
	Dialog    bool
}

// Select picks the prompter for a run. --yes wins, then a session without a
// terminal falls back to defaults, then the dialog if it was requested.
func Select(mode tui.Mode, settings PromptSettings, logger as6mig.Logger) as6mig.Prompter {
	switch {
	case settings.AssumeYes:
		return NewForcedPrompter(logger)
	case mode == tui.ModeNonInteractive:
		return NewDefaultPrompter(logger)
	case settings.Dialog:
		return NewDialogPrompter()
	default:
		return NewTerminalPrompter()
	}
}
