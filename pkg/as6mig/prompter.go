package as6mig

import "context"

// Question is a yes/no confirmation request.
type Question struct {
	// Message is the question itself.
	Message string

	// Note is optional context shown above the question, e.g. consequences of answering yes.
	Note string

	// Default is the answer used on empty input or when nobody can be asked.
	Default bool
}

// Prompter asks the user to confirm an operation before destructive work starts.
//
// Implementations:
//   - TerminalPrompter: Reads the answer from an interactive terminal
//   - DialogPrompter: Shows a Yes/No dialog
//   - DefaultPrompter: Answers with the question's default (headless runs)
//   - ForcedPrompter: Always answers yes (--yes)
//
// Callers never need to know which implementation is active.
type Prompter interface {
	// Ask presents the question and returns the answer.
	Ask(ctx context.Context, q Question) (bool, error)
}
