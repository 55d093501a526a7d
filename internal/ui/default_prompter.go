package ui

import (
	"context"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// DefaultPrompter answers every question with its default.
// Used when nobody is at the terminal.
type DefaultPrompter struct {
	logger as6mig.Logger
}

// NewDefaultPrompter creates a DefaultPrompter that reports each answer to logger.
func NewDefaultPrompter(logger as6mig.Logger) *DefaultPrompter {
	return &DefaultPrompter{logger: logger}
}

// Ask returns q.Default.
func (p *DefaultPrompter) Ask(ctx context.Context, q as6mig.Question) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer := "n"
	if q.Default {
		answer = "y"
	}
	p.logger.Info("%s (Automatically using default: '%s')", q.Message, answer)
	return q.Default, nil
}

// ForcedPrompter approves every question without asking.
type ForcedPrompter struct {
	logger as6mig.Logger
}

// NewForcedPrompter creates a ForcedPrompter.
func NewForcedPrompter(logger as6mig.Logger) *ForcedPrompter {
	return &ForcedPrompter{logger: logger}
}

// Ask returns true.
func (p *ForcedPrompter) Ask(ctx context.Context, q as6mig.Question) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.logger.Verbose("%s (confirmed by --yes)", q.Message)
	return true, nil
}

var (
	_ as6mig.Prompter = (*DefaultPrompter)(nil)
	_ as6mig.Prompter = (*ForcedPrompter)(nil)
)
