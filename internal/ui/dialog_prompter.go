package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/as6mig/internal/tui/components"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// DialogPrompter shows a Yes/No dialog in the terminal.
// Closing the dialog without answering counts as no.
type DialogPrompter struct {
	options []tea.ProgramOption
}

// NewDialogPrompter creates a dialog prompter. Options are passed to the
// bubbletea program, e.g. to redirect input and output.
func NewDialogPrompter(options ...tea.ProgramOption) *DialogPrompter {
	return &DialogPrompter{options: options}
}

// Ask runs the dialog until the user answers or ctx is cancelled.
func (p *DialogPrompter) Ask(ctx context.Context, q as6mig.Question) (bool, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.options...)
	final, err := tea.NewProgram(components.NewConfirm(q.Message, q.Note, q.Default), opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, fmt.Errorf("confirmation dialog failed: %w", err)
	}
	return answer(final), nil
}

func answer(m tea.Model) bool {
	c, ok := m.(components.Confirm)
	return ok && c.Submitted() && c.Value()
}

var _ as6mig.Prompter = (*DialogPrompter)(nil)
