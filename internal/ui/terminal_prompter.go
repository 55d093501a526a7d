package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// TerminalPrompter asks on a line-oriented terminal.
// An empty answer selects the default; anything other than y/yes is a no.
type TerminalPrompter struct {
	input  *bufio.Reader
	output io.Writer
}

// NewTerminalPrompter creates a prompter reading from stdin and writing to stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return NewTerminalPrompterWithIO(os.Stdin, os.Stdout)
}

// NewTerminalPrompterWithIO creates a prompter over explicit streams.
func NewTerminalPrompterWithIO(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{input: bufio.NewReader(in), output: out}
}

// Ask prints the note and the question, then waits for one line of input.
func (p *TerminalPrompter) Ask(ctx context.Context, q as6mig.Question) (bool, error) {
	if q.Note != "" {
		fmt.Fprintln(p.output, q.Note)
	}
	fmt.Fprintf(p.output, "%s %s: ", q.Message, hint(q.Default))

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		line, err := p.input.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		return parseAnswer(input, q.Default), nil
	}
}

func hint(def bool) string {
	if def {
		return "(y/n) [y]"
	}
	return "(y/n) [n]"
}

func parseAnswer(input string, def bool) bool {
	switch strings.ToLower(input) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

var _ as6mig.Prompter = (*TerminalPrompter)(nil)
