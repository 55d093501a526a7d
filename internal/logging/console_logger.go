package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Severity tags as they appear on every line.
const (
	TagInfo      = "[INFO]"
	TagWarning   = "[WARNING]"
	TagMandatory = "[MANDATORY]"
	TagError     = "[ERROR]"
)

// sink is shared by a logger and every stage-tagged logger derived from it.
type sink struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	mirror  io.Writer
	verbose bool

	infoStyle      lipgloss.Style
	warningStyle   lipgloss.Style
	mandatoryStyle lipgloss.Style
	errorStyle     lipgloss.Style
}

// ConsoleLogger writes severity-tagged lines to stdout, and errors to stderr.
// Print lines carry no tag; Verbose lines are tagged like Info.
// Tags are colored when the output supports it. An optional mirror receives
// the same lines without color codes.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	sink  *sink
	stage string
}

// NewConsoleLogger creates a ConsoleLogger writing to os.Stdout and os.Stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriters(verbose, os.Stdout, os.Stderr)
}

// NewConsoleLoggerWithWriters creates a ConsoleLogger with explicit writers.
// Color support is detected per writer, so a bytes.Buffer gets plain text.
func NewConsoleLoggerWithWriters(verbose bool, out, errOut io.Writer) *ConsoleLogger {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &ConsoleLogger{
		sink: &sink{
			out:     out,
			errOut:  errOut,
			verbose: verbose,

			infoStyle:      outRenderer.NewStyle().Foreground(lipgloss.Color("10")),
			warningStyle:   outRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			mandatoryStyle: outRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			errorStyle:     errRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		},
	}
}

// SetMirror sends every emitted line, uncolored, to w as well. Passing nil
// disables mirroring. It affects all loggers derived through WithStage.
func (l *ConsoleLogger) SetMirror(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.mirror = w
}

// IsVerbose reports whether Verbose() produces output.
func (l *ConsoleLogger) IsVerbose() bool {
	return l.sink.verbose
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.sink.verbose {
		return
	}
	l.write(l.sink.out, TagInfo, l.sink.infoStyle, format, args)
}

// Print writes an untagged line.
func (l *ConsoleLogger) Print(format string, args ...interface{}) {
	l.write(l.sink.out, "", lipgloss.Style{}, format, args)
}

// Info logs informational findings.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(l.sink.out, TagInfo, l.sink.infoStyle, format, args)
}

// Warning logs findings to review before or after migration.
func (l *ConsoleLogger) Warning(format string, args ...interface{}) {
	l.write(l.sink.out, TagWarning, l.sink.warningStyle, format, args)
}

// Mandatory logs findings that block migration until resolved.
func (l *ConsoleLogger) Mandatory(format string, args ...interface{}) {
	l.write(l.sink.out, TagMandatory, l.sink.mandatoryStyle, format, args)
}

// Error logs error messages to the error writer.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.sink.errOut, TagError, l.sink.errorStyle, format, args)
}

// WithStage returns a logger that prefixes messages with "[stage]".
func (l *ConsoleLogger) WithStage(stage string) as6mig.Logger {
	return &ConsoleLogger{sink: l.sink, stage: stage}
}

func (l *ConsoleLogger) write(w io.Writer, tag string, style lipgloss.Style, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if l.stage != "" {
		msg = "[" + l.stage + "] " + msg
	}

	console, plain := msg, msg
	if tag != "" {
		console = style.Render(tag) + " " + msg
		plain = tag + " " + msg
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	fmt.Fprintln(w, console)
	if l.sink.mirror != nil {
		fmt.Fprintln(l.sink.mirror, plain)
	}
}

var _ as6mig.Logger = (*ConsoleLogger)(nil)
