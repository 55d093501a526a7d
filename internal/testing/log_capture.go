package testing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Severity of a captured log entry.
const (
	SeverityPlain     = "PLAIN"
	SeverityVerbose   = "VERBOSE"
	SeverityInfo      = "INFO"
	SeverityWarning   = "WARNING"
	SeverityMandatory = "MANDATORY"
	SeverityError     = "ERROR"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Severity string
	Stage    string
	Message  string
}

// LogCapture is an as6mig.Logger that records every call for assertions.
// Verbose entries are always recorded; callers filter by severity.
// Thread-safe for concurrent use.
type LogCapture struct {
	state *captureState
	stage string
}

type captureState struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogCapture creates an empty LogCapture.
func NewLogCapture() *LogCapture {
	return &LogCapture{state: &captureState{}}
}

func (c *LogCapture) record(severity, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.entries = append(c.state.entries, LogEntry{Severity: severity, Stage: c.stage, Message: msg})
}

func (c *LogCapture) Verbose(format string, args ...interface{}) {
	c.record(SeverityVerbose, format, args)
}

func (c *LogCapture) Print(format string, args ...interface{}) {
	c.record(SeverityPlain, format, args)
}

func (c *LogCapture) Info(format string, args ...interface{}) {
	c.record(SeverityInfo, format, args)
}

func (c *LogCapture) Warning(format string, args ...interface{}) {
	c.record(SeverityWarning, format, args)
}

func (c *LogCapture) Mandatory(format string, args ...interface{}) {
	c.record(SeverityMandatory, format, args)
}

func (c *LogCapture) Error(format string, args ...interface{}) {
	c.record(SeverityError, format, args)
}

// WithStage returns a capture sharing this one's entries, tagged with stage.
func (c *LogCapture) WithStage(stage string) as6mig.Logger {
	return &LogCapture{state: c.state, stage: stage}
}

// Entries returns a copy of all captured entries.
func (c *LogCapture) Entries() []LogEntry {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	result := make([]LogEntry, len(c.state.entries))
	copy(result, c.state.entries)
	return result
}

// Messages returns the messages logged at severity, in order.
func (c *LogCapture) Messages(severity string) []string {
	var result []string
	for _, e := range c.Entries() {
		if e.Severity == severity {
			result = append(result, e.Message)
		}
	}
	return result
}

// Find returns the entries whose message contains substr.
func (c *LogCapture) Find(substr string) []LogEntry {
	var result []LogEntry
	for _, e := range c.Entries() {
		if strings.Contains(e.Message, substr) {
			result = append(result, e)
		}
	}
	return result
}

// Contains reports whether any message contains substr.
func (c *LogCapture) Contains(substr string) bool {
	return len(c.Find(substr)) > 0
}

// Reset clears all captured entries.
func (c *LogCapture) Reset() {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.entries = nil
}

// Count returns the number of captured entries.
func (c *LogCapture) Count() int {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return len(c.state.entries)
}

var _ as6mig.Logger = (*LogCapture)(nil)
