package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(verbose bool) (*ConsoleLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewConsoleLoggerWithWriters(verbose, &out, &errOut), &out, &errOut
}

func TestConsoleLogger_Severities(t *testing.T) {
	logger, out, errOut := newBufferedLogger(true)

	logger.Print("Checking for invalid hardware...")
	logger.Info("No unsupported hardware found in the project.")
	logger.Verbose("scanned %d files", 3)
	logger.Warning("found %s", "X20CP1301")
	logger.Mandatory("runtime too old")
	logger.Error("cannot read %s", "Cpu.pkg")

	assert.Equal(t,
		"Checking for invalid hardware...\n"+
			"[INFO] No unsupported hardware found in the project.\n"+
			"[INFO] scanned 3 files\n"+
			"[WARNING] found X20CP1301\n"+
			"[MANDATORY] runtime too old\n",
		out.String())
	assert.Equal(t, "[ERROR] cannot read Cpu.pkg\n", errOut.String())
}

func TestConsoleLogger_VerboseDisabled(t *testing.T) {
	logger, out, _ := newBufferedLogger(false)
	logger.Verbose("hidden")
	assert.Empty(t, out.String())
	assert.False(t, logger.IsVerbose())
}

func TestConsoleLogger_PercentWithoutArgs(t *testing.T) {
	logger, out, _ := newBufferedLogger(false)
	logger.Print("100% done")
	assert.Equal(t, "100% done\n", out.String())
}

func TestConsoleLogger_InfoIsTagged(t *testing.T) {
	logger, out, errOut := newBufferedLogger(false)
	var mirror bytes.Buffer
	logger.SetMirror(&mirror)

	logger.Info("Do you want to continue? (Automatically using default: '%s')", "y")

	assert.Equal(t, "[INFO] Do you want to continue? (Automatically using default: 'y')\n", out.String())
	assert.Equal(t, out.String(), mirror.String())
	assert.Empty(t, errOut.String())
}

func TestConsoleLogger_WithStage(t *testing.T) {
	logger, out, _ := newBufferedLogger(false)

	logger.WithStage("AS4").Warning("unsupported hardware")
	logger.WithStage("AS6").Print("after conversion")
	logger.WithStage("AS4").Info("runtime is valid")

	assert.Equal(t, "[WARNING] [AS4] unsupported hardware\n[AS6] after conversion\n[INFO] [AS4] runtime is valid\n", out.String())
}

func TestConsoleLogger_Mirror(t *testing.T) {
	logger, out, errOut := newBufferedLogger(false)
	var mirror bytes.Buffer
	logger.SetMirror(&mirror)

	staged := logger.WithStage("AS4")
	staged.Mandatory("fix me")
	logger.Error("broken")
	logger.Verbose("not shown anywhere")

	assert.Equal(t, "[MANDATORY] [AS4] fix me\n", out.String())
	assert.Equal(t, "[ERROR] broken\n", errOut.String())
	assert.Equal(t, "[MANDATORY] [AS4] fix me\n[ERROR] broken\n", mirror.String())

	logger.SetMirror(nil)
	logger.Print("after")
	assert.NotContains(t, mirror.String(), "after")
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	logger, out, _ := newBufferedLogger(true)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.WithStage("AS4").Print("message %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 100)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[AS4] message "), "interleaved line: %q", line)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	logger.Print("plain")
	logger.Info("info")
	logger.WithStage("AS6").Warning("warning")
	assert.Same(t, logger, logger.WithStage("x"))
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	lf, err := OpenLogFile(path, "check")
	require.NoError(t, err)
	assert.Len(t, lf.RunID, 36)

	logger, _, _ := newBufferedLogger(false)
	logger.SetMirror(lf)
	logger.Warning("something")
	require.NoError(t, lf.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "as6mig check\nrun: "+lf.RunID+"\n"))
	assert.True(t, strings.HasSuffix(content, "[WARNING] something\n"))
	assert.NotContains(t, content, "\x1b[")
}

func TestOpenLogFile_BadPath(t *testing.T) {
	_, err := OpenLogFile(filepath.Join(t.TempDir(), "missing", "run.log"), "check")
	assert.Error(t, err)
}

// BenchmarkConsoleLogger_VerboseDisabled measures performance when verbose is disabled
func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger, _, _ := newBufferedLogger(false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

// Example demonstrates stage-tagged output
func ExampleConsoleLogger_WithStage() {
	var buf bytes.Buffer
	logger := NewConsoleLoggerWithWriters(false, &buf, &buf)
	logger.WithStage("AS4").Warning("The following unsupported hardware were found:")
	fmt.Print(buf.String())
	// Output:
	// [WARNING] [AS4] The following unsupported hardware were found:
}
