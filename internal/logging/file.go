package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// LogFile is a plain-text log mirror opened for one run.
type LogFile struct {
	f     *os.File
	RunID string
}

// OpenLogFile creates (or truncates) path and writes a header identifying the run.
func OpenLogFile(path, command string) (*LogFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	lf := &LogFile{f: f, RunID: uuid.NewString()}
	if err := writeHeader(f, lf.RunID, command, time.Now()); err != nil {
		f.Close()
		return nil, err
	}
	return lf, nil
}

func writeHeader(w io.Writer, runID, command string, at time.Time) error {
	_, err := fmt.Fprintf(w, "as6mig %s\nrun: %s\nstarted: %s\n\n", command, runID, at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}
	return nil
}

// Write implements io.Writer. Every line is synced to disk immediately.
func (lf *LogFile) Write(p []byte) (int, error) {
	n, err := lf.f.Write(p)
	if err != nil {
		return n, err
	}
	return n, lf.f.Sync()
}

// Path returns the file name.
func (lf *LogFile) Path() string {
	return lf.f.Name()
}

// Close closes the underlying file.
func (lf *LogFile) Close() error {
	return lf.f.Close()
}
