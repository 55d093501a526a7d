package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

func newTestScanner(workers int) (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	return NewScannerWithFS(fs, workers), fs
}

// identifiers returns one match per whitespace-separated token containing needle.
func identifiers(needle string) as6mig.ExtractFunc {
	return func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
		var out []as6mig.Match
		for _, tok := range strings.Fields(f.Content) {
			if strings.Contains(tok, needle) {
				out = append(out, as6mig.Match{Identifier: tok, Reason: needle, Path: f.Path})
			}
		}
		return out, nil
	}
}

func TestNewScannerWithFS_NilFS(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil filesystem")
		}
	}()
	NewScannerWithFS(nil, 1)
}

func TestNewScanner_DefaultWorkers(t *testing.T) {
	s, _ := newTestScanner(0)
	assert.Equal(t, DefaultWorkers(), s.Workers())

	s, _ = newTestScanner(3)
	assert.Equal(t, 3, s.Workers())
}

func TestList_FiltersByExtension(t *testing.T) {
	s, fs := newTestScanner(2)
	fs.AddFile("Physical/Config1/X20CP1586/Hardware.hw", "")
	fs.AddFile("Physical/Config2/Hardware.HW", "")
	fs.AddFile("Physical/Config1/Cpu.pkg", "")
	fs.AddFile("Logical/Main.st", "")

	files, err := s.List("/project", []string{".hw"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"/project/Physical/Config1/X20CP1586/Hardware.hw",
		"/project/Physical/Config2/Hardware.HW",
	}, files)

	files, err = s.List("/project/Logical", []string{"st", "typ"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/project/Logical/Main.st"}, files)
}

func TestList_MissingRoot(t *testing.T) {
	s, _ := newTestScanner(1)
	_, err := s.List("/nowhere", []string{".st"})
	require.Error(t, err)
}

func TestScan_SingleTaskFlattens(t *testing.T) {
	s, fs := newTestScanner(4)
	fs.AddFile("a.st", "MpAxisBasic x")
	fs.AddFile("b.st", "MpAxisBasic MpAxisCyclicSet")

	matches, err := s.ScanOne(context.Background(), "/project", []string{".st"}, "axis", identifiers("MpAxis"))
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestScan_MultipleTasksKeyedByID(t *testing.T) {
	s, fs := newTestScanner(4)
	fs.AddFile("a.var", "fb : MC_BR_Old; x : REAL;")
	fs.AddFile("b.var", "y : REAL;")

	result, err := s.Scan(context.Background(), "/project", []string{".var"},
		as6mig.Task{ID: "fb", Extract: identifiers("MC_")},
		as6mig.Task{ID: "real", Extract: identifiers("REAL")},
		as6mig.Task{ID: "none", Extract: identifiers("nothing")},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Files)
	assert.Equal(t, []as6mig.TaskID{"fb", "none", "real"}, result.TaskIDs())
	assert.Len(t, result.ByTask["fb"], 1)
	assert.Len(t, result.ByTask["real"], 2)
	assert.Empty(t, result.ByTask["none"])
	assert.Nil(t, result.Skipped)
}

func TestScan_UnionIndependentOfWorkerCount(t *testing.T) {
	build := func(workers int) []as6mig.Match {
		s, fs := newTestScanner(workers)
		for i := 0; i < 50; i++ {
			fs.AddFile(fmt.Sprintf("dir%d/f%d.st", i%5, i), fmt.Sprintf("Tok%d TokShared", i))
		}
		matches, err := s.ScanOne(context.Background(), "/project", []string{".st"}, "tok", identifiers("Tok"))
		require.NoError(t, err)
		as6mig.SortMatches(matches)
		return matches
	}

	serial := build(1)
	require.Len(t, serial, 100)
	assert.Equal(t, serial, build(16))
}

func TestScan_EachFileReadOnce(t *testing.T) {
	mem := filesystem.NewMemoryFileSystem("/project")
	mem.AddFile("a.st", "x")
	mem.AddFile("b.st", "y")
	counting := &countingFS{FileSystemProvider: mem}
	s := NewScannerWithFS(counting, 2)

	_, err := s.Scan(context.Background(), "/project", []string{".st"},
		as6mig.Task{ID: "one", Extract: identifiers("x")},
		as6mig.Task{ID: "two", Extract: identifiers("y")},
	)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counting.reads.Load())
}

func TestScan_UnreadableFileSkipped(t *testing.T) {
	mem := filesystem.NewMemoryFileSystem("/project")
	mem.AddFile("good.st", "MpAxisBasic")
	mem.AddFile("bad.st", "MpAxisBasic")
	s := NewScannerWithFS(&failingFS{FileSystemProvider: mem, fail: "/project/bad.st"}, 2)

	result, err := s.Scan(context.Background(), "/project", []string{".st"},
		as6mig.Task{ID: "axis", Extract: identifiers("MpAxis")})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Files)
	assert.Len(t, result.Flat(), 1)
	require.Error(t, result.Skipped)
	assert.Contains(t, result.Skipped.Error(), "bad.st")
	assert.True(t, errors.Is(result.Skipped, fs.ErrPermission))
}

func TestScan_ExtractionErrorFailsBatch(t *testing.T) {
	s, fs := newTestScanner(2)
	for i := 0; i < 10; i++ {
		fs.AddFile(fmt.Sprintf("f%d.st", i), "x")
	}
	boom := errors.New("boom")

	_, err := s.Scan(context.Background(), "/project", []string{".st"},
		as6mig.Task{ID: "ok", Extract: identifiers("x")},
		as6mig.Task{ID: "broken", Extract: func(context.Context, as6mig.SourceFile) ([]as6mig.Match, error) {
			return nil, boom
		}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, as6mig.ErrExtractionFailed)
	assert.ErrorIs(t, err, boom)
}

func TestScan_InvalidTasks(t *testing.T) {
	s, fs := newTestScanner(1)
	fs.AddFile("a.st", "x")
	extract := identifiers("x")

	tests := []struct {
		name  string
		tasks []as6mig.Task
	}{
		{"no tasks", nil},
		{"empty id", []as6mig.Task{{ID: "", Extract: extract}}},
		{"nil function", []as6mig.Task{{ID: "a"}}},
		{"duplicate id", []as6mig.Task{{ID: "a", Extract: extract}, {ID: "a", Extract: extract}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Scan(context.Background(), "/project", []string{".st"}, tt.tasks...)
			require.Error(t, err)
		})
	}
}

func TestScan_CancelledContext(t *testing.T) {
	s, fs := newTestScanner(1)
	fs.AddFile("a.st", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx, "/project", []string{".st"}, as6mig.Task{ID: "x", Extract: identifiers("x")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_RelativePathAndLatin1(t *testing.T) {
	s, fs := newTestScanner(1)
	fs.AddBytes("Logical/Prog/Main.st", []byte{'T', 'e', 'm', 'p', 0xB0, 'C'})

	var seen as6mig.SourceFile
	_, err := s.Scan(context.Background(), "/project", []string{".st"}, as6mig.Task{
		ID: "capture",
		Extract: func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
			seen = f
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Logical/Prog/Main.st", seen.RelativePath)
	assert.Equal(t, "Temp°C", seen.Content)
}

type countingFS struct {
	filesystem.FileSystemProvider
	reads atomic.Int32
}

func (c *countingFS) ReadFile(path string) ([]byte, error) {
	c.reads.Add(1)
	return c.FileSystemProvider.ReadFile(path)
}

type failingFS struct {
	filesystem.FileSystemProvider
	fail string
}

func (f *failingFS) ReadFile(path string) ([]byte, error) {
	if path == f.fail {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrPermission)
	}
	return f.FileSystemProvider.ReadFile(path)
}

func (f *failingFS) OpenFile(path string) (io.ReadCloser, error) {
	if path == f.fail {
		return nil, fs.ErrPermission
	}
	return f.FileSystemProvider.OpenFile(path)
}
