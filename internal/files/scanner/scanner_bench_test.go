package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkScan benchmarks a two-task scan over the real filesystem
func BenchmarkScan(b *testing.B) {
	tempDir := b.TempDir()

	for i := 0; i < 200; i++ {
		dir := filepath.Join(tempDir, fmt.Sprintf("Config%d", i%10))
		if err := os.MkdirAll(dir, 0755); err != nil {
			b.Fatal(err)
		}
		content := "<Module Name=\"DI1\" Type=\"X20DI9371\" />\n<Module Name=\"CPU\" Type=\"X20CP1586\" />\n"
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%d.hw", i)), []byte(content), 0644); err != nil {
			b.Fatal(err)
		}
	}

	s := NewScanner(0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.ScanOne(ctx, tempDir, []string{".hw"}, "x20", identifiers("X20")); err != nil {
			b.Fatal(err)
		}
	}
}
