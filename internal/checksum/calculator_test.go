package checksum

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

func calculators() []Calculator {
	return []Calculator{New(), NewHighway()}
}

func TestCalculateRaw_KnownSHA256(t *testing.T) {
	got := New().CalculateRaw(nil)
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("CalculateRaw(empty) = %s, want %s", got, want)
	}
}

func TestCalculateReader_MatchesRaw(t *testing.T) {
	content := []byte(strings.Repeat("MC_BR_CamAutomatSetPar_AcpAx;\n", 1000))

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			streamed, err := calc.CalculateReader(bytes.NewReader(content))
			if err != nil {
				t.Fatalf("CalculateReader() error = %v", err)
			}
			if raw := calc.CalculateRaw(content); streamed != raw {
				t.Errorf("streamed digest %s != raw digest %s", streamed, raw)
			}
			if len(streamed) != 64 {
				t.Errorf("digest length = %d, want 64 hex chars", len(streamed))
			}
		})
	}
}

func TestCalculateReader_Stable(t *testing.T) {
	content := []byte("<Module Name=\"X20CP1586\" Type=\"X20CP1586\" />")

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			a, _ := calc.CalculateReader(bytes.NewReader(content))
			b, _ := calc.CalculateReader(bytes.NewReader(content))
			if a != b {
				t.Errorf("digest is not deterministic: %s != %s", a, b)
			}
		})
	}
}

func TestCalculateReader_SingleByteMutation(t *testing.T) {
	content := []byte(strings.Repeat("abcdefgh", 1024))

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			base := calc.CalculateRaw(content)
			for _, pos := range []int{0, 4095, 4096, len(content) - 1} {
				mutated := append([]byte(nil), content...)
				mutated[pos] ^= 0x01
				if calc.CalculateRaw(mutated) == base {
					t.Errorf("flipping byte %d did not change the digest", pos)
				}
			}
		})
	}
}

// chunkRecorder records the size of every Read request.
type chunkRecorder struct {
	r     io.Reader
	sizes []int
}

func (c *chunkRecorder) Read(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return c.r.Read(p)
}

func TestCalculateReader_ReadsInFixedChunks(t *testing.T) {
	rec := &chunkRecorder{r: bytes.NewReader(make([]byte, 3*as6mig.HashChunkSize+7))}

	if _, err := New().CalculateReader(rec); err != nil {
		t.Fatalf("CalculateReader() error = %v", err)
	}
	for i, n := range rec.sizes {
		if n != as6mig.HashChunkSize {
			t.Fatalf("read %d requested %d bytes, want %d", i, n, as6mig.HashChunkSize)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestCalculateReader_ReadError(t *testing.T) {
	if _, err := New().CalculateReader(failingReader{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

func TestForName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "sha256", false},
		{"sha256", "sha256", false},
		{"highway", "highway", false},
		{"md5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := ForName(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAlgorithm) {
					t.Errorf("ForName(%q) error = %v, want ErrUnknownAlgorithm", tt.name, err)
				}
				return
			}
			if err != nil || calc.Name() != tt.want {
				t.Errorf("ForName(%q) = %v, %v", tt.name, calc, err)
			}
		})
	}
}

func TestFileDigest(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("Main.st", "x := 1;")

	digest, err := FileDigest(fs, New(), "/p/Main.st")
	if err != nil {
		t.Fatalf("FileDigest() error = %v", err)
	}
	if digest != New().CalculateRaw([]byte("x := 1;")) {
		t.Errorf("FileDigest() = %s, does not match content digest", digest)
	}

	if _, err := FileDigest(fs, New(), "/p/missing.st"); err == nil {
		t.Error("FileDigest(missing) should fail")
	}
}
