package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/minio/highwayhash"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// ErrUnknownAlgorithm is returned by ForName for unsupported algorithm names.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Calculator is an interface for computing content fingerprints.
// This abstraction allows for different digest algorithms.
type Calculator interface {
	// Name identifies the algorithm, e.g. "sha256".
	Name() string

	// CalculateRaw computes a digest of an in-memory byte slice.
	CalculateRaw(content []byte) string

	// CalculateReader streams r through the digest in HashChunkSize reads.
	CalculateReader(r io.Reader) (string, error)
}

// SHA256 implements Calculator using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates the default SHA-256 calculator.
func New() SHA256 {
	return SHA256{}
}

func (SHA256) Name() string { return "sha256" }

// CalculateRaw computes SHA-256 of raw content.
func (SHA256) CalculateRaw(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CalculateReader computes SHA-256 of everything read from r.
func (SHA256) CalculateReader(r io.Reader) (string, error) {
	return stream(sha256.New(), r)
}

// highwayKey is fixed so digests are comparable across runs.
var highwayKey = []byte("as6mig-content-fingerprint-key!!")

// Highway implements Calculator using HighwayHash-256.
// It is considerably faster than SHA-256 on large hardware descriptors and
// is safe for concurrent use; each call creates its own hash state.
type Highway struct{}

// NewHighway creates a HighwayHash-256 calculator.
func NewHighway() Highway {
	return Highway{}
}

func (Highway) Name() string { return "highway" }

// CalculateRaw computes HighwayHash-256 of raw content.
func (Highway) CalculateRaw(content []byte) string {
	sum := highwayhash.Sum(content, highwayKey)
	return hex.EncodeToString(sum[:])
}

// CalculateReader computes HighwayHash-256 of everything read from r.
func (Highway) CalculateReader(r io.Reader) (string, error) {
	h, err := highwayhash.New(highwayKey)
	if err != nil {
		return "", fmt.Errorf("failed to initialise highwayhash: %w", err)
	}
	return stream(h, r)
}

// stream feeds r into h in fixed-size chunks; the whole input is never held in memory.
func stream(h hash.Hash, r io.Reader) (string, error) {
	buf := make([]byte, as6mig.HashChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ForName returns the calculator for a configured algorithm name.
// An empty name selects SHA-256.
func ForName(name string) (Calculator, error) {
	switch name {
	case "", "sha256":
		return New(), nil
	case "highway", "highwayhash":
		return NewHighway(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// FileDigest streams the file at path through calc.
func FileDigest(fsProvider filesystem.FileSystemProvider, calc Calculator, path string) (string, error) {
	rc, err := fsProvider.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer rc.Close()

	digest, err := calc.CalculateReader(rc)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return digest, nil
}
