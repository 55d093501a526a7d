// Package checksum fingerprints file content.
//
// A fingerprint is a fixed-size hex digest over the full byte content of a
// file. Rewrite passes take one before and one after writing a file back;
// identical fingerprints mean the pass was a no-op on disk, whatever the
// in-memory string comparison said.
//
// # Example Usage
//
//	calc := checksum.New()
//	before, err := checksum.FileDigest(fs, calc, path)
//	// ... rewrite ...
//	after, err := checksum.FileDigest(fs, calc, path)
//	changed := before != after
//
// # Thread Safety
//
// SHA256 and Highway are safe for concurrent use by multiple goroutines.
package checksum
