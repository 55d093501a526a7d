// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// Scanning, hashing and rewriting all go through FileSystemProvider so the
// same code runs against a project on disk, an in-memory tree in tests, and
// data compiled into the binary.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: Mutable in-memory tree for testing
//   - FSFileSystem: Read-only view over any fs.FS (embedded catalogs and mapping tables)
package filesystem
