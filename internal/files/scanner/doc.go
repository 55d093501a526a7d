// Package scanner runs extraction functions over a project tree in parallel.
//
// The scanner package is responsible for:
//   - Eagerly discovering files by extension
//   - Reading and decoding each file once (ISO-8859-1)
//   - Running every extraction task over every file on a bounded worker pool
//   - Merging per-task results and collecting unreadable files
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
//
// Extraction functions run concurrently and must not share mutable state.
package scanner
