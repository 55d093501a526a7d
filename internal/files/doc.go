// Package files groups the file handling used by the checks and the migration:
//   - filesystem: provider abstraction over the OS, memory and embedded files
//   - scanner: bounded parallel discovery and extraction over a directory tree
//   - textcodec: ISO-8859-1 conversion for Automation Studio sources
package files
