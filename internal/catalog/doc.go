// Package catalog loads the discontinuation lists the checks compare a
// project against: unsupported hardware, obsolete function blocks and
// functions, and deprecated library functions.
//
// The lists ship embedded in the binary. A directory of JSON files with the
// same names can replace them without rebuilding.
package catalog
