// Package mappmotion migrates mappMotion 5 identifiers in an Automation Studio
// project to their mappMotion 6 names.
//
// Program files (.st, .c, .cpp, .ab) get enumerator and function block input
// renames; declaration files (.typ, .var, .fun) get function block and type
// renames. Identifiers whose behavior changed are reported, never rewritten.
// Files under Logical/Libraries are left alone.
package mappmotion
