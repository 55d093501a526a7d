// Package rewrite holds mapping tables and applies them to source files.
//
// A Table is an ordered list of Old -> New rules with one match mode:
//
//   - Literal: plain substring replacement
//   - Word: whole-token replacement, ASCII word boundaries
//   - Member: ".Old" whole-token replacement for structure members
//
// Tables are applied in a single pass each, rule after rule. A later rule may
// therefore match text produced by an earlier one; ChainRisks lists such pairs.
//
// Tables in the WarnOnly and Removal categories only ever produce notices.
package rewrite
