package as6mig

import "sort"

// Match is a single finding produced by an extraction function:
// an identifier found in a file together with the reason it was flagged.
// Match is comparable so a set of matches can be kept in a map.
type Match struct {
	Identifier string
	Reason     string
	Path       string
}

// TaskID names an extraction function within one scan.
// Results are keyed by TaskID, never by function identity.
type TaskID string

// ScanResult contains the aggregated results of a parallel scan.
type ScanResult struct {
	// ByTask maps each task to the matches it produced across all files.
	// Order within a slice follows task completion and is not stable.
	ByTask map[TaskID][]Match

	// Files is the number of files that matched the extension filter.
	Files int

	// Skipped aggregates read errors for files that could not be processed.
	// A skipped file never aborts the scan.
	Skipped error
}

// Flat returns the matches of the only task of a single-task scan.
// For scans with several tasks it returns all matches of all tasks.
func (r ScanResult) Flat() []Match {
	if len(r.ByTask) == 1 {
		for _, matches := range r.ByTask {
			return matches
		}
	}
	var all []Match
	for _, id := range r.TaskIDs() {
		all = append(all, r.ByTask[id]...)
	}
	return all
}

// TaskIDs returns the task identifiers in sorted order.
func (r ScanResult) TaskIDs() []TaskID {
	ids := make([]TaskID, 0, len(r.ByTask))
	for id := range r.ByTask {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortMatches orders matches by identifier, then path, then reason.
// Scan results carry no order guarantee; sort before display.
func SortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Identifier != b.Identifier {
			return a.Identifier < b.Identifier
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Reason < b.Reason
	})
}

// RuleHit records how often a single rule matched in one pass.
type RuleHit struct {
	Table string
	Old   string
	New   string
	Count int
}

// RewriteResult describes the outcome of applying rewrite passes to one file.
type RewriteResult struct {
	// Path is the rewritten file.
	Path string

	// Replacements is the total number of substitutions across all tables.
	Replacements int

	// Hits lists every rule that matched at least once, in application order.
	Hits []RuleHit

	// Changed reports whether the file bytes on disk actually changed.
	// It is false when nothing matched, and also when the written content
	// hashes identically to the original.
	Changed bool
}
