package checks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vvka-141/as6mig/internal/catalog"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// Task identifiers of the function checks.
const (
	TaskObsoleteFunctionBlocks    as6mig.TaskID = "obsolete_fbks"
	TaskObsoleteFunctions         as6mig.TaskID = "obsolete_funcs"
	TaskDeprecatedStringFunctions as6mig.TaskID = "deprecated_string_functions"
	TaskDeprecatedMathFunctions   as6mig.TaskID = "deprecated_math_functions"
)

var (
	// declarationPattern matches instance declarations such as "fb : MpAlarmXConfigMapping;".
	declarationPattern = regexp.MustCompile(`:\s*([A-Za-z0-9_]+)\s*;`)

	tokenPattern = regexp.MustCompile(`\b([A-Za-z0-9_]+)\b`)
)

// ExtractObsoleteFunctionBlocks reports declarations whose type is in index.
// index is keyed by lower-cased name; the lookup ignores case.
func ExtractObsoleteFunctionBlocks(index map[string]catalog.Entry) as6mig.ExtractFunc {
	return func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
		var set matchSet
		for _, m := range declarationPattern.FindAllStringSubmatch(f.Content, -1) {
			if e, ok := index[strings.ToLower(m[1])]; ok {
				set.add(as6mig.Match{Identifier: e.ID, Reason: e.Reason, Path: f.Path})
			}
		}
		return set.matches, nil
	}
}

// ExtractObsoleteFunctions reports every whole token found in index, ignoring case.
func ExtractObsoleteFunctions(index map[string]catalog.Entry) as6mig.ExtractFunc {
	return func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
		var set matchSet
		for _, tok := range tokenPattern.FindAllString(f.Content, -1) {
			if e, ok := index[strings.ToLower(tok)]; ok {
				set.add(as6mig.Match{Identifier: e.ID, Reason: e.Reason, Path: f.Path})
			}
		}
		return set.matches, nil
	}
}

// ExtractWholeWords reports each name that occurs as a whole token.
// An empty name list matches nothing.
func ExtractWholeWords(names []string, reason string) as6mig.ExtractFunc {
	return extractNames(names, reason, `\b(%s)\b`)
}

// ExtractCalls reports each name that occurs in call form, "name(" with optional spaces.
func ExtractCalls(names []string, reason string) as6mig.ExtractFunc {
	return extractNames(names, reason, `\b(%s)\s*\(`)
}

func extractNames(names []string, reason, format string) as6mig.ExtractFunc {
	if len(names) == 0 {
		return func(context.Context, as6mig.SourceFile) ([]as6mig.Match, error) { return nil, nil }
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	re := regexp.MustCompile(fmt.Sprintf(format, strings.Join(quoted, "|")))

	return func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
		var set matchSet
		for _, m := range re.FindAllStringSubmatch(f.Content, -1) {
			set.add(as6mig.Match{Identifier: m[1], Reason: reason, Path: f.Path})
		}
		return set.matches, nil
	}
}

// Functions reports obsolete function blocks and functions, then deprecated
// AsString and AsMath functions, in the program sources under logicalPath.
func (c *Checker) Functions(ctx context.Context, logicalPath string) (Report, error) {
	report := Report{Name: "functions"}
	c.header("Checking for obsolete and deprecated FUBs and functions...")

	obsolete, err := c.scan(ctx, logicalPath, []string{".var", ".typ", ".st", ".c", ".cpp"},
		as6mig.Task{
			ID:      TaskObsoleteFunctionBlocks,
			Extract: onlyExtensions(ExtractObsoleteFunctionBlocks(c.catalogs.Load(catalog.ObsoleteFunctionBlocks).IndexFold()), ".var", ".typ"),
		},
		as6mig.Task{
			ID:      TaskObsoleteFunctions,
			Extract: onlyExtensions(ExtractObsoleteFunctions(c.catalogs.Load(catalog.ObsoleteFunctions).IndexFold()), ".st", ".c", ".cpp"),
		},
	)
	if err != nil {
		return report, fmt.Errorf("function check failed: %w", err)
	}

	blocks := obsolete.ByTask[TaskObsoleteFunctionBlocks]
	funcs := obsolete.ByTask[TaskObsoleteFunctions]
	as6mig.SortMatches(blocks)
	as6mig.SortMatches(funcs)

	if len(blocks) > 0 {
		c.logger.Warning("%s", formatMatches("The following invalid function blocks were found in .var and .typ files:", blocks))
	}
	if len(funcs) > 0 {
		c.logger.Warning("%s", formatMatches("The following invalid functions were found in .st, .c and .cpp files:", funcs))
	}
	if len(blocks) == 0 && len(funcs) == 0 {
		c.logger.Verbose("No invalid function blocks or functions found in the project.")
	}
	report.Findings += len(blocks) + len(funcs)

	deprecated, err := c.scan(ctx, logicalPath, []string{".st", ".ab"},
		as6mig.Task{
			ID:      TaskDeprecatedStringFunctions,
			Extract: ExtractWholeWords(c.catalogs.Load(catalog.DeprecatedStringFunctions).Identifiers(), "AsString"),
		},
		as6mig.Task{
			ID:      TaskDeprecatedMathFunctions,
			Extract: onlyExtensions(ExtractCalls(c.catalogs.Load(catalog.DeprecatedMathFunctions).Identifiers(), "AsMath"), ".st"),
		},
	)
	if err != nil {
		return report, fmt.Errorf("function check failed: %w", err)
	}

	stage := c.logger.WithStage(StageAS6)
	if files := distinctPaths(deprecated.ByTask[TaskDeprecatedStringFunctions]); len(files) > 0 {
		stage.Warning("- Deprecated AsString functions detected in the project: Consider replacing them with their AsBrStr counterparts.")
		c.logger.Verbose("%s", formatFiles("Deprecated AsString functions detected in the following files:", files))
		report.Findings++
	}
	if files := distinctPaths(deprecated.ByTask[TaskDeprecatedMathFunctions]); len(files) > 0 {
		stage.Warning("- Deprecated AsMath functions detected in the project: Consider replacing them with their AsBrMath counterparts.")
		c.logger.Verbose("%s", formatFiles("Deprecated AsMath functions detected in the following files:", files))
		report.Findings++
	}

	return report, nil
}

func formatMatches(title string, matches []as6mig.Match) string {
	var sb strings.Builder
	sb.WriteString(title)
	for _, m := range matches {
		fmt.Fprintf(&sb, "\n- %s: %s (Found in: %s)", m.Identifier, m.Reason, m.Path)
	}
	return sb.String()
}

func formatFiles(title string, files []string) string {
	var sb strings.Builder
	sb.WriteString(title)
	for _, f := range files {
		fmt.Fprintf(&sb, "\n- %s", f)
	}
	return sb.String()
}

func distinctPaths(matches []as6mig.Match) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, m := range matches {
		if _, ok := seen[m.Path]; ok {
			continue
		}
		seen[m.Path] = struct{}{}
		paths = append(paths, m.Path)
	}
	sort.Strings(paths)
	return paths
}
