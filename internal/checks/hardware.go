package checks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vvka-141/as6mig/internal/catalog"
	"github.com/vvka-141/as6mig/internal/project"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// TaskHardware keys unsupported hardware matches.
const TaskHardware as6mig.TaskID = "unsupported_hw"

// moduleTypePattern extracts module types from hardware descriptors.
// Each <Module> element is expected on a single line, as Automation Studio writes them.
var moduleTypePattern = regexp.MustCompile(`<Module [^>]*Type="([^"]+)"`)

// ExtractHardware returns an extraction function reporting every module type
// found in index (module type -> reason). Each (type, reason, file) is reported once.
func ExtractHardware(index map[string]string) as6mig.ExtractFunc {
	return func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
		var set matchSet
		for _, m := range moduleTypePattern.FindAllStringSubmatch(f.Content, -1) {
			if reason, ok := index[m[1]]; ok {
				set.add(as6mig.Match{Identifier: m[1], Reason: reason, Path: f.Path})
			}
		}
		return set.matches, nil
	}
}

// HardwareGroup is one unsupported module type with the configurations using it.
type HardwareGroup struct {
	ID      string
	Reason  string
	Configs []string
}

// GroupHardware groups matches by module type. Groups are sorted by ID and
// each group's configuration names are sorted and unique.
func GroupHardware(matches []as6mig.Match) []HardwareGroup {
	byID := make(map[string]*HardwareGroup)
	configs := make(map[string]map[string]struct{})

	for _, m := range matches {
		g, ok := byID[m.Identifier]
		if !ok {
			g = &HardwareGroup{ID: m.Identifier, Reason: m.Reason}
			byID[m.Identifier] = g
			configs[m.Identifier] = make(map[string]struct{})
		}
		name := project.ConfigName(m.Path)
		if _, dup := configs[m.Identifier][name]; !dup {
			configs[m.Identifier][name] = struct{}{}
			g.Configs = append(g.Configs, name)
		}
	}

	groups := make([]HardwareGroup, 0, len(byID))
	for _, g := range byID {
		sort.Strings(g.Configs)
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// FormatHardware renders the unsupported hardware report.
// At most as6mig.MaxConfigsShown configurations are named per module type.
func FormatHardware(groups []HardwareGroup) string {
	var sb strings.Builder
	sb.WriteString("The following unsupported hardware were found:")
	for _, g := range groups {
		fmt.Fprintf(&sb, "\n\n- %s: %s", g.ID, g.Reason)

		shown := g.Configs
		if len(shown) > as6mig.MaxConfigsShown {
			shown = shown[:as6mig.MaxConfigsShown]
		}
		fmt.Fprintf(&sb, "\n  Used in configurations: %s", strings.Join(shown, ", "))
		if rest := len(g.Configs) - len(shown); rest > 0 {
			fmt.Fprintf(&sb, ", and %d more...", rest)
		}
	}
	return sb.String()
}

// Hardware reports unsupported modules in the hardware configurations under physicalPath.
func (c *Checker) Hardware(ctx context.Context, physicalPath string) (Report, error) {
	report := Report{Name: "hardware"}
	c.header("Checking for invalid hardware...")

	index := c.catalogs.Load(catalog.UnsupportedHardware).Index()
	result, err := c.scan(ctx, physicalPath, []string{".hw"},
		as6mig.Task{ID: TaskHardware, Extract: ExtractHardware(index)})
	if err != nil {
		return report, fmt.Errorf("hardware check failed: %w", err)
	}

	groups := GroupHardware(result.Flat())
	if len(groups) == 0 {
		c.logger.Verbose("No unsupported hardware found in the project.")
		return report, nil
	}

	c.logger.WithStage(StageAS4).Warning("%s", FormatHardware(groups))
	report.Findings = len(groups)
	return report, nil
}

// CountHardware counts module types across all hardware descriptors under root.
func (c *Checker) CountHardware(ctx context.Context, root string) (map[string]int, error) {
	result, err := c.scan(ctx, root, []string{".hw"}, as6mig.Task{
		ID: "module_types",
		Extract: func(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
			var out []as6mig.Match
			for _, m := range moduleTypePattern.FindAllStringSubmatch(f.Content, -1) {
				out = append(out, as6mig.Match{Identifier: m[1], Path: f.Path})
			}
			return out, nil
		},
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, m := range result.Flat() {
		counts[m.Identifier]++
	}
	return counts, nil
}
