package checks

import (
	"context"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vvka-141/as6mig/internal/project"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// RequiredVersionPrefix is the Automation Studio version every project and
// hardware file must have been saved with before conversion.
const RequiredVersionPrefix = "4.12"

// TaskCompatibility keys incompatible file matches.
const TaskCompatibility as6mig.TaskID = "file_compatibility"

var studioVersionPattern = regexp.MustCompile(`AutomationStudio (?:Working)?Version="?([\d.]+)`)

// ExtractIncompatible reports a file whose Automation Studio version does not
// start with RequiredVersionPrefix, or that carries no version at all.
func ExtractIncompatible(_ context.Context, f as6mig.SourceFile) ([]as6mig.Match, error) {
	m := studioVersionPattern.FindStringSubmatch(f.Content)
	switch {
	case m == nil:
		return []as6mig.Match{{Identifier: f.Path, Reason: "Version Unknown", Path: f.Path}}, nil
	case !strings.HasPrefix(m[1], RequiredVersionPrefix):
		return []as6mig.Match{{Identifier: f.Path, Reason: "Version " + m[1], Path: f.Path}}, nil
	default:
		return nil, nil
	}
}

// Compatibility checks that the .apj and all .hw files were saved with
// Automation Studio 4.12. If they were, it warns about package files under
// Physical/ that contain file references, which conversion may break.
func (c *Checker) Compatibility(ctx context.Context, p project.Project) (Report, error) {
	report := Report{Name: "compatibility"}
	c.header("Checking project and hardware files for compatibility...")

	result, err := c.scan(ctx, p.Path, []string{".apj", ".hw"},
		as6mig.Task{ID: TaskCompatibility, Extract: ExtractIncompatible})
	if err != nil {
		return report, fmt.Errorf("compatibility check failed: %w", err)
	}

	incompatible := result.Flat()
	as6mig.SortMatches(incompatible)
	if len(incompatible) > 0 {
		c.logger.Mandatory("The following files are incompatible with the required version:")
		for _, m := range incompatible {
			c.logger.Print("- %s: %s", m.Path, m.Reason)
		}
		c.logger.Mandatory("Please ensure these files are saved at least once with Automation Studio %s", RequiredVersionPrefix)
		report.Findings = len(incompatible)
		report.Mandatory = len(incompatible)
		return report, nil
	}
	c.logger.Verbose("All project and hardware files are valid.")

	refs, err := c.referencingPackages(ctx, p.Physical)
	if err != nil {
		return report, fmt.Errorf("compatibility check failed: %w", err)
	}
	if len(refs) > 0 {
		c.logger.Warning("Some files are converted to a new format in AS6. This may break references. " +
			"The following .pkg files contain file references, make sure that the references are valid after converting to AS6:")
		for _, f := range refs {
			c.logger.Print("- %s", f)
		}
		report.Findings += len(refs)
	}
	return report, nil
}

// referencingPackages lists .pkg files under physicalPath, outside any mappView
// directory, that contain an element with Type="File" and Reference="true".
// Files that are not valid XML are ignored.
func (c *Checker) referencingPackages(ctx context.Context, physicalPath string) ([]string, error) {
	files, err := project.Glob(c.fsProvider, physicalPath, "**/*.pkg")
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, _ := filepath.Rel(physicalPath, file)
		if containsDir(rel, "mappView") {
			continue
		}
		raw, err := c.fsProvider.ReadFile(file)
		if err != nil {
			continue
		}
		if hasFileReference(raw) {
			refs = append(refs, file)
		}
	}
	return refs, nil
}

func containsDir(rel, name string) bool {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts[:len(parts)-1] {
		if part == name {
			return true
		}
	}
	return false
}

// hasFileReference walks the XML tokens looking for a referenced file element.
func hasFileReference(data []byte) bool {
	dec := newXMLDecoder(data)
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var isFile, isRef bool
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "Type":
				isFile = a.Value == "File"
			case "Reference":
				isRef = a.Value == "true"
			}
		}
		if isFile && isRef {
			return true
		}
	}
}
