package checks

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/vvka-141/as6mig/internal/files/textcodec"
	"github.com/vvka-141/as6mig/internal/project"
)

// Minimum Automation Runtime a project must run before it can be converted.
const (
	MinRuntimeLetter  = "B"
	MinRuntimeVersion = 4.25
)

var runtimeVersionPattern = regexp.MustCompile(`<AutomationRuntime Version="([A-Z])(\d+\.\d+)"\s*/>`)

// RuntimeVersion is a parsed Automation Runtime version such as B4.25.
type RuntimeVersion struct {
	Letter  string
	Version float64
}

func (v RuntimeVersion) String() string {
	return v.Letter + strconv.FormatFloat(v.Version, 'f', -1, 64)
}

// Supported reports whether v is at least the minimum runtime.
// Letter and number are compared independently.
func (v RuntimeVersion) Supported() bool {
	return v.Letter >= MinRuntimeLetter && v.Version >= MinRuntimeVersion
}

// ParseRuntimeVersion extracts the runtime version from a Cpu.pkg.
func ParseRuntimeVersion(content string) (RuntimeVersion, bool) {
	m := runtimeVersionPattern.FindStringSubmatch(content)
	if m == nil {
		return RuntimeVersion{}, false
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return RuntimeVersion{}, false
	}
	return RuntimeVersion{Letter: m[1], Version: v}, true
}

// Runtime checks the Automation Runtime version of every CPU configuration
// under physicalPath. The configuration name is the directory two levels above Cpu.pkg.
func (c *Checker) Runtime(ctx context.Context, physicalPath string) (Report, error) {
	report := Report{Name: "runtime"}
	c.header("Checking Automation Runtime...")

	files, err := project.Glob(c.fsProvider, physicalPath, "**/Cpu.pkg")
	if err != nil {
		return report, fmt.Errorf("runtime check failed: %w", err)
	}

	stage := c.logger.WithStage(StageAS4)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		raw, err := c.fsProvider.ReadFile(file)
		if err != nil {
			c.logger.Error("Could not read %s: %v", file, err)
			continue
		}
		config := filepath.Base(filepath.Dir(filepath.Dir(file)))

		v, ok := ParseRuntimeVersion(textcodec.DecodeLenient(raw))
		switch {
		case !ok:
			c.logger.Verbose("No Automation Runtime version found in %s.", file)
		case v.Supported():
			stage.Verbose("%s: Automation Runtime version %s is valid (must be at least %s%.2f before upgrading, see AS4/Migration).",
				config, v, MinRuntimeLetter, MinRuntimeVersion)
		default:
			stage.Mandatory("%s: Automation Runtime version %s is too low. Please update to at least %s%.2f (see AS4/Migration).",
				config, v, MinRuntimeLetter, MinRuntimeVersion)
			report.Findings++
			report.Mandatory++
		}
	}
	return report, nil
}
