package fixtures

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/as6mig/internal/files/filesystem"
)

// ProjectFixtureBuilder provides a fluent API for building Automation Studio
// project trees for tests.
//
// Example usage:
//
//	fs := fixtures.NewProjectFixtureBuilder("Demo").
//	    WithLibraries("McAxis", "MpAxis").
//	    AddProgram("Main/Main.st", "fb.Parameter.AxesGroup := 0;").
//	    AddHardware("Config1", `<Module Name="CPU" Type="X20CP1586" />`).
//	    BuildMemory("/project")
type ProjectFixtureBuilder struct {
	name  string
	files map[string]string // slash path relative to the project root -> content
}

// NewProjectFixtureBuilder creates a builder with <name>.apj saved by AS 4.12.
func NewProjectFixtureBuilder(name string) *ProjectFixtureBuilder {
	b := &ProjectFixtureBuilder{name: name, files: make(map[string]string)}
	b.files[name+".apj"] = ProjectFile("4.12.5.95")
	return b
}

// ProjectFile renders an .apj descriptor saved with the given Automation Studio version.
func ProjectFile(version string) string {
	return fmt.Sprintf("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<?AutomationStudio WorkingVersion=\"%s\"?>\n<Project Version=\"1.00.0\" />\n", version)
}

// HardwareFile renders a .hw descriptor listing the given module types.
func HardwareFile(version string, moduleTypes ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<?AutomationStudio Version=\"%s\"?>\n<Hardware>\n", version)
	for i, t := range moduleTypes {
		fmt.Fprintf(&sb, "  <Module Name=\"M%d\" Type=\"%s\" Version=\"1.0.0.0\" />\n", i, t)
	}
	sb.WriteString("</Hardware>\n")
	return sb.String()
}

// CpuPackage renders a Cpu.pkg declaring the given runtime version, e.g. "B4.25".
func CpuPackage(runtime string) string {
	return fmt.Sprintf("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<Cpu>\n  <Configuration ModuleId=\"X20CP1586\">\n    <AutomationRuntime Version=\"%s\" />\n  </Configuration>\n</Cpu>\n", runtime)
}

// UadFile renders an OPC UA default view file with the given FileVersion.
func UadFile(fileVersion int) string {
	return fmt.Sprintf("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<OpcUaSource FileVersion=\"%d\" ArVersion=\"B4.93\" />\n", fileVersion)
}

// OpcUAHardwareFile renders a .hw descriptor with OPC UA model 1 switched on or off.
func OpcUAHardwareFile(version string, active bool) string {
	value := "0"
	if active {
		value = "1"
	}
	return fmt.Sprintf("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<?AutomationStudio Version=\"%s\"?>\n"+
		"<Hardware xmlns=\"http://br-automation.co.at/AS/Hardware\">\n"+
		"  <Module Name=\"PLC\" Type=\"X20CP1586\" Version=\"1.0.0.0\">\n"+
		"    <Parameter ID=\"ActivateOpcUa\" Value=\"%s\" />\n"+
		"  </Module>\n</Hardware>\n", version, value)
}

// WithoutProjectFile removes the .apj descriptor.
func (b *ProjectFixtureBuilder) WithoutProjectFile() *ProjectFixtureBuilder {
	delete(b.files, b.name+".apj")
	return b
}

// WithLibraries writes Logical/Libraries/Package.pkg referencing the given libraries.
func (b *ProjectFixtureBuilder) WithLibraries(names ...string) *ProjectFixtureBuilder {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<Package>\n  <Objects>\n")
	for _, n := range names {
		fmt.Fprintf(&sb, "    <Object Type=\"Library\" Language=\"binary\">%s</Object>\n", n)
	}
	sb.WriteString("  </Objects>\n</Package>\n")
	b.files["Logical/Libraries/Package.pkg"] = sb.String()
	return b
}

// AddProgram adds a file under Logical/.
func (b *ProjectFixtureBuilder) AddProgram(rel, content string) *ProjectFixtureBuilder {
	b.files[path.Join("Logical", rel)] = content
	return b
}

// AddHardware adds Physical/<config>/Hardware.hw.
func (b *ProjectFixtureBuilder) AddHardware(config, content string) *ProjectFixtureBuilder {
	b.files[path.Join("Physical", config, "Hardware.hw")] = content
	return b
}

// AddCpu adds Physical/<config>/<cpu>/Cpu.pkg.
func (b *ProjectFixtureBuilder) AddCpu(config, cpu, content string) *ProjectFixtureBuilder {
	b.files[path.Join("Physical", config, cpu, "Cpu.pkg")] = content
	return b
}

// AddFile adds an arbitrary file relative to the project root.
func (b *ProjectFixtureBuilder) AddFile(rel, content string) *ProjectFixtureBuilder {
	b.files[rel] = content
	return b
}

// Paths returns the relative paths of all files in sorted order.
func (b *ProjectFixtureBuilder) Paths() []string {
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// BuildMemory creates an in-memory filesystem rooted at root.
func (b *ProjectFixtureBuilder) BuildMemory(root string) *filesystem.MemoryFileSystem {
	fs := filesystem.NewMemoryFileSystem(root)
	for _, p := range b.Paths() {
		fs.AddFile(p, b.files[p])
	}
	return fs
}

// WriteTo materializes the project under dir on disk.
func (b *ProjectFixtureBuilder) WriteTo(dir string) error {
	for _, p := range b.Paths() {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(b.files[p]), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", full, err)
		}
	}
	return nil
}
