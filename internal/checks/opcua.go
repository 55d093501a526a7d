package checks

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vvka-141/as6mig/internal/project"
)

// OpcUADir is where OPC UA default view files (.uad) must live below a configuration.
const OpcUADir = "Connectivity/OpcUA"

// MinUadFileVersion is the oldest .uad FileVersion Automation Studio 6 converts.
const MinUadFileVersion = 9

// UadFileVersion returns the FileVersion attribute of a .uad document's root
// element. A root without the attribute is version 0. ok is false when the
// document is not valid XML or the version is not a number.
func UadFileVersion(data []byte) (version int, ok bool) {
	dec := newXMLDecoder(data)
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, false
		}
		start, isStart := tok.(xml.StartElement)
		if !isStart {
			continue
		}
		for _, a := range start.Attr {
			if a.Name.Local == "FileVersion" {
				v, err := strconv.Atoi(strings.TrimSpace(a.Value))
				if err != nil {
					return 0, false
				}
				return v, true
			}
		}
		return 0, true
	}
}

// HasOpcUAModel1 reports whether a hardware document activates OPC UA through
// <Parameter ID="ActivateOpcUa" Value="1" />, in any namespace. Documents that
// are not valid XML report false.
func HasOpcUAModel1(data []byte) bool {
	dec := newXMLDecoder(data)
	found := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return found
		}
		if err != nil {
			return false
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Parameter" {
			continue
		}
		var id, value string
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "ID":
				id = a.Value
			case "Value":
				value = a.Value
			}
		}
		if id == "ActivateOpcUa" && value == "1" {
			found = true
		}
	}
}

// inOpcUADir reports whether the directory part of rel ends with OpcUADir.
func inOpcUADir(rel string) bool {
	dir := filepath.ToSlash(filepath.Dir(rel))
	return dir == OpcUADir || strings.HasSuffix(dir, "/"+OpcUADir)
}

// OpcUA checks the OPC UA configuration below physicalPath: every .uad file
// must sit in a Connectivity/OpcUA directory and have FileVersion 9 or newer.
// Hardware files that still activate OPC UA model 1 are reported for review.
func (c *Checker) OpcUA(ctx context.Context, physicalPath string) (Report, error) {
	report := Report{Name: "opcua"}
	c.header("Checking OPC configuration...")

	uads, err := project.Glob(c.fsProvider, physicalPath, "**/*.uad")
	if err != nil {
		return report, fmt.Errorf("OPC UA check failed: %w", err)
	}

	var misplaced, outdated []string
	for _, file := range uads {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rel, _ := filepath.Rel(physicalPath, file)
		if !inOpcUADir(rel) {
			misplaced = append(misplaced, file)
		}
		raw, err := c.fsProvider.ReadFile(file)
		if err != nil {
			c.logger.Error("Could not read %s: %v", file, err)
			continue
		}
		if v, ok := UadFileVersion(raw); ok && v < MinUadFileVersion {
			outdated = append(outdated, file)
		}
	}

	stage := c.logger.WithStage(StageAS4)
	if len(misplaced) > 0 {
		stage.Mandatory("The following .uad files are not located in the required %s directory:", OpcUADir)
		for _, f := range misplaced {
			c.logger.Mandatory("- %s", f)
		}
		c.logger.Mandatory("Please create (via AS %s) and move these files to the required directory: %s.", RequiredVersionPrefix, OpcUADir)
		report.Findings += len(misplaced)
		report.Mandatory += len(misplaced)
	} else {
		c.logger.Verbose("- All .uad files are in the correct location.")
	}

	if len(outdated) > 0 {
		stage.Mandatory("The following .uad files do not have the minimum file version %d:", MinUadFileVersion)
		for _, f := range outdated {
			c.logger.Print("- %s", f)
		}
		stage.Mandatory("Please edit the uad file, make a small change and save the file to trigger the file update.")
		report.Findings += len(outdated)
		report.Mandatory += len(outdated)
	} else {
		c.logger.Verbose("- All .uad files have the correct minimum version.")
	}

	hardware, err := project.Glob(c.fsProvider, physicalPath, "**/*.hw")
	if err != nil {
		return report, fmt.Errorf("OPC UA check failed: %w", err)
	}
	for _, file := range hardware {
		rel, _ := filepath.Rel(physicalPath, file)
		if !strings.Contains(filepath.ToSlash(rel), "/") {
			continue
		}
		raw, err := c.fsProvider.ReadFile(file)
		if err != nil {
			continue
		}
		if HasOpcUAModel1(raw) {
			c.logger.Info("OPC UA model 1 is activated in %s. OPC UA model 1 is not supported in AS6 and will be "+
				"automatically converted to model 2. This changes the namespace ID for variables.", file)
			report.Findings++
		}
	}
	return report, nil
}

// newXMLDecoder reads Automation Studio XML, which declares encodings the
// standard decoder does not know; attribute values used here are ASCII.
func newXMLDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	return dec
}
