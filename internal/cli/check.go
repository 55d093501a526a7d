package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/as6mig/internal/catalog"
	"github.com/vvka-141/as6mig/internal/checks"
	"github.com/vvka-141/as6mig/internal/config"
	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/files/scanner"
	"github.com/vvka-141/as6mig/internal/project"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

var checkCmd = &cobra.Command{
	Use:   "check [project_path]",
	Short: "Report what blocks or complicates a move to Automation Studio 6",
	Long: `Check scans an Automation Studio 4 project and reports:

  - project and hardware files not saved with Automation Studio 4.12
  - Automation Runtime versions below B4.25
  - hardware modules that are not supported in Automation Studio 6
  - OPC UA default view files outside Connectivity/OpcUA or older than
    FileVersion 9, and hardware still using OPC UA model 1
  - obsolete function blocks and functions, and deprecated string and math
    functions that have AsBrStr / AsBrMath replacements

Nothing in the project is modified.

Arguments:
  project_path    Directory containing the .apj file (default: current directory)

Examples:
  as6mig check ./MyProject
  as6mig check ./MyProject --workers 4 -v
  as6mig check --catalog-dir ./catalogs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var checkFlags struct {
	catalogDir string
	workers    int
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.catalogDir, "catalog-dir", "",
		"Directory with discontinuation catalogs (*.json) replacing the built-in ones\n"+
			"Precedence: --catalog-dir > $AS6MIG_CATALOG_DIR > as6mig.yaml")
	checkCmd.Flags().IntVar(&checkFlags.workers, "workers", 0,
		"Number of files scanned in parallel (default: 4 x CPU count)\n"+
			"Precedence: --workers > $AS6MIG_WORKERS > as6mig.yaml")
}

func runCheck(cmd *cobra.Command, args []string) error {
	projectPath, err := projectPathArg(args)
	if err != nil {
		return err
	}

	var flags config.Flags
	if changed(cmd, "catalog-dir") {
		flags.CatalogDir = &checkFlags.catalogDir
	}
	if changed(cmd, "workers") {
		flags.Workers = &checkFlags.workers
	}
	settings, err := resolveSettings(cmd, projectPath, flags)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cmd, settings)
	if err != nil {
		return err
	}
	defer closeLog()

	return reportError(logger, checkProject(cmd, settings, logger, projectPath))
}

func checkProject(cmd *cobra.Command, settings config.Settings, logger as6mig.Logger, projectPath string) error {
	fsProvider := filesystem.NewOSFileSystem()
	proj, err := project.Validate(fsProvider, projectPath)
	if err != nil {
		return err
	}
	logger.Print("Project path validated: %s", proj.Path)
	logger.Print("Using project file: %s", proj.File)
	logger.Verbose("Scanning with %d workers", settings.Workers)

	checker := checks.NewChecker(
		fsProvider,
		scanner.NewScannerWithFS(fsProvider, settings.Workers),
		catalog.NewLoader(settings.CatalogDir, logger),
		logger,
	)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	reports, err := runChecks(ctx, checker, proj)
	if err != nil {
		return err
	}
	printCheckSummary(logger, reports)
	return nil
}

// runChecks runs every check in report order and stops at the first error.
func runChecks(ctx context.Context, checker *checks.Checker, proj project.Project) ([]checks.Report, error) {
	steps := []func() (checks.Report, error){
		func() (checks.Report, error) { return checker.Compatibility(ctx, proj) },
		func() (checks.Report, error) { return checker.Runtime(ctx, proj.Physical) },
		func() (checks.Report, error) { return checker.Hardware(ctx, proj.Physical) },
		func() (checks.Report, error) { return checker.OpcUA(ctx, proj.Physical) },
		func() (checks.Report, error) { return checker.Functions(ctx, proj.Logical) },
	}

	reports := make([]checks.Report, 0, len(steps))
	for _, step := range steps {
		r, err := step()
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func printCheckSummary(logger as6mig.Logger, reports []checks.Report) {
	logger.Print(strings.Repeat("─", 80))
	logger.Print("Summary:")

	var findings, mandatory int
	for _, r := range reports {
		line := fmt.Sprintf("%-14s %d finding(s)", r.Name+":", r.Findings)
		if r.Mandatory > 0 {
			line += fmt.Sprintf(", %d mandatory", r.Mandatory)
		}
		logger.Print("%s", line)
		findings += r.Findings
		mandatory += r.Mandatory
	}

	switch {
	case mandatory > 0:
		logger.Mandatory("%d mandatory issue(s) must be resolved before migrating to Automation Studio 6.", mandatory)
	case findings > 0:
		logger.Print("No blocking issues found. Review the warnings above before migrating.")
	default:
		logger.Print("No issues found.")
	}
}
