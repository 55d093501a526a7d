package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/as6mig/internal/config"
	"github.com/vvka-141/as6mig/internal/files/filesystem"
	"github.com/vvka-141/as6mig/internal/mappmotion"
	"github.com/vvka-141/as6mig/internal/tui"
	"github.com/vvka-141/as6mig/internal/ui"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

var mappmotionCmd = &cobra.Command{
	Use:   "mappmotion [project_path]",
	Short: "Rename mappMotion 5 function blocks, types, inputs and enumerators for mappMotion 6",
	Long: `Mappmotion rewrites program and declaration files under Logical/ in place.

  .st .c .cpp .ab     function block inputs and enumerators
  .typ .var .fun      function blocks and types

Usages whose behavior changed in mappMotion 6 are reported and left alone.
Files under Logical/Libraries are not touched. After conversion the project
no longer compiles in Automation Studio 4, so commit or back up first.

Arguments:
  project_path    Directory containing the .apj file (default: current directory)

Examples:
  as6mig mappmotion ./MyProject
  as6mig mappmotion ./MyProject --yes
  as6mig mappmotion ./MyProject --mapping-file ./custom-mapping.yaml -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMappMotion,
}

var mappmotionFlags struct {
	yes         bool
	dialog      bool
	mappingFile string
}

func init() {
	rootCmd.AddCommand(mappmotionCmd)

	mappmotionCmd.Flags().BoolVarP(&mappmotionFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt\n"+
			"Use in scripts and CI pipelines")
	mappmotionCmd.Flags().BoolVar(&mappmotionFlags.dialog, "dialog", false,
		"Ask for confirmation in a dialog instead of a plain prompt")
	mappmotionCmd.Flags().StringVar(&mappmotionFlags.mappingFile, "mapping-file", "",
		"YAML mapping document replacing the built-in rename tables\n"+
			"Precedence: --mapping-file > $AS6MIG_MAPPING_FILE > as6mig.yaml")
}

func runMappMotion(cmd *cobra.Command, args []string) error {
	projectPath, err := projectPathArg(args)
	if err != nil {
		return err
	}

	var flags config.Flags
	if changed(cmd, "yes") {
		flags.AssumeYes = &mappmotionFlags.yes
	}
	if changed(cmd, "dialog") {
		flags.Dialog = &mappmotionFlags.dialog
	}
	if changed(cmd, "mapping-file") {
		flags.MappingFile = &mappmotionFlags.mappingFile
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

	return reportError(logger, migrateProject(cmd, settings, logger, projectPath))
}

func migrateProject(cmd *cobra.Command, settings config.Settings, logger as6mig.Logger, projectPath string) error {
	fsProvider := filesystem.NewOSFileSystem()
	mapping, err := mappmotion.LoadMapping(fsProvider, settings.MappingFile)
	if err != nil {
		return err
	}
	calculator, err := settings.Calculator()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	prompter := ui.Select(tui.DetectMode(), ui.PromptSettings{
		AssumeYes: settings.AssumeYes,
		Dialog:    settings.Dialog,
	}, logger)

	_, err = mappmotion.Run(ctx, mappmotion.Options{
		ProjectPath: projectPath,
		Mapping:     mapping,
		Prompter:    prompter,
		Logger:      logger,
		FileSystem:  fsProvider,
		Calculator:  calculator,
	})
	return err
}
