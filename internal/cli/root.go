package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "as6mig",
	Short: "Automation Studio 6 migration helper",
	Long: `as6mig prepares B&R Automation Studio 4 projects for the move to Automation Studio 6.

It reports hardware, libraries and functions that are discontinued in AS6, checks
file and runtime versions, and rewrites mappMotion 5 identifiers to their
mappMotion 6 names.

Configuration is read from as6mig.yaml in the project directory, from AS6MIG_*
environment variables (a .env file in the working directory is honored) and from
flags, in increasing precedence.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Project path not found
  12 - No .apj project file in the project path
  13 - Logical/Libraries/Package.pkg not found
  14 - A check failed while scanning files
  15 - Confirmation declined`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var rootFlags struct {
	verbose bool
	logFile string
}

// Execute runs the root command
func Execute() error {
	return executeArgs(os.Args[1:])
}

// executeArgs runs the command line args. A leading --version prints the
// version without going through cobra.
func executeArgs(args []string) error {
	if len(args) > 0 && args[0] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	printError(rootCmd.ErrOrStderr(), err)
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "",
		"Also write every message, uncolored, to this file\n"+
			"Precedence: --log-file > $AS6MIG_LOG_FILE > as6mig.yaml")
}
