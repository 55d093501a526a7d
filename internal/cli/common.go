package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/as6mig/internal/config"
	"github.com/vvka-141/as6mig/internal/logging"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// projectPathArg returns the project path argument, defaulting to the working directory.
func projectPathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}

// resolveSettings loads .env and resolves settings for projectPath.
// Only flags the user actually set take part.
func resolveSettings(cmd *cobra.Command, projectPath string, flags config.Flags) (config.Settings, error) {
	_ = godotenv.Load()

	if changed(cmd, "verbose") {
		flags.Verbose = &rootFlags.verbose
	}
	if changed(cmd, "log-file") {
		flags.LogFile = &rootFlags.logFile
	}
	return config.Resolve(projectPath, os.LookupEnv, flags)
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// newLogger creates the console logger for a command and attaches the log
// file when one is configured. The returned func closes the log file.
func newLogger(cmd *cobra.Command, settings config.Settings) (*logging.ConsoleLogger, func(), error) {
	logger := logging.NewConsoleLoggerWithWriters(settings.Verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if settings.LogFile == "" {
		return logger, func() {}, nil
	}

	lf, err := logging.OpenLogFile(settings.LogFile, cmd.Name())
	if err != nil {
		return nil, nil, err
	}
	logger.SetMirror(lf)
	logger.Verbose("Logging to %s", lf.Path())
	return logger, func() {
		logger.SetMirror(nil)
		if err := lf.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to close log file: %v\n", err)
		}
	}, nil
}

// reportedError is an error that has already been written to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// reportError logs err at ERROR severity, which also puts it in the log file.
// A declined confirmation was already reported by the migration.
func reportError(logger as6mig.Logger, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, as6mig.ErrApprovalDenied) {
		logger.Error("%v", err)
	}
	return reportedError{err}
}

// printError reports errors that were raised before a command had a logger,
// such as flag misuse or an unreadable as6mig.yaml.
func printError(w io.Writer, err error) {
	var reported reportedError
	if err == nil || errors.As(err, &reported) {
		return
	}
	logging.NewConsoleLoggerWithWriters(false, w, w).Error("%v", err)
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
