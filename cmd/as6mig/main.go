package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/as6mig/internal/cli"
	"github.com/vvka-141/as6mig/pkg/as6mig"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(as6mig.ExitPanic)
		}
	}()

	if os.Getenv("AS6MIG_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(as6mig.ExitCodeForError(err))
	}
}
