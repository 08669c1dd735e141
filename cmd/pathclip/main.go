package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/internal/cli"
	perrors "github.com/matzehuels/pathclip/pkg/errors"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2   // bad arguments, names or config
	exitInterrupted = 130 // SIGINT
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	code := exitCode(err)
	if code != exitOK && code != exitInterrupted {
		fmt.Fprintf(os.Stderr, "pathclip: %v\n", err)
	}
	os.Exit(code)
}

// exitCode maps the error of a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case perrors.Is(err, perrors.ErrCodeInvalidInput),
		perrors.Is(err, perrors.ErrCodeInvalidConfig),
		perrors.Is(err, perrors.ErrCodeInvalidBoard),
		perrors.Is(err, perrors.ErrCodeInvalidPath):
		return exitUsage
	}
	return exitFailure
}

func run(ctx context.Context, args []string) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	// main prints the error once, with the program name.
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Debug logging has to be on before the config is loaded so loading is
	// logged too.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
