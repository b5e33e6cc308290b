package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/treecheck/internal/cmd"
	"github.com/felixgeelhaar/treecheck/internal/exitcode"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx)
	stop()
	exitcode.Exit(code)
}

func run(ctx context.Context) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	if ctx.Err() == context.Canceled {
		fmt.Fprintln(os.Stderr, "\nInterrupted")
		return exitcode.Interrupted
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitcode.DetermineExitCode(err)
}
