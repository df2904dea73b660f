package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/gridview/internal/cli"
	"github.com/rshade/gridview/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

// run executes the root command, cancelling its context on SIGINT or SIGTERM.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// exitCode maps the result of run to a process exit status.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
