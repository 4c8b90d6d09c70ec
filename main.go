// Package main is the entry point for the tracedent CLI application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vrtbl/tracedent/cmd"
)

func main() {
	// Create a context that is cancelled on SIGINT (Ctrl+C) or SIGTERM.
	// The passes observe it between lines, so long dumps stop cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.BuildCommandTree(cmd.WireService(os.Stdin))
	os.Exit(cmd.RunCLI(ctx, root, os.Args[1:], os.Stdout, os.Stderr))
}
