package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tmeadows/hookbridge/internal/bridge"
)

// NewHandleCmd builds the bridge entry point: read one event document on
// stdin, emit one decision document on stdout. This is what hosts configure
// as their hook command.
func NewHandleCmd() *cli.Command {
	return &cli.Command{
		Name:  "handle",
		Usage: "Handle one lifecycle event from the host tool (stdin JSON in, stdout JSON out)",
		Description: `Reads a single event document from standard input, runs the matching
plugin hooks, and writes the aggregate decision as a single JSON document to
standard output. Diagnostics go to standard error only. Always exits 0.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			bridge.Handle(ctx, bridge.Options{
				Stdin:  os.Stdin,
				Stdout: os.Stdout,
				Stderr: os.Stderr,
				Getenv: os.Getenv,
			})
			return nil
		},
	}
}
