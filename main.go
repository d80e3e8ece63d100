package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tmeadows/hookbridge/internal/bridge"
	"github.com/tmeadows/hookbridge/internal/cmd"
	"github.com/tmeadows/hookbridge/internal/constants"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := &cli.Command{
		Name:  constants.BinaryName,
		Usage: "Bridge plugin validation hooks into AI coding tools",
		Description: `hookbridge discovers hook manifests from installed plugins, matches them
against the lifecycle event a host tool reports on stdin, runs the matched
hooks concurrently, and answers with a single decision document on stdout.`,
		Commands: []*cli.Command{
			cmd.NewHandleCmd(),
			cmd.NewHooksCmd(),
			cmd.NewVersionCmd(cmd.VersionInfo{Version: version, Commit: commit, Date: date}),
		},
		// Invoked with no subcommand, behave as the hook entry point so
		// hosts can configure a bare "hookbridge" command.
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

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
