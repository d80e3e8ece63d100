package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tmeadows/hookbridge/internal/core"
	"github.com/tmeadows/hookbridge/internal/discovery"
	"github.com/tmeadows/hookbridge/internal/plugin"
)

// NewHooksCmd builds the discovery listing command.
func NewHooksCmd() *cli.Command {
	return &cli.Command{
		Name:  "hooks",
		Usage: "List hook definitions discovered for a project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Project directory (defaults to the current directory)",
			},
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Usage:   "Only show hooks for this event (e.g. PreToolUse)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectDir := cmd.String("project")
			if projectDir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve project directory: %w", err)
				}
				projectDir = cwd
			}

			diag := log.New(os.Stderr, "hookbridge: ", 0)
			plugins := plugin.Resolve(projectDir, diag)
			defs := discovery.Discover(ctx, plugins, diag)

			if event := cmd.String("event"); event != "" {
				if !core.ValidEvent(event) {
					return fmt.Errorf("unknown event %q", event)
				}
				defs = discovery.ForEvent(defs, core.EventType(event))
			}

			if len(defs) == 0 {
				fmt.Println("No hooks discovered.")
				return nil
			}
			for _, def := range defs {
				events := make([]string, len(def.Events))
				for i, e := range def.Events {
					events[i] = string(e)
				}
				fmt.Printf("%-40s %-30s %s\n", def.ID(), strings.Join(events, ","), def.Command)
			}
			return nil
		},
	}
}
