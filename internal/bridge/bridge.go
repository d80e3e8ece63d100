// Package bridge is the top-level event dispatcher: it reads one host event,
// drives the resolve/discover/match/execute/format pipeline, and writes
// exactly one decision document back.
//
// The bridge never fails as a unit. Whatever goes wrong internally, it emits
// valid JSON on the output channel (an empty object in the worst case) and
// keeps diagnostics on the separate channel, so the host's protocol parsing
// is never corrupted.
package bridge

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
	"github.com/tmeadows/hookbridge/internal/discovery"
	"github.com/tmeadows/hookbridge/internal/events"
	"github.com/tmeadows/hookbridge/internal/executor"
	"github.com/tmeadows/hookbridge/internal/format"
	"github.com/tmeadows/hookbridge/internal/host"
	"github.com/tmeadows/hookbridge/internal/match"
	"github.com/tmeadows/hookbridge/internal/plugin"
)

// maxInputBytes caps the event document read from the input channel.
const maxInputBytes = 4 << 20

// Options wires the bridge to its process environment. Tests substitute
// buffers and a fake env.
type Options struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	WorkDir string
}

// Handle processes one host event end to end. It always writes one JSON
// document to Stdout and never returns an error; the bridge process exits 0
// regardless of what the hooks decided.
func Handle(ctx context.Context, opts Options) {
	diag := log.New(opts.Stderr, constants.BinaryName+": ", 0)
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	emitted := false
	emit := func(payload any) {
		if emitted {
			return
		}
		emitted = true
		enc := json.NewEncoder(opts.Stdout)
		if err := enc.Encode(payload); err != nil {
			diag.Printf("emit: %v", err)
			_, _ = io.WriteString(opts.Stdout, "{}\n")
		}
	}
	defer func() {
		if r := recover(); r != nil {
			diag.Printf("panic recovered: %v", r)
		}
		// Whatever happened above, the host gets one JSON document.
		emit(map[string]any{})
	}()

	provider := host.Select(opts.Getenv(constants.EnvHost))

	data, err := io.ReadAll(io.LimitReader(opts.Stdin, maxInputBytes))
	if err != nil {
		diag.Printf("read input: %v", err)
		return
	}
	ev, err := provider.ParseEvent(data)
	if err != nil {
		diag.Printf("parse event: %v", err)
		return
	}

	projectDir := resolveProjectDir(opts, ev)
	sessionID := resolveSessionID(opts, ev)
	stage := core.StageOf(ev.Type)

	if stage == core.StageSession {
		spawnViewer(opts.Getenv(constants.EnvViewer), projectDir, diag)
	}

	plugins := plugin.Resolve(projectDir, diag)
	defs := discovery.Discover(ctx, plugins, diag)

	var matched []core.HookDefinition
	switch stage {
	case core.StagePre, core.StagePost:
		matched = match.ForToolCall(defs, ev.Type, ev.Tool, ev.Files, projectDir)
	default:
		matched = match.ForTerminal(defs, ev.Type, projectDir)
	}

	logger := events.Open(projectDir, sessionID, diag)
	defer logger.Close()
	if stage == core.StagePost {
		for _, f := range ev.Files {
			logger.FileChange(ev.Tool, f)
		}
	}

	if len(matched) == 0 {
		// Nothing to run; skip the executor and the formatting branches.
		emit(provider.RenderDecision(ev, nil))
		return
	}

	results := executor.Run(ctx, matched, ev.Files, executor.Context{
		WorkDir:        projectDir,
		SessionID:      sessionID,
		DefaultTimeout: defaultTimeout(stage),
		Diag:           diag,
	})
	for _, r := range results {
		logger.HookOutcome(ev.Type, r)
	}

	switch stage {
	case core.StageSession:
		emit(provider.RenderContext(ev, sessionContext(results)))
	case core.StagePre:
		emit(provider.RenderDecision(ev, format.PreToolUse(results)))
	case core.StagePost:
		emit(provider.RenderDecision(ev, format.PostToolUse(results)))
	default:
		emit(provider.RenderDecision(ev, format.Terminal(results)))
	}
}

func resolveProjectDir(opts Options, ev *host.Event) string {
	if dir := opts.Getenv(constants.EnvProjectDir); dir != "" {
		return dir
	}
	if ev.ProjectDir != "" {
		return ev.ProjectDir
	}
	if opts.WorkDir != "" {
		return opts.WorkDir
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

func resolveSessionID(opts Options, ev *host.Event) string {
	if id := opts.Getenv(constants.EnvSessionID); id != "" {
		return id
	}
	if ev.SessionID != "" {
		return ev.SessionID
	}
	return uuid.NewString()
}

func defaultTimeout(stage core.Stage) time.Duration {
	if stage == core.StageTerminal {
		return constants.DefaultTerminalTimeoutMs * time.Millisecond
	}
	return constants.DefaultToolTimeoutMs * time.Millisecond
}

// sessionContext joins the stdout of successful session-start hooks into the
// context text surfaced to the host.
func sessionContext(results []core.HookResult) string {
	var parts []string
	for _, r := range results {
		if r.Skipped || r.ExitCode != 0 {
			continue
		}
		if text := strings.TrimSpace(r.Stdout); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
