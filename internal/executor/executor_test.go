package executor

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/tmeadows/hookbridge/internal/core"
)

func hookDef(name, command string, timeoutMs int) core.HookDefinition {
	return core.HookDefinition{
		Name:       name,
		PluginName: "test",
		PluginRoot: "/tmp",
		Events:     []core.EventType{core.PostToolUseEvent},
		Command:    command,
		TimeoutMs:  timeoutMs,
	}
}

func testCtx(t *testing.T) Context {
	t.Helper()
	return Context{
		WorkDir:        t.TempDir(),
		SessionID:      "test-session",
		DefaultTimeout: 10 * time.Second,
	}
}

func TestRunConcurrentIndependence(t *testing.T) {
	hooks := []core.HookDefinition{
		hookDef("slow-ok", "sleep 0.5", 0),
		hookDef("fast-fail", "echo broken >&2; exit 1", 0),
		hookDef("timeout", "sleep 5", 100),
	}

	start := time.Now()
	results := Run(context.Background(), hooks, nil, testCtx(t))
	elapsed := time.Since(start)

	// Wall time is bounded by the slowest hook, not the sum.
	if elapsed >= 3*time.Second {
		t.Errorf("batch took %v; hooks did not run concurrently", elapsed)
	}
	if elapsed < 450*time.Millisecond {
		t.Errorf("batch finished in %v, before the slowest hook could", elapsed)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Results preserve input order.
	if results[0].Hook.Name != "slow-ok" || results[1].Hook.Name != "fast-fail" || results[2].Hook.Name != "timeout" {
		t.Errorf("result order does not match input order: %v, %v, %v",
			results[0].Hook.Name, results[1].Hook.Name, results[2].Hook.Name)
	}

	if results[0].ExitCode != 0 || results[0].Skipped {
		t.Errorf("slow-ok: %+v", results[0])
	}
	if results[1].ExitCode != 1 || !strings.Contains(results[1].Stderr, "broken") {
		t.Errorf("fast-fail: %+v", results[1])
	}
	if results[2].ExitCode == 0 || !strings.Contains(results[2].Stderr, "timed out") {
		t.Errorf("timeout: %+v", results[2])
	}
}

func TestRunCapturesOutput(t *testing.T) {
	hooks := []core.HookDefinition{hookDef("echo", "echo out; echo err >&2", 0)}

	results := Run(context.Background(), hooks, nil, testCtx(t))
	if got := strings.TrimSpace(results[0].Stdout); got != "out" {
		t.Errorf("stdout = %q", got)
	}
	if got := strings.TrimSpace(results[0].Stderr); got != "err" {
		t.Errorf("stderr = %q", got)
	}
	if results[0].DurationMs < 0 {
		t.Errorf("duration = %d", results[0].DurationMs)
	}
}

func TestRunCommandNotFoundIsFailingResult(t *testing.T) {
	hooks := []core.HookDefinition{
		hookDef("missing", "definitely-not-a-real-command-xyz", 0),
		hookDef("ok", "true", 0),
	}

	results := Run(context.Background(), hooks, nil, testCtx(t))
	if results[0].ExitCode == 0 {
		t.Errorf("missing command should fail, got %+v", results[0])
	}
	if results[1].ExitCode != 0 {
		t.Errorf("sibling hook affected by misconfigured hook: %+v", results[1])
	}
}

func TestRunInvalidWorkDirIsFailingResult(t *testing.T) {
	ec := testCtx(t)
	ec.WorkDir = "/does/not/exist"

	results := Run(context.Background(), []core.HookDefinition{hookDef("x", "true", 0)}, nil, ec)
	if results[0].ExitCode == 0 {
		t.Errorf("invalid workdir should produce failing result, got %+v", results[0])
	}
	if results[0].Stderr == "" {
		t.Error("expected a start failure note in stderr")
	}
}

func TestRunSubstitutesFiles(t *testing.T) {
	hooks := []core.HookDefinition{hookDef("list", "echo {files}", 0)}
	files := []string{"src/app.ts", "path with space.ts"}

	results := Run(context.Background(), hooks, files, testCtx(t))
	got := strings.TrimSpace(results[0].Stdout)
	if got != "src/app.ts path with space.ts" {
		t.Errorf("substituted output = %q", got)
	}
}

func TestRunPlaceholderWithoutFilesSkips(t *testing.T) {
	hooks := []core.HookDefinition{
		hookDef("needs-files", "echo {files}", 0),
		hookDef("no-files-needed", "echo fine", 0),
	}

	results := Run(context.Background(), hooks, nil, testCtx(t))
	if !results[0].Skipped {
		t.Errorf("hook with files placeholder and no files must be skipped: %+v", results[0])
	}
	if results[0].DurationMs != 0 || results[0].ExitCode != 0 {
		t.Errorf("skipped result should carry no process outcome: %+v", results[0])
	}
	if results[1].Skipped || results[1].ExitCode != 0 {
		t.Errorf("file-agnostic hook should still run: %+v", results[1])
	}
}

func TestRunUnquotablePathSkipsWithDiagnostic(t *testing.T) {
	var diag bytes.Buffer
	ec := testCtx(t)
	ec.Diag = log.New(&diag, "", 0)

	hooks := []core.HookDefinition{hookDef("lint", "echo {files}", 0)}
	files := []string{"bad\x00path.ts"}

	results := Run(context.Background(), hooks, files, ec)
	if !results[0].Skipped {
		t.Fatalf("unquotable path should skip the hook: %+v", results[0])
	}
	if !strings.Contains(diag.String(), "test/lint") || !strings.Contains(diag.String(), "unquotable") {
		t.Errorf("skip reason not attributable from diagnostics: %q", diag.String())
	}
}

func TestRunExpandsPluginRoot(t *testing.T) {
	hook := hookDef("root", "echo ${PLUGIN_ROOT}", 0)
	hook.PluginRoot = "/plugins/linter"

	results := Run(context.Background(), []core.HookDefinition{hook}, nil, testCtx(t))
	if got := strings.TrimSpace(results[0].Stdout); got != "/plugins/linter" {
		t.Errorf("plugin root expansion = %q", got)
	}
}

func TestRunCancelledContextSkipsLaunches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, []core.HookDefinition{hookDef("never", "sleep 5", 0)}, nil, testCtx(t))
	if !results[0].Skipped {
		t.Errorf("hook launched after cancellation: %+v", results[0])
	}
}

func TestRunCancellationKillsInFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := Run(ctx, []core.HookDefinition{hookDef("long", "sleep 30", 0)}, nil, testCtx(t))
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation did not kill in-flight hook (took %v)", elapsed)
	}
	if results[0].ExitCode == 0 {
		t.Errorf("cancelled hook should carry a failing result: %+v", results[0])
	}
}
