// Package executor runs matched hooks as independent, time-bounded child
// processes. All hooks for one event launch concurrently and are awaited
// together; one hook's failure or timeout never cancels a sibling. Hook
// commands are opaque shell strings handed to bash - this package spawns and
// collects, it does not interpret.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"mvdan.cc/sh/v3/syntax"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

// Context carries per-event execution parameters shared by all hooks.
type Context struct {
	// WorkDir is the working directory for hook processes, normally the
	// project root.
	WorkDir string
	// SessionID is exported to hook processes.
	SessionID string
	// DefaultTimeout applies to hooks that declare no timeout of their own.
	DefaultTimeout time.Duration
	// Diag receives diagnostic lines; never written to stdout.
	Diag *log.Logger
}

// Run executes every hook concurrently and returns one result per hook, in
// input order. The triggering files are substituted into commands carrying
// the files placeholder; a hook whose command expects files when none remain
// is recorded as skipped. Cancelling ctx stops new launches and kills
// in-flight process groups; results already collected stay valid.
func Run(ctx context.Context, hooks []core.HookDefinition, files []string, ec Context) []core.HookResult {
	results := make([]core.HookResult, len(hooks))

	var wg sync.WaitGroup
	for i, hook := range hooks {
		// Each slot is written exactly once by its own goroutine.
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runOne(ctx, hook, files, ec)
		}()
	}
	wg.Wait()

	return results
}

// runOne executes a single hook and never returns an error: misconfiguration,
// spawn failure, and timeout all surface as a failing result.
func runOne(ctx context.Context, hook core.HookDefinition, files []string, ec Context) core.HookResult {
	result := core.HookResult{Hook: hook}

	command, ok := expandCommand(hook, files, ec.Diag)
	if !ok {
		// Matched, but nothing safe to substitute.
		result.Skipped = true
		return result
	}

	if ctx.Err() != nil {
		// Caller shut down before this hook launched.
		result.Skipped = true
		return result
	}

	timeout := ec.DefaultTimeout
	if hook.TimeoutMs > 0 {
		timeout = time.Duration(hook.TimeoutMs) * time.Millisecond
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("bash", "-c", command)
	cmd.Dir = ec.WorkDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Own process group so a timeout can kill the whole tree, not just bash.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Env = append(os.Environ(),
		constants.EnvSessionID+"="+ec.SessionID,
		constants.EnvProjectDir+"="+ec.WorkDir,
		constants.EnvHookPluginRoot+"="+hook.PluginRoot,
	)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		result.ExitCode = -1
		result.Stderr = fmt.Sprintf("failed to start hook: %v", err)
		if ec.Diag != nil {
			ec.Diag.Printf("executor: %s: %v", hook.ID(), err)
		}
		return result
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var timedOut bool
	select {
	case err := <-done:
		result.ExitCode = exitCode(err)
	case <-timer.C:
		timedOut = true
	case <-ctx.Done():
		timedOut = true
	}

	if timedOut {
		killGroup(cmd)
		<-done
		result.ExitCode = -1
	}

	result.DurationMs = time.Since(start).Milliseconds()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if timedOut {
		note := fmt.Sprintf("hook timed out after %dms", timeout.Milliseconds())
		if ctx.Err() != nil {
			note = "hook cancelled"
		}
		if result.Stderr != "" {
			note = result.Stderr + "\n" + note
		}
		result.Stderr = note
	}
	return result
}

// expandCommand substitutes the plugin-root token and the files placeholder.
// It reports false when the command expects substituted files but none were
// provided (terminal events, or every triggering path filtered away), or when
// a path cannot be shell-quoted; the latter gets a diagnostic line so the
// skip is attributable.
func expandCommand(hook core.HookDefinition, files []string, diag *log.Logger) (string, bool) {
	command := strings.ReplaceAll(hook.Command, constants.PluginRootPlaceholder, hook.PluginRoot)
	if !strings.Contains(command, constants.FilesPlaceholder) {
		return command, true
	}
	if len(files) == 0 {
		return "", false
	}
	quoted := make([]string, 0, len(files))
	for _, f := range files {
		q, err := syntax.Quote(f, syntax.LangBash)
		if err != nil {
			if diag != nil {
				diag.Printf("executor: %s: skipping, unquotable path %q: %v", hook.ID(), f, err)
			}
			return "", false
		}
		quoted = append(quoted, q)
	}
	return strings.ReplaceAll(command, constants.FilesPlaceholder, strings.Join(quoted, " ")), true
}

// exitCode maps cmd.Wait's error into a process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// killGroup force-terminates the hook's whole process group.
func killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
