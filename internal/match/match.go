// Package match narrows discovered hook definitions to those applicable to a
// triggering event: by event tag, tool name, file globs, and directory
// preconditions. Broken preconditions fail closed - an evaluation error means
// the hook does not match.
package match

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

// ForToolCall selects hooks applicable to a tool invocation that touched the
// given file paths. The tool name must already be normalized to the canonical
// set. Relative file paths are matched as given; absolute paths are also
// tried relative to the project root so project-relative globs work either way.
func ForToolCall(defs []core.HookDefinition, event core.EventType, tool string, files []string, projectDir string) []core.HookDefinition {
	var matched []core.HookDefinition
	for _, def := range defs {
		if !def.FiresOn(event) {
			continue
		}
		if len(def.Tools) > 0 && !containsTool(def.Tools, tool) {
			continue
		}
		if len(def.Files) > 0 && !AnyGlob(def.Files, matchablePaths(files, projectDir)) {
			continue
		}
		if !dirPreconditionsPass(def, projectDir) {
			continue
		}
		matched = append(matched, def)
	}
	return matched
}

// ForTerminal selects hooks applicable to an end-of-turn or session event.
// There is no single triggering tool or file, so only the directory
// preconditions apply.
func ForTerminal(defs []core.HookDefinition, event core.EventType, projectDir string) []core.HookDefinition {
	var matched []core.HookDefinition
	for _, def := range defs {
		if !def.FiresOn(event) {
			continue
		}
		if !dirPreconditionsPass(def, projectDir) {
			continue
		}
		matched = append(matched, def)
	}
	return matched
}

func containsTool(tools []string, tool string) bool {
	for _, t := range tools {
		if t == tool {
			return true
		}
	}
	return false
}

// matchablePaths returns each path plus, for absolute paths under the project
// root, its project-relative form.
func matchablePaths(files []string, projectDir string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f)
		if projectDir != "" && filepath.IsAbs(f) {
			if rel, err := filepath.Rel(projectDir, f); err == nil && filepath.IsLocal(rel) {
				out = append(out, filepath.ToSlash(rel))
			}
		}
	}
	return out
}

func dirPreconditionsPass(def core.HookDefinition, projectDir string) bool {
	for _, marker := range def.DirsWith {
		if _, err := os.Stat(filepath.Join(projectDir, marker)); err != nil {
			return false
		}
	}
	if def.DirTest != "" && !dirTestPasses(def.DirTest, projectDir) {
		return false
	}
	return true
}

// dirTestPasses evaluates a boolean shell expression in the project
// directory. Any spawn failure, non-zero exit, or timeout excludes the hook.
func dirTestPasses(expr, projectDir string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DirTestTimeoutMs*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", expr)
	cmd.Dir = projectDir
	return cmd.Run() == nil
}
