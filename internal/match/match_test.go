package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmeadows/hookbridge/internal/core"
)

func defWith(mutate func(*core.HookDefinition)) core.HookDefinition {
	def := core.HookDefinition{
		Name:       "check",
		PluginName: "test-plugin",
		PluginRoot: "/plugins/test-plugin",
		Events:     []core.EventType{core.PostToolUseEvent},
		Command:    "true",
	}
	if mutate != nil {
		mutate(&def)
	}
	return def
}

func TestForToolCallEventFilter(t *testing.T) {
	defs := []core.HookDefinition{defWith(nil)}

	matched := ForToolCall(defs, core.PreToolUseEvent, "Edit", []string{"a.go"}, t.TempDir())
	if len(matched) != 0 {
		t.Errorf("expected no match for wrong event, got %d", len(matched))
	}

	matched = ForToolCall(defs, core.PostToolUseEvent, "Edit", []string{"a.go"}, t.TempDir())
	if len(matched) != 1 {
		t.Errorf("expected match for declared event, got %d", len(matched))
	}
}

func TestForToolCallToolFilterExclusivity(t *testing.T) {
	defs := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.Tools = []string{"Write", "Edit"}
	})}

	if m := ForToolCall(defs, core.PostToolUseEvent, "Bash", []string{"a.go"}, t.TempDir()); len(m) != 0 {
		t.Errorf("tool filter [Write,Edit] must not match Bash, got %d hooks", len(m))
	}
	if m := ForToolCall(defs, core.PostToolUseEvent, "Edit", []string{"a.go"}, t.TempDir()); len(m) != 1 {
		t.Errorf("tool filter [Write,Edit] should match Edit, got %d hooks", len(m))
	}
}

func TestForToolCallFileFilter(t *testing.T) {
	defs := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.Files = []string{"**/*.ts"}
	})}

	if m := ForToolCall(defs, core.PostToolUseEvent, "Edit", []string{"src/app.ts"}, t.TempDir()); len(m) != 1 {
		t.Errorf("expected glob match for src/app.ts, got %d hooks", len(m))
	}
	if m := ForToolCall(defs, core.PostToolUseEvent, "Edit", []string{"src/app.js"}, t.TempDir()); len(m) != 0 {
		t.Errorf("expected no glob match for src/app.js, got %d hooks", len(m))
	}
}

func TestForToolCallAbsolutePathMatchesProjectRelativeGlob(t *testing.T) {
	project := t.TempDir()
	defs := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.Files = []string{"src/**/*.ts"}
	})}

	abs := filepath.Join(project, "src", "app.ts")
	if m := ForToolCall(defs, core.PostToolUseEvent, "Edit", []string{abs}, project); len(m) != 1 {
		t.Errorf("expected absolute path under project root to match, got %d hooks", len(m))
	}
}

func TestDirsWithAllMarkersRequired(t *testing.T) {
	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, "package.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	both := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.DirsWith = []string{"package.json", "tsconfig.json"}
	})}
	if m := ForToolCall(both, core.PostToolUseEvent, "Edit", []string{"a.ts"}, project); len(m) != 0 {
		t.Errorf("missing marker must exclude hook (AND semantics), got %d hooks", len(m))
	}

	one := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.DirsWith = []string{"package.json"}
	})}
	if m := ForToolCall(one, core.PostToolUseEvent, "Edit", []string{"a.ts"}, project); len(m) != 1 {
		t.Errorf("present marker should allow hook, got %d hooks", len(m))
	}
}

func TestDirTest(t *testing.T) {
	project := t.TempDir()

	pass := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.DirTest = "true"
	})}
	if m := ForTerminal(pass, core.PostToolUseEvent, project); len(m) != 1 {
		t.Errorf("passing dirTest should match, got %d hooks", len(m))
	}

	fail := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.DirTest = "test -f does-not-exist.lock"
	})}
	if m := ForTerminal(fail, core.PostToolUseEvent, project); len(m) != 0 {
		t.Errorf("failing dirTest must exclude hook, got %d hooks", len(m))
	}

	// A broken expression fails closed.
	broken := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.DirTest = "this-command-does-not-exist-anywhere"
	})}
	if m := ForTerminal(broken, core.PostToolUseEvent, project); len(m) != 0 {
		t.Errorf("broken dirTest must exclude hook, got %d hooks", len(m))
	}
}

func TestForTerminalIgnoresToolAndFileCriteria(t *testing.T) {
	project := t.TempDir()
	defs := []core.HookDefinition{defWith(func(d *core.HookDefinition) {
		d.Events = []core.EventType{core.StopEvent}
		d.Tools = []string{"Edit"}
		d.Files = []string{"**/*.ts"}
	})}

	// Terminal matching applies only directory preconditions.
	if m := ForTerminal(defs, core.StopEvent, project); len(m) != 1 {
		t.Errorf("terminal match should ignore tool/file filters, got %d hooks", len(m))
	}
}
