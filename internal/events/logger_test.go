package events

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("bad log line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestFlushWritesBufferedEntries(t *testing.T) {
	project := t.TempDir()
	logger := Open(project, "session-1", nil)
	defer logger.Close()

	logger.FileChange("Edit", "src/app.ts")
	logger.HookOutcome(core.PostToolUseEvent, core.HookResult{
		Hook:       core.HookDefinition{Name: "typecheck", PluginName: "typescript"},
		ExitCode:   1,
		DurationMs: 42,
	})
	logger.Flush()

	entries := readEntries(t, constants.SessionLogPath(project, "session-1"))
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != "file_change" || entries[0].Tool != "Edit" || entries[0].Path != "src/app.ts" {
		t.Errorf("file change entry: %+v", entries[0])
	}
	if entries[1].Kind != "hook_result" || entries[1].Plugin != "typescript" || entries[1].ExitCode != 1 {
		t.Errorf("hook result entry: %+v", entries[1])
	}
	if entries[0].SessionID != "session-1" {
		t.Errorf("session id not stamped: %+v", entries[0])
	}
}

func TestFlushClearsBuffer(t *testing.T) {
	project := t.TempDir()
	logger := Open(project, "s", nil)
	defer logger.Close()

	logger.FileChange("Write", "a.go")
	logger.Flush()
	logger.Flush()

	entries := readEntries(t, constants.SessionLogPath(project, "s"))
	if len(entries) != 1 {
		t.Errorf("double flush duplicated entries: %d", len(entries))
	}
}

func TestReopenSameSessionAppends(t *testing.T) {
	project := t.TempDir()

	first := Open(project, "s", nil)
	first.FileChange("Edit", "one.go")
	first.Close()

	second := Open(project, "s", nil)
	second.FileChange("Edit", "two.go")
	second.Close()

	entries := readEntries(t, constants.SessionLogPath(project, "s"))
	if len(entries) != 2 {
		t.Errorf("re-opened session log lost entries: %d", len(entries))
	}
}

func TestConcurrentAppends(t *testing.T) {
	project := t.TempDir()
	logger := Open(project, "s", nil)
	defer logger.Close()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.HookOutcome(core.StopEvent, core.HookResult{
				Hook: core.HookDefinition{Name: "h", PluginName: "p"},
			})
		}()
	}
	wg.Wait()
	logger.Flush()

	entries := readEntries(t, constants.SessionLogPath(project, "s"))
	if len(entries) != writers {
		t.Errorf("expected %d entries, got %d", writers, len(entries))
	}
}
