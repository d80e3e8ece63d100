// Package events keeps an append-only per-session record of file changes and
// hook outcomes, written as JSONL for an external visualization surface.
// The logger is purely observational: its failures are reported through the
// diagnostic channel and never influence decision computation.
package events

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

// Entry is one logged record. Kind is "file_change" or "hook_result".
type Entry struct {
	Timestamp  string `json:"timestamp"`
	SessionID  string `json:"session_id"`
	Kind       string `json:"kind"`
	Tool       string `json:"tool,omitempty"`
	Path       string `json:"path,omitempty"`
	Plugin     string `json:"plugin,omitempty"`
	Hook       string `json:"hook,omitempty"`
	Event      string `json:"event,omitempty"`
	ExitCode   int    `json:"exit_code,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
}

// Logger buffers entries in memory and appends them to the session log file
// on Flush. Safe for concurrent use; the executor's fan-in means multiple
// hook completions can report near-simultaneously.
type Logger struct {
	mu        sync.Mutex
	sessionID string
	buf       []Entry
	out       *lumberjack.Logger
	diag      *log.Logger
}

// Open returns a logger targeting the session's log file under the project's
// .claude directory. Opening the same session target repeatedly is fine; each
// event-handling invocation may be a fresh process, and lumberjack appends.
func Open(projectDir, sessionID string, diag *log.Logger) *Logger {
	return &Logger{
		sessionID: sessionID,
		out: &lumberjack.Logger{
			Filename:   constants.SessionLogPath(projectDir, sessionID),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		},
		diag: diag,
	}
}

// FileChange records a tool touching a path.
func (l *Logger) FileChange(tool, path string) {
	l.append(Entry{Kind: "file_change", Tool: tool, Path: path})
}

// HookOutcome records one hook execution result for an event.
func (l *Logger) HookOutcome(event core.EventType, r core.HookResult) {
	l.append(Entry{
		Kind:       "hook_result",
		Plugin:     r.Hook.PluginName,
		Hook:       r.Hook.Name,
		Event:      string(event),
		ExitCode:   r.ExitCode,
		DurationMs: r.DurationMs,
		Skipped:    r.Skipped,
	})
}

func (l *Logger) append(e Entry) {
	e.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	e.SessionID = l.sessionID
	l.mu.Lock()
	l.buf = append(l.buf, e)
	l.mu.Unlock()
}

// Flush durably writes all buffered entries and clears the buffer. Called
// after every hook batch, success or failure. Write errors are diagnostic
// only.
func (l *Logger) Flush() {
	l.mu.Lock()
	pending := l.buf
	l.buf = nil
	l.mu.Unlock()

	for _, e := range pending {
		line, err := json.Marshal(e)
		if err != nil {
			continue
		}
		if _, err := l.out.Write(append(line, '\n')); err != nil {
			if l.diag != nil {
				l.diag.Printf("events: write failed: %v", err)
			}
			return
		}
	}
}

// Close flushes and releases the underlying file.
func (l *Logger) Close() {
	l.Flush()
	if err := l.out.Close(); err != nil && l.diag != nil {
		l.diag.Printf("events: close failed: %v", err)
	}
}
