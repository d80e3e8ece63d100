// Package core defines the data model shared by the hook pipeline:
// hook definitions produced by discovery, results produced by the executor,
// and the decision handed back to the host adapter.
package core

// HookDefinition is a single declared check contributed by a plugin.
// Definitions are immutable once parsed; re-parsing the same manifest must
// yield identical definitions.
type HookDefinition struct {
	// Name is unique within the owning plugin.
	Name string
	// PluginName and PluginRoot identify the owning plugin and its
	// absolute directory, used for relative command resolution.
	PluginName string
	PluginRoot string
	// Events lists the lifecycle events this hook fires on.
	Events []EventType
	// Command is an opaque shell command template. It may contain a
	// placeholder for the triggering file paths and a plugin-root token.
	Command string
	// Tools restricts the hook to specific canonical tool names.
	// Empty means tool-agnostic.
	Tools []string
	// Files restricts the hook to events whose triggering paths match at
	// least one glob. Empty means any file.
	Files []string
	// DirsWith lists marker files that must all exist at the project root
	// for the hook to apply.
	DirsWith []string
	// DirTest is an optional boolean shell expression evaluated in the
	// project directory. Non-zero exit excludes the hook.
	DirTest string
	// TimeoutMs caps wall-clock run time. Zero means the stage default.
	TimeoutMs int
}

// FiresOn reports whether the definition is tagged with the given event.
func (h HookDefinition) FiresOn(event EventType) bool {
	for _, e := range h.Events {
		if e == event {
			return true
		}
	}
	return false
}

// ID returns the plugin-qualified hook name used in log lines and
// failure messages.
func (h HookDefinition) ID() string {
	return h.PluginName + "/" + h.Name
}

// HookResult is the outcome of running one matched hook once. Exactly one
// result exists per matched definition; hooks that were matched but not run
// carry Skipped=true and no process timing.
type HookResult struct {
	Hook       HookDefinition
	ExitCode   int
	Stdout     string
	Stderr     string
	DurationMs int64
	Skipped    bool
}

// Failed reports whether the result counts toward a deny/block decision.
func (r HookResult) Failed() bool {
	return !r.Skipped && r.ExitCode != 0
}

// Verdict is the semantic control verdict of a Decision. The host adapter
// translates it into that host's native vocabulary.
type Verdict string

const (
	// VerdictDeny stops a pending action before it happens.
	VerdictDeny Verdict = "deny"
	// VerdictBlock forces the agent to address issues after the fact.
	VerdictBlock Verdict = "block"
	// VerdictAdvise surfaces issues without forcing anything; the action
	// already happened and is not undone.
	VerdictAdvise Verdict = "advise"
)

// Decision is the formatter's aggregate output for one event. A nil *Decision
// means "no objection" (the host proceeds normally).
type Decision struct {
	Verdict Verdict
	// Reason enumerates each failing hook's plugin-qualified name and
	// captured output.
	Reason string
}
