package core

// EventType represents a canonical lifecycle event. Host adapters map their
// native event names onto this set before the pipeline sees them.
type EventType string

// All canonical lifecycle events.
const (
	SessionStartEvent EventType = "SessionStart"
	PreToolUseEvent   EventType = "PreToolUse"
	PostToolUseEvent  EventType = "PostToolUse"
	StopEvent         EventType = "Stop"
	SubagentStopEvent EventType = "SubagentStop"
	SessionEndEvent   EventType = "SessionEnd"
)

// Stage classifies an event by how its hook results feed back into the host.
type Stage string

const (
	// StagePre runs before a tool executes; failures can still stop the action.
	StagePre Stage = "pre"
	// StagePost runs after a tool executed; failures are advisory only.
	StagePost Stage = "post"
	// StageTerminal validates whole-project state at end of turn or session.
	StageTerminal Stage = "terminal"
	// StageSession covers session-start context hooks; no decision is produced.
	StageSession Stage = "session"
)

// StageOf returns the stage class for an event type.
func StageOf(e EventType) Stage {
	switch e {
	case PreToolUseEvent:
		return StagePre
	case PostToolUseEvent:
		return StagePost
	case SessionStartEvent:
		return StageSession
	default:
		return StageTerminal
	}
}

// ValidEvent reports whether name is a canonical event type.
func ValidEvent(name string) bool {
	switch EventType(name) {
	case SessionStartEvent, PreToolUseEvent, PostToolUseEvent,
		StopEvent, SubagentStopEvent, SessionEndEvent:
		return true
	}
	return false
}
