package host

import (
	"encoding/json"
	"fmt"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

// OpenCode adapts OpenCode-style hosts: dotted event names, lowercase tool
// names, and an action/reason response shape.
type OpenCode struct{}

type openCodeInput struct {
	Event     string         `json:"event"`
	SessionID string         `json:"sessionID"`
	Directory string         `json:"directory"`
	Tool      string         `json:"tool,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
}

type openCodeOutput struct {
	Action string `json:"action,omitempty"`
	Reason string `json:"reason,omitempty"`
}

var openCodeEvents = map[string]core.EventType{
	"session.start":       core.SessionStartEvent,
	"tool.execute.before": core.PreToolUseEvent,
	"tool.execute.after":  core.PostToolUseEvent,
	"session.idle":        core.StopEvent,
	"session.end":         core.SessionEndEvent,
}

// openCodeTools normalizes OpenCode's lowercase tool names onto the
// canonical set. Unlisted names pass through unchanged.
var openCodeTools = map[string]string{
	"bash":      constants.ToolBash,
	"edit":      constants.ToolEdit,
	"multiedit": constants.ToolMultiEdit,
	"write":     constants.ToolWrite,
	"read":      constants.ToolRead,
	"glob":      constants.ToolGlob,
	"grep":      constants.ToolGrep,
	"webfetch":  constants.ToolWebFetch,
}

func (o *OpenCode) Name() string { return "opencode" }

func (o *OpenCode) ParseEvent(data []byte) (*Event, error) {
	var in openCodeInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("opencode: decode input: %w", err)
	}
	event, ok := openCodeEvents[in.Event]
	if !ok {
		return nil, fmt.Errorf("opencode: unknown event %q", in.Event)
	}

	tool := in.Tool
	if canonical, ok := openCodeTools[tool]; ok {
		tool = canonical
	}

	return &Event{
		Type:       event,
		Tool:       tool,
		RawTool:    in.Tool,
		Files:      extractFiles(in.Args),
		ProjectDir: in.Directory,
		SessionID:  in.SessionID,
	}, nil
}

func (o *OpenCode) RenderDecision(_ *Event, d *core.Decision) any {
	if d == nil {
		return openCodeOutput{}
	}
	switch d.Verdict {
	case core.VerdictDeny:
		return openCodeOutput{Action: "deny", Reason: d.Reason}
	case core.VerdictBlock:
		return openCodeOutput{Action: "block", Reason: d.Reason}
	default:
		return openCodeOutput{Action: "warn", Reason: d.Reason}
	}
}

func (o *OpenCode) RenderContext(_ *Event, _ string) any {
	return openCodeOutput{}
}
