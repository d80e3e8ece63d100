package host

import (
	"encoding/json"
	"fmt"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

// Cursor adapts Cursor's hook protocol. Cursor names events after specific
// actions (beforeShellExecution, afterFileEdit, ...) and implies the tool
// from the event, so normalization maps both onto the canonical model.
type Cursor struct{}

// cursorInput is the stdin document Cursor sends per hook invocation.
type cursorInput struct {
	ConversationID string         `json:"conversation_id"`
	HookEventName  string         `json:"hook_event_name"`
	WorkspaceRoots []string       `json:"workspace_roots"`
	ToolName       string         `json:"tool_name,omitempty"`
	ToolInput      map[string]any `json:"tool_input,omitempty"`
	Command        string         `json:"command,omitempty"`
	FilePath       string         `json:"file_path,omitempty"`
}

// cursorOutput is the response document: permission is allow/deny/ask, and
// agentMessage carries text back to the agent.
type cursorOutput struct {
	Permission   string `json:"permission,omitempty"`
	UserMessage  string `json:"userMessage,omitempty"`
	AgentMessage string `json:"agentMessage,omitempty"`
}

// cursorEvents maps Cursor event names to the canonical event plus the tool
// the event implies.
var cursorEvents = map[string]struct {
	event core.EventType
	tool  string
}{
	"beforeShellExecution": {core.PreToolUseEvent, constants.ToolBash},
	"beforeMCPExecution":   {core.PreToolUseEvent, ""},
	"beforeReadFile":       {core.PreToolUseEvent, constants.ToolRead},
	"beforeFileEdit":       {core.PreToolUseEvent, constants.ToolEdit},
	"afterFileEdit":        {core.PostToolUseEvent, constants.ToolEdit},
	"afterShellExecution":  {core.PostToolUseEvent, constants.ToolBash},
	"sessionStart":         {core.SessionStartEvent, ""},
	"stop":                 {core.StopEvent, ""},
	"sessionEnd":           {core.SessionEndEvent, ""},
}

func (c *Cursor) Name() string { return "cursor" }

func (c *Cursor) ParseEvent(data []byte) (*Event, error) {
	var in cursorInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("cursor: decode input: %w", err)
	}
	mapping, ok := cursorEvents[in.HookEventName]
	if !ok {
		return nil, fmt.Errorf("cursor: unknown event %q", in.HookEventName)
	}

	tool := mapping.tool
	if tool == "" && in.ToolName != "" {
		tool = in.ToolName
	}

	files := extractFiles(in.ToolInput)
	if len(files) == 0 && in.FilePath != "" {
		files = []string{in.FilePath}
	}

	var projectDir string
	if len(in.WorkspaceRoots) > 0 {
		projectDir = in.WorkspaceRoots[0]
	}

	return &Event{
		Type:       mapping.event,
		Tool:       tool,
		RawTool:    in.ToolName,
		Files:      files,
		ProjectDir: projectDir,
		SessionID:  in.ConversationID,
	}, nil
}

func (c *Cursor) RenderDecision(ev *Event, d *core.Decision) any {
	if d == nil {
		return cursorOutput{}
	}
	switch d.Verdict {
	case core.VerdictDeny, core.VerdictBlock:
		return cursorOutput{Permission: "deny", AgentMessage: d.Reason}
	default:
		return cursorOutput{AgentMessage: d.Reason}
	}
}

func (c *Cursor) RenderContext(_ *Event, _ string) any {
	// Cursor has no context-injection channel.
	return cursorOutput{}
}
