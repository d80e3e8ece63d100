package host

import (
	"encoding/json"
	"fmt"

	"github.com/tmeadows/hookbridge/internal/core"
)

// Claude adapts the Claude Code hook protocol. Claude's event and tool names
// are the canonical set, so normalization is the identity.
type Claude struct{}

// claudeInput is the stdin document Claude Code sends per hook invocation.
type claudeInput struct {
	SessionID     string         `json:"session_id"`
	Cwd           string         `json:"cwd"`
	HookEventName string         `json:"hook_event_name"`
	ToolName      string         `json:"tool_name"`
	ToolInput     map[string]any `json:"tool_input"`
}

// claudeSpecificOutput is the hookSpecificOutput payload for decisions that
// use the permission vocabulary.
type claudeSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

type claudeOutput struct {
	Decision           string                `json:"decision,omitempty"`
	Reason             string                `json:"reason,omitempty"`
	SystemMessage      string                `json:"systemMessage,omitempty"`
	HookSpecificOutput *claudeSpecificOutput `json:"hookSpecificOutput,omitempty"`
}

func (c *Claude) Name() string { return "claude" }

func (c *Claude) ParseEvent(data []byte) (*Event, error) {
	var in claudeInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("claude: decode input: %w", err)
	}
	if !core.ValidEvent(in.HookEventName) {
		return nil, fmt.Errorf("claude: unknown event %q", in.HookEventName)
	}
	return &Event{
		Type:       core.EventType(in.HookEventName),
		Tool:       in.ToolName,
		RawTool:    in.ToolName,
		Files:      extractFiles(in.ToolInput),
		ProjectDir: in.Cwd,
		SessionID:  in.SessionID,
	}, nil
}

func (c *Claude) RenderDecision(ev *Event, d *core.Decision) any {
	if d == nil {
		return claudeOutput{}
	}
	switch d.Verdict {
	case core.VerdictDeny:
		return claudeOutput{HookSpecificOutput: &claudeSpecificOutput{
			HookEventName:            string(ev.Type),
			PermissionDecision:       "deny",
			PermissionDecisionReason: d.Reason,
		}}
	case core.VerdictAdvise:
		return claudeOutput{SystemMessage: d.Reason}
	default:
		return claudeOutput{Decision: "block", Reason: d.Reason}
	}
}

func (c *Claude) RenderContext(ev *Event, text string) any {
	if text == "" {
		return claudeOutput{}
	}
	return claudeOutput{HookSpecificOutput: &claudeSpecificOutput{
		HookEventName:     string(ev.Type),
		AdditionalContext: text,
	}}
}
