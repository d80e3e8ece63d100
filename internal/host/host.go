// Package host adapts the provider-agnostic pipeline to a specific AI coding
// tool's wire vocabulary. Each provider supplies event parsing, tool-name
// normalization, and decision rendering; the core pipeline never branches on
// the host. The provider is selected once at process entry.
package host

import (
	"strings"

	"github.com/tmeadows/hookbridge/internal/core"
)

// Event is the normalized triggering event handed to the pipeline.
type Event struct {
	Type core.EventType
	// Tool is the canonical tool name; empty for terminal/session events.
	Tool string
	// RawTool is the host's native tool name before normalization.
	RawTool string
	// Files are the triggering file paths extracted from the tool input.
	Files []string
	// ProjectDir is the host-supplied project directory, if any.
	ProjectDir string
	// SessionID is the host-supplied session identity, if any.
	SessionID string
}

// Provider is the per-host strategy.
type Provider interface {
	// Name identifies the provider ("claude", "cursor", "opencode").
	Name() string
	// ParseEvent decodes a raw input document into a normalized event.
	ParseEvent(data []byte) (*Event, error)
	// RenderDecision translates a decision into the host's output shape.
	// A nil decision renders the host's "no objection" shape.
	RenderDecision(ev *Event, d *core.Decision) any
	// RenderContext surfaces session-start hook output to hosts that
	// support injected context; others render their empty shape.
	RenderContext(ev *Event, text string) any
}

// Select returns the provider for a host identity tag. Unknown or empty tags
// fall back to the Claude provider.
func Select(name string) Provider {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cursor":
		return &Cursor{}
	case "opencode":
		return &OpenCode{}
	default:
		return &Claude{}
	}
}
