package discovery

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tmeadows/hookbridge/internal/core"
)

// hooksJSON is the top-level hooks.json manifest: event name -> matcher
// groups -> hook entries.
type hooksJSON struct {
	Hooks map[string][]hookGroup `json:"hooks"`
}

// hookGroup is one matcher group inside hooks.json. Matcher is a
// pipe-separated list of tool names ("Edit|Write"); empty means tool-agnostic.
type hookGroup struct {
	Matcher string      `json:"matcher,omitempty"`
	Hooks   []hookEntry `json:"hooks"`
}

// hookEntry is a single declared hook inside a matcher group.
type hookEntry struct {
	Name     string   `json:"name,omitempty"`
	Command  string   `json:"command"`
	Files    []string `json:"files,omitempty"`
	DirsWith []string `json:"dirsWith,omitempty"`
	DirTest  string   `json:"dirTest,omitempty"`
	Timeout  int      `json:"timeout,omitempty"` // milliseconds
}

// hookFile is a one-file-per-hook YAML document under hooks/hooks.d/.
type hookFile struct {
	Name      string   `yaml:"name"`
	Events    []string `yaml:"events"`
	Command   string   `yaml:"command"`
	Tools     []string `yaml:"tools,omitempty"`
	Files     []string `yaml:"files,omitempty"`
	DirsWith  []string `yaml:"dirsWith,omitempty"`
	DirTest   string   `yaml:"dirTest,omitempty"`
	TimeoutMs int      `yaml:"timeoutMs,omitempty"`
}

// parseJSONManifest parses a hooks.json document into definitions for the
// given plugin. Every hook entry fans out into one definition tagged with a
// single event; unknown event names fail the whole manifest so the caller can
// log and skip it.
func parseJSONManifest(data []byte, pluginName, pluginRoot string) ([]core.HookDefinition, error) {
	var manifest hooksJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse hooks.json: %w", err)
	}

	events := make([]string, 0, len(manifest.Hooks))
	for event := range manifest.Hooks {
		events = append(events, event)
	}
	sort.Strings(events)

	var defs []core.HookDefinition
	for _, event := range events {
		if !core.ValidEvent(event) {
			return nil, fmt.Errorf("unknown event %q in hooks.json", event)
		}
		seq := 0
		for _, group := range manifest.Hooks[event] {
			tools := splitMatcher(group.Matcher)
			for _, entry := range group.Hooks {
				if strings.TrimSpace(entry.Command) == "" {
					return nil, fmt.Errorf("hook entry under %q has no command", event)
				}
				name := entry.Name
				if name == "" {
					name = fmt.Sprintf("%s-%d", strings.ToLower(event), seq)
				}
				defs = append(defs, core.HookDefinition{
					Name:       name,
					PluginName: pluginName,
					PluginRoot: pluginRoot,
					Events:     []core.EventType{core.EventType(event)},
					Command:    entry.Command,
					Tools:      tools,
					Files:      entry.Files,
					DirsWith:   entry.DirsWith,
					DirTest:    entry.DirTest,
					TimeoutMs:  entry.Timeout,
				})
				seq++
			}
		}
	}
	return defs, nil
}

// parseHookFile parses a single hooks.d YAML document into one definition
// tagged with all of its declared events.
func parseHookFile(data []byte, pluginName, pluginRoot, fallbackName string) (core.HookDefinition, error) {
	var hf hookFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return core.HookDefinition{}, fmt.Errorf("parse hook file: %w", err)
	}
	if strings.TrimSpace(hf.Command) == "" {
		return core.HookDefinition{}, fmt.Errorf("hook file has no command")
	}
	if len(hf.Events) == 0 {
		return core.HookDefinition{}, fmt.Errorf("hook file declares no events")
	}

	events := make([]core.EventType, 0, len(hf.Events))
	for _, event := range hf.Events {
		if !core.ValidEvent(event) {
			return core.HookDefinition{}, fmt.Errorf("unknown event %q", event)
		}
		events = append(events, core.EventType(event))
	}

	name := hf.Name
	if name == "" {
		name = fallbackName
	}
	return core.HookDefinition{
		Name:       name,
		PluginName: pluginName,
		PluginRoot: pluginRoot,
		Events:     events,
		Command:    hf.Command,
		Tools:      hf.Tools,
		Files:      hf.Files,
		DirsWith:   hf.DirsWith,
		DirTest:    hf.DirTest,
		TimeoutMs:  hf.TimeoutMs,
	}, nil
}

// splitMatcher turns a pipe-separated tool matcher ("Edit|Write") into a
// tool name list. An empty matcher means tool-agnostic.
func splitMatcher(matcher string) []string {
	if strings.TrimSpace(matcher) == "" {
		return nil
	}
	var tools []string
	for _, part := range strings.Split(matcher, "|") {
		if t := strings.TrimSpace(part); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}

// baseName strips the extension from a hooks.d filename for use as the
// default hook name.
func baseName(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx]
	}
	return filename
}
