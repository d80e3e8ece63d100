// Package discovery scans resolved plugin directories for hook manifests and
// flattens them into the normalized hook definition list the matcher consumes.
//
// Two manifest styles coexist per plugin and merge: a single hooks.json
// (probed at hooks/hooks.json, .claude-plugin/hooks.json, then hooks.json;
// first found wins) and one-file-per-hook YAML documents under
// hooks/hooks.d/. A parse failure in one plugin or drop-in file never aborts
// discovery for the rest.
package discovery

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tmeadows/hookbridge/internal/constants"
	"github.com/tmeadows/hookbridge/internal/core"
)

// manifestProbes lists candidate hooks.json locations relative to a plugin
// root, in probe order.
var manifestProbes = []string{
	filepath.Join(constants.HooksSubDir, "hooks.json"),
	filepath.Join(".claude-plugin", "hooks.json"),
	"hooks.json",
}

// Discover parses every plugin's manifests and returns the flattened
// definition list. Plugins are scanned concurrently; the result is sorted by
// plugin then hook name so repeated discovery over unchanged manifests yields
// a structurally identical list.
func Discover(ctx context.Context, plugins map[string]string, diag *log.Logger) []core.HookDefinition {
	var (
		mu   sync.Mutex
		defs []core.HookDefinition
	)

	g, ctx := errgroup.WithContext(ctx)
	for name, root := range plugins {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			found := discoverPlugin(name, root, diag)
			mu.Lock()
			defs = append(defs, found...)
			mu.Unlock()
			return nil
		})
	}
	// Workers only report through diag; the group is used for fan-in.
	_ = g.Wait()

	sort.Slice(defs, func(i, j int) bool {
		if defs[i].PluginName != defs[j].PluginName {
			return defs[i].PluginName < defs[j].PluginName
		}
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// discoverPlugin reads one plugin's hooks.json and hooks.d drop-ins.
func discoverPlugin(pluginName, pluginRoot string, diag *log.Logger) []core.HookDefinition {
	var defs []core.HookDefinition

	for _, probe := range manifestProbes {
		path := filepath.Join(pluginRoot, probe)
		data, err := os.ReadFile(path) // #nosec G304 - paths derive from resolved plugin roots
		if err != nil {
			continue
		}
		parsed, err := parseJSONManifest(data, pluginName, pluginRoot)
		if err != nil {
			if diag != nil {
				diag.Printf("discovery: skipping %s: %v", path, err)
			}
		} else {
			defs = append(defs, parsed...)
		}
		break
	}

	defs = append(defs, discoverDropIns(pluginName, pluginRoot, diag)...)
	return defs
}

// discoverDropIns reads hooks/hooks.d/*.yaml one-file-per-hook documents.
func discoverDropIns(pluginName, pluginRoot string, diag *log.Logger) []core.HookDefinition {
	dir := filepath.Join(pluginRoot, constants.HooksSubDir, constants.HooksDropInDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var defs []core.HookDefinition
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path) // #nosec G304 - paths derive from resolved plugin roots
		if err != nil {
			if diag != nil {
				diag.Printf("discovery: skipping %s: %v", path, err)
			}
			continue
		}
		def, err := parseHookFile(data, pluginName, pluginRoot, baseName(entry.Name()))
		if err != nil {
			if diag != nil {
				diag.Printf("discovery: skipping %s: %v", path, err)
			}
			continue
		}
		defs = append(defs, def)
	}
	return defs
}

// ForEvent filters definitions down to those tagged with the given event.
// Pure function, no side effects.
func ForEvent(defs []core.HookDefinition, event core.EventType) []core.HookDefinition {
	var out []core.HookDefinition
	for _, def := range defs {
		if def.FiresOn(event) {
			out = append(out, def)
		}
	}
	return out
}
