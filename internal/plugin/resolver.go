// Package plugin resolves installed plugin names to directories on disk.
//
// Four sources contribute, later ones overriding earlier ones:
//
//  1. user plugin directory scan   (~/.claude/plugins/<name>/)
//  2. user config                  (~/.config/hookbridge/config.toml)
//  3. project plugin directory scan (<project>/.claude/plugins/<name>/)
//  4. project settings             (<project>/.claude/settings.json)
//
// so a project-scope declaration always wins over a user-scope one.
package plugin

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tmeadows/hookbridge/internal/constants"
)

// projectSettings is the subset of .claude/settings.json the resolver reads.
type projectSettings struct {
	Plugins map[string]string `json:"plugins,omitempty"`
}

// userConfig is the user-scope TOML configuration.
type userConfig struct {
	Plugins map[string]string `toml:"plugins"`
}

// Resolve returns a map from plugin name to plugin root directory for the
// given project. Missing configuration yields an empty map, never an error;
// declared plugins whose directory does not exist are silently excluded.
// Filesystem reads only.
func Resolve(projectDir string, diag *log.Logger) map[string]string {
	plugins := make(map[string]string)

	if home, err := os.UserHomeDir(); err == nil {
		scanPluginsDir(filepath.Join(home, constants.ClaudeDir, constants.PluginsSubDir), plugins)
		mergeUserConfig(filepath.Join(home, ".config", constants.UserConfigDirName, constants.UserConfigFileName), plugins, diag)
	}

	scanPluginsDir(constants.ProjectPluginsDir(projectDir), plugins)
	mergeProjectSettings(constants.ProjectSettingsPath(projectDir), projectDir, plugins, diag)

	return plugins
}

// scanPluginsDir treats every subdirectory of dir as an installed plugin
// named after the directory.
func scanPluginsDir(dir string, plugins map[string]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		plugins[entry.Name()] = filepath.Join(dir, entry.Name())
	}
}

func mergeUserConfig(path string, plugins map[string]string, diag *log.Logger) {
	var cfg userConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) && diag != nil {
			diag.Printf("plugin: skipping user config %s: %v", path, err)
		}
		return
	}
	// Relative declared paths resolve against the config file's directory.
	mergeDeclared(cfg.Plugins, filepath.Dir(path), plugins)
}

func mergeProjectSettings(path, projectDir string, plugins map[string]string, diag *log.Logger) {
	data, err := os.ReadFile(path) // #nosec G304 - controlled settings paths
	if err != nil {
		return
	}
	var settings projectSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		if diag != nil {
			diag.Printf("plugin: skipping project settings %s: %v", path, err)
		}
		return
	}
	mergeDeclared(settings.Plugins, projectDir, plugins)
}

// mergeDeclared resolves declared name->path entries against baseDir and
// keeps only those that exist as directories.
func mergeDeclared(declared map[string]string, baseDir string, plugins map[string]string) {
	for name, path := range declared {
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		plugins[name] = path
	}
}
