package constants

import "path/filepath"

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName    = "hookbridge"
	BinaryName = "hookbridge"

	// Module and repository
	ModulePath = "github.com/tmeadows/hookbridge"

	// Directory layout
	ClaudeDir      = ".claude"
	PluginsSubDir  = "plugins"
	SessionsSubDir = "hookbridge/sessions"
	HooksSubDir    = "hooks"
	HooksDropInDir = "hooks.d"

	// Configuration files
	SettingsFileName   = "settings.json"
	UserConfigFileName = "config.toml"
	UserConfigDirName  = "hookbridge"

	// Environment variables
	EnvHost       = "HOOKBRIDGE_HOST"
	EnvProjectDir = "HOOKBRIDGE_PROJECT_DIR"
	EnvSessionID  = "HOOKBRIDGE_SESSION_ID"
	EnvViewer     = "HOOKBRIDGE_VIEWER"

	// Environment variables exported to hook processes
	EnvHookPluginRoot = "HOOKBRIDGE_PLUGIN_ROOT"

	// Command template tokens
	FilesPlaceholder      = "{files}"
	PluginRootPlaceholder = "${PLUGIN_ROOT}"
)

// Default per-hook timeouts by stage, in milliseconds.
const (
	DefaultToolTimeoutMs     = 30_000
	DefaultTerminalTimeoutMs = 120_000
	DirTestTimeoutMs         = 5_000
)

// Canonical tool names. Host adapters normalize their native tool names
// onto this set before matching.
const (
	ToolBash      = "Bash"
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
	ToolWrite     = "Write"
	ToolRead      = "Read"
	ToolGlob      = "Glob"
	ToolGrep      = "Grep"
	ToolWebFetch  = "WebFetch"
)

// ProjectSettingsPath returns the project-scope settings file path.
func ProjectSettingsPath(projectDir string) string {
	return filepath.Join(projectDir, ClaudeDir, SettingsFileName)
}

// ProjectPluginsDir returns the project-scope plugin directory.
func ProjectPluginsDir(projectDir string) string {
	return filepath.Join(projectDir, ClaudeDir, PluginsSubDir)
}

// SessionLogPath returns the session event log path for a project.
func SessionLogPath(projectDir, sessionID string) string {
	return filepath.Join(projectDir, ClaudeDir, SessionsSubDir, sessionID+".jsonl")
}
