package bridge

import (
	"log"
	"os/exec"
	"syscall"
)

// spawnViewer starts the companion visualization process, if configured, as a
// detached best-effort side task. Failure to start it never affects decision
// computation; errors are logged and swallowed.
func spawnViewer(command, projectDir string, diag *log.Logger) {
	if command == "" {
		return
	}
	cmd := exec.Command("bash", "-c", command)
	cmd.Dir = projectDir
	// New session so the viewer outlives this per-event process.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		diag.Printf("viewer: start failed: %v", err)
		return
	}
	if err := cmd.Process.Release(); err != nil {
		diag.Printf("viewer: release failed: %v", err)
	}
}
