//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills the process tree rooted at pid using taskkill.
// /F = force kill, /T = terminate child processes. Non-positive pids are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
