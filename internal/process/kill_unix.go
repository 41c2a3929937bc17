//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU children down with the browser.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort: the browser may already be gone.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
