package state

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"syscall"
)

// ProcessAlive reports whether pid refers to a live process. A reaped
// or zombie child counts as dead: the service is no longer running
// even if its entry lingers in the process table.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	if procState(pid) == 'Z' {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil || stderrors.Is(err, syscall.EPERM) {
		return true
	}
	return false
}

// procState reads the single-character state field from
// /proc/<pid>/stat, or 0 when it cannot be determined.
func procState(pid int) byte {
	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0
	}
	// The comm field is parenthesized and may itself contain spaces;
	// the state char follows the last ')'.
	i := bytes.LastIndexByte(b, ')')
	if i < 0 {
		return 0
	}
	fields := bytes.Fields(bytes.TrimSpace(b[i+1:]))
	if len(fields) == 0 || len(fields[0]) == 0 {
		return 0
	}
	return fields[0][0]
}
