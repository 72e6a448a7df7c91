//go:build unix

package harness

import (
	"os"
	"syscall"
)

// signalOf reports the signal that terminated the process, if any.
func signalOf(ps *os.ProcessState) (int, bool) {
	ws, ok := ps.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}
