//go:build unix

package harness

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// startProcessGroup makes the child a process group leader and replaces the
// context kill with one that signals the whole group.
func startProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
