//go:build !unix

package harness

import "os/exec"

// startProcessGroup keeps the default context kill of the direct child.
func startProcessGroup(*exec.Cmd) {}
