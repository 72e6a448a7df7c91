//go:build !unix

package harness

import "os"

func signalOf(*os.ProcessState) (int, bool) {
	return 0, false
}
