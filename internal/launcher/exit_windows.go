//go:build windows
// +build windows

package launcher

import "os"

func forwardedSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

func exitCode(state *os.ProcessState) int {
	return state.ExitCode()
}
