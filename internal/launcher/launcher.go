// Package launcher spawns the downstream executable with the resolved
// environment, inheriting standard streams and forwarding termination
// signals so the child can shut down on its own terms.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	log "github.com/sirupsen/logrus"
)

// NotFoundError means the downstream executable is not on PATH. It gets its
// own variant because the remedy (check installation/PATH) differs from
// other launch failures.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("executable '%s' not found in PATH", e.Name)
}

// Run executes argv with the given environment and blocks until the child
// exits. It returns the child's exit code; when the child dies from a
// signal the code is 128+signal. Interrupt/terminate signals received by
// the parent are forwarded to the child rather than handled here.
func Run(argv []string, env []string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("no command given")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return 0, &NotFoundError{Name: argv[0]}
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start '%s': %w", argv[0], err)
	}
	log.Debugf("launched %s (pid %d)", path, cmd.Process.Pid)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, forwardedSignals()...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				// The child decides what the signal means; we just relay it.
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	if waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitCode(exitErr.ProcessState), nil
	}
	return 0, fmt.Errorf("failed to run '%s': %w", argv[0], waitErr)
}
