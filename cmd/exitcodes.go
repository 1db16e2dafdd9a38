package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/internal/launcher"
)

// Exit codes. Small positive integers so scripts can branch on the reason.
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitUsage            = 2
	ExitConfigNotFound   = 3
	ExitConfigInvalid    = 4
	ExitValidationFailed = 5
	ExitEnvironmentError = 6
	ExitCommandNotFound  = 127
	ExitInterrupted      = 130
)

// exitError carries an explicit exit code through cobra's RunE plumbing.
// Quiet suppresses the error line, for cases like propagating a child
// process's exit code where the child already reported itself.
type exitError struct {
	code  int
	msg   string
	quiet bool
}

func (e *exitError) Error() string { return e.msg }

func exitWithCode(code int, msg string) *exitError {
	return &exitError{code: code, msg: msg}
}

// usageArgs wraps a cobra positional-args validator so its failures exit
// with the bad-usage code instead of the general error code.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return exitWithCode(ExitUsage, err.Error())
		}
		return nil
	}
}

// codeForError maps an error returned from a command to its exit code.
func codeForError(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		return ExitConfigNotFound
	}
	var pe *config.ParseError
	var ie *config.InvalidError
	if errors.As(err, &pe) || errors.As(err, &ie) {
		return ExitConfigInvalid
	}
	var cnf *launcher.NotFoundError
	if errors.As(err, &cnf) {
		return ExitCommandNotFound
	}
	return ExitGeneralError
}
