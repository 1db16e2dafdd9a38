package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/internal/launcher"
)

func TestCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"explicit code", exitWithCode(ExitValidationFailed, "boom"), ExitValidationFailed},
		{"wrapped explicit code", fmt.Errorf("context: %w", exitWithCode(ExitUsage, "bad args")), ExitUsage},
		{"config not found", &config.NotFoundError{SearchPaths: []string{"a"}}, ExitConfigNotFound},
		{"parse error", &config.ParseError{Path: "x", Err: errors.New("eof")}, ExitConfigInvalid},
		{"invalid structure", &config.InvalidError{Path: "x", Problems: []string{"p"}}, ExitConfigInvalid},
		{"command not found", &launcher.NotFoundError{Name: "nope"}, ExitCommandNotFound},
		{"plain error", errors.New("something"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeForError(tt.err); got != tt.want {
				t.Errorf("codeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUsageArgsExitCode(t *testing.T) {
	check := usageArgs(cobra.ExactArgs(2))

	err := check(&cobra.Command{}, []string{"openai"})
	if err == nil {
		t.Fatal("one argument should fail an ExactArgs(2) validator")
	}
	if codeForError(err) != ExitUsage {
		t.Errorf("code = %d, want %d for an argument-count failure", codeForError(err), ExitUsage)
	}

	if err := check(&cobra.Command{}, []string{"openai", "gpt-4"}); err != nil {
		t.Errorf("valid arguments rejected: %v", err)
	}
}

func TestExitErrorQuietPropagation(t *testing.T) {
	err := &exitError{code: 42, quiet: true}
	if codeForError(err) != 42 {
		t.Errorf("code = %d", codeForError(err))
	}
	if err.Error() != "" {
		t.Errorf("quiet error message = %q", err.Error())
	}
}
