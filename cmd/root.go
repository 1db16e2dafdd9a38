package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information, injected at build time via SetVersionInfo.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "aiswitch",
	Short: "Switch LLM provider configurations for downstream tools",
	Long: `aiswitch reads a YAML/JSON file of providers and named provider+model
configurations, resolves one of them to the LLM_API_KEY / LLM_BASE_URL /
LLM_MODEL environment variables, and launches downstream tools with those
variables set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostic output")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitWithCode(ExitUsage, err.Error())
	})
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`aiswitch {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if !(errors.As(err, &ee) && ee.quiet) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		}
		return codeForError(err)
	}
	return ExitSuccess
}
