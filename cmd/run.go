package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/internal/envutil"
	"aiswitch/internal/launcher"
	"aiswitch/internal/resolver"
)

func init() {
	rootCmd.AddCommand(runCmd)
	// Flags after the command name belong to the child process.
	runCmd.Flags().SetInterspersed(false)
}

var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Run a command with the resolved environment",
	Long: `Run a downstream command with the environment triple set.

If LLM_API_KEY / LLM_BASE_URL / LLM_MODEL are already exported (via
'aiswitch use'), they are validated and passed through. Otherwise the default
configuration is resolved fresh from the config file.

The command inherits standard streams; interrupt and terminate signals are
forwarded to it, and its exit code becomes aiswitch's exit code.`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		triple, err := runTriple()
		if err != nil {
			return err
		}

		code, err := launcher.Run(args, triple.Environ(os.Environ()))
		if err != nil {
			return err
		}
		if code != 0 {
			return &exitError{code: code, quiet: true}
		}
		return nil
	},
}

// runTriple picks the environment triple for run: the exported one when
// present and valid, else the resolved default configuration.
func runTriple() (envutil.Triple, error) {
	fromEnv := envutil.Read()
	if fromEnv != (envutil.Triple{}) {
		report := envutil.Validate(fromEnv)
		if !report.OK() {
			for _, e := range report.Errors {
				fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+e))
			}
			return envutil.Triple{}, exitWithCode(ExitEnvironmentError,
				"exported environment is incomplete; re-activate with 'aiswitch use <name>'")
		}
		for _, w := range report.Warnings {
			fmt.Fprintln(os.Stderr, warnStyle.Render("⚠ "+w))
		}
		log.Debug("using environment triple from process environment")
		return fromEnv, nil
	}

	lr, err := config.Load()
	if err != nil {
		return envutil.Triple{}, err
	}
	res, err := resolver.New(nil).ResolveDefault(lr.File)
	if err != nil {
		return envutil.Triple{}, err
	}
	fmt.Fprintln(os.Stderr, subtleStyle.Render(fmt.Sprintf("using default configuration: %s", res.Name)))
	return res.Triple, nil
}
