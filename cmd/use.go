package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/internal/envutil"
	"aiswitch/internal/resolver"
	"aiswitch/internal/tui"
)

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.Flags().StringP("model", "m", "", "Activate with a different model from the provider's list")
	useCmd.Flags().Bool("no-prompt", false, "Disable the interactive picker when no name is given")
}

var useCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Activate a named configuration",
	Long: `Activate a named configuration and output export commands for the
environment variables.

To make the variables effective in the current shell:
  eval "$(aiswitch use <name>)"

With no name, the default configuration is activated; if no default is set
and the terminal is interactive, a picker is shown.

Using -m/--model activates the configuration with a different model from the
same provider's list:
  eval "$(aiswitch use work-openai -m gpt-4o-mini)"`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		lr, err := config.Load()
		if err != nil {
			return err
		}

		noPrompt, _ := cmd.Flags().GetBool("no-prompt")
		name, err := pickName(lr, args, noPrompt)
		if err != nil {
			return err
		}

		// The --model override only lives in memory for this invocation;
		// the file keeps the entry's original model.
		if modelFlag, _ := cmd.Flags().GetString("model"); modelFlag != "" {
			entry := lr.File.FindEntry(name)
			if entry == nil {
				return &resolver.ConfigNotFoundError{Name: name, Available: lr.File.EntryNames()}
			}
			entry.Model = modelFlag
		}

		res, err := resolver.New(nil).ResolveByName(lr.File, name)
		if err != nil {
			return err
		}

		emitActivation(res)
		fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Activated configuration: %s (%s / %s)", res.Name, res.Provider, res.Model)))
		return nil
	},
}

// pickName decides which configuration to activate: explicit argument,
// default pointer, or interactive picker.
func pickName(lr *config.LoadResult, args []string, noPrompt bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if lr.File.Default != "" {
		return lr.File.Default, nil
	}
	if len(lr.File.Configs) == 0 {
		return "", exitWithCode(ExitUsage, "no configurations defined in "+lr.Path)
	}
	if !noPrompt && tui.IsInteractive() {
		name, err := tui.PickEntry(lr.File.Configs, "")
		if err != nil {
			return "", fmt.Errorf("configuration selection failed: %w", err)
		}
		if name == "" {
			return "", exitWithCode(ExitUsage, "no configuration selected")
		}
		return name, nil
	}
	return "", exitWithCode(ExitUsage, "no configuration specified and no default set (try 'aiswitch set-default <name>')")
}

// emitActivation prints the eval-able export lines on stdout and refreshes
// the activation script. Script failures are advisory: the export lines are
// the contract.
func emitActivation(res *resolver.Result) {
	script := envutil.ExportLines(res.Triple, res.Name)
	fmt.Print(script)

	if _, err := config.WriteActiveScript(script); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("⚠ Failed to write activation script: "+err.Error()))
	}
}
