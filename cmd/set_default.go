package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aiswitch/config"
)

func init() {
	rootCmd.AddCommand(setDefaultCmd)
}

var setDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the default configuration",
	Long: `Set the configuration used when 'use' or 'run' is invoked without a name.

The config file is updated in place; for JSON files only the default field
is touched, preserving formatting and key order.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		lr, err := config.Load()
		if err != nil {
			return err
		}

		if err := config.SetDefault(lr, args[0]); err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Default configuration set to: %s", args[0])))
		fmt.Fprintln(os.Stderr, subtleStyle.Render("  "+lr.Path))
		return nil
	},
}
