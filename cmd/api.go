package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/config/models"
	"aiswitch/internal/resolver"
)

func init() {
	rootCmd.AddCommand(apiCmd)
}

var apiCmd = &cobra.Command{
	Use:   "api <provider> <model>",
	Short: "Activate a provider/model pair directly",
	Long: `Activate a provider+model pair without a named configuration entry.

Configured providers are consulted first, then the built-in provider table.
For built-in providers the API key is read from <PROVIDER>_API_KEY, falling
back to LLM_API_KEY. A config file is not required:

  eval "$(aiswitch api openai gpt-4o)"`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *models.File
		lr, err := config.Load()
		switch {
		case err == nil:
			cfg = lr.File
		default:
			var nf *config.NotFoundError
			if !errors.As(err, &nf) {
				return err
			}
			// No config file: built-ins only.
		}

		res, err := resolver.New(nil).ResolveByProviderModel(cfg, args[0], args[1])
		if err != nil {
			return err
		}

		emitActivation(res)
		fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Activated %s / %s (%s)", res.Provider, res.Model, res.Source)))
		return nil
	},
}
