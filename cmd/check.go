package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/internal/validation"
)

var checkTestAPI bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkTestAPI, "test-api", false, "Also probe the provider's /models endpoint")
}

var checkCmd = &cobra.Command{
	Use:   "chk [name]",
	Short: "Validate configurations",
	Long: `Check configuration entries for consistency: the provider must exist
(in the config file or the built-in table), the model must be in the
provider's list, and credentials/URLs must be present.

With no name every entry is checked. The command succeeds only when every
checked entry has zero errors and zero warnings.

With --test-api each statically valid entry additionally gets one bounded
GET against {base URL}/models to confirm the endpoint answers and lists the
configured model. The probe is best-effort and never retried.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		lr, err := config.Load()
		if err != nil {
			return err
		}

		validator := validation.New(nil)
		var tester *validation.APITester
		if checkTestAPI {
			tester = validation.NewAPITester()
		}

		names := lr.File.EntryNames()
		if len(args) == 1 {
			names = []string{args[0]}
		}
		if len(names) == 0 {
			fmt.Println("No configurations defined in " + lr.Path)
			return nil
		}

		// Sequential on purpose: each probe runs to completion before the
		// next entry is checked.
		failed := 0
		for _, name := range names {
			res := validator.ValidateEntryWithConnectivity(lr.File, name, tester)
			printCheckResult(res)
			if !res.Clean() {
				failed++
			}
		}

		if failed > 0 {
			return exitWithCode(ExitValidationFailed, fmt.Sprintf("%d of %d configuration(s) failed validation", failed, len(names)))
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %d configuration(s) valid", len(names))))
		return nil
	},
}

func printCheckResult(res *validation.Result) {
	header := res.Name
	if res.Provider != nil {
		header = fmt.Sprintf("%s (%s / %s)", res.Name, res.Provider.Name, res.Model)
	}
	switch {
	case len(res.Errors) > 0:
		fmt.Println(errorStyle.Render("✗ " + header))
	case len(res.Warnings) > 0:
		fmt.Println(warnStyle.Render("⚠ " + header))
	default:
		fmt.Println(successStyle.Render("✓ " + header))
	}
	for _, e := range res.Errors {
		fmt.Println("    error: " + e)
	}
	for _, w := range res.Warnings {
		fmt.Println("    warning: " + w)
	}
	if res.Provider != nil && verbose {
		fmt.Printf("    provider: %s, base URL %s, %d model(s)\n", res.Provider.Name, res.Provider.BaseURL, res.Provider.ModelCount)
	}
}
