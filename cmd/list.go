package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aiswitch/config"
	"aiswitch/config/models"
	"aiswitch/internal/providers"
	"aiswitch/internal/utils"
)

var (
	listAll  bool
	listTree bool
	listFull bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include built-in providers")
	listCmd.Flags().BoolVar(&listTree, "tree", false, "Group configurations by their group field")
	listCmd.Flags().BoolVarP(&listFull, "full", "f", false, "Show unmasked API keys")
}

var listCmd = &cobra.Command{
	Use:   "list [config|provider] [name]",
	Short: "List configurations or providers",
	Long: `List configuration entries or providers.

  aiswitch list                      # all configuration entries
  aiswitch list config work-openai   # one entry in detail
  aiswitch list provider             # configured providers
  aiswitch list provider --all       # include built-in providers
  aiswitch list provider openai      # one provider in detail`,
	Args: usageArgs(cobra.MaximumNArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := "config"
		name := ""
		if len(args) > 0 {
			kind = args[0]
		}
		if len(args) > 1 {
			name = args[1]
		}

		switch kind {
		case "config":
			return listConfigs(name)
		case "provider":
			return listProviders(name)
		default:
			return exitWithCode(ExitUsage, fmt.Sprintf("unknown list target '%s' (expected 'config' or 'provider')", kind))
		}
	},
}

func listConfigs(name string) error {
	lr, err := config.Load()
	if err != nil {
		return err
	}

	if name != "" {
		entry := lr.File.FindEntry(name)
		if entry == nil {
			return fmt.Errorf("configuration '%s' not found, available: %s", name, strings.Join(lr.File.EntryNames(), ", "))
		}
		printEntryDetail(lr, entry)
		return nil
	}

	if len(lr.File.Configs) == 0 {
		fmt.Println("No configurations defined in " + lr.Path)
		return nil
	}

	fmt.Println("Available configurations:")
	if listTree {
		printEntryTree(lr)
	} else {
		for _, e := range lr.File.Configs {
			fmt.Println(formatEntryLine(lr, e))
		}
	}
	if lr.File.Default != "" {
		fmt.Println("\n* indicates the default configuration")
	}
	return nil
}

func formatEntryLine(lr *config.LoadResult, e models.Entry) string {
	marker := " "
	if e.Name == lr.File.Default {
		marker = "*"
	}
	return fmt.Sprintf("%s %s: %s / %s", marker, e.Name, e.Provider, e.Model)
}

// printEntryTree groups entries by their group field, ungrouped last.
func printEntryTree(lr *config.LoadResult) {
	groups := []string{}
	byGroup := map[string][]models.Entry{}
	for _, e := range lr.File.Configs {
		if _, seen := byGroup[e.Group]; !seen {
			groups = append(groups, e.Group)
		}
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}
	for _, g := range groups {
		label := g
		if label == "" {
			label = "(ungrouped)"
		}
		fmt.Println(subtleStyle.Render(label))
		for _, e := range byGroup[g] {
			fmt.Println(" " + formatEntryLine(lr, e))
		}
	}
}

func printEntryDetail(lr *config.LoadResult, entry *models.Entry) {
	fmt.Printf("Name:     %s\n", entry.Name)
	fmt.Printf("Provider: %s\n", entry.Provider)
	fmt.Printf("Model:    %s\n", entry.Model)
	if entry.Group != "" {
		fmt.Printf("Group:    %s\n", entry.Group)
	}
	if entry.Name == lr.File.Default {
		fmt.Println("Default:  yes")
	}
	if p := lr.File.FindProvider(entry.Provider); p != nil {
		fmt.Printf("Base URL: %s\n", p.BaseURL)
	} else if b, ok := providers.Lookup(entry.Provider); ok {
		fmt.Printf("Base URL: %s (built-in)\n", b.ExpandBaseURL(entry.Model))
	}
}

func listProviders(name string) error {
	// Built-in providers can be listed without a config file.
	cfg := &models.File{}
	path := ""
	lr, err := config.Load()
	if err == nil {
		cfg = lr.File
		path = lr.Path
	} else {
		var nf *config.NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
	}

	if name != "" {
		return printProviderDetail(cfg, name)
	}

	if len(cfg.Providers) == 0 && !listAll {
		if path == "" {
			fmt.Println("No config file found (use --all to see built-in providers)")
		} else {
			fmt.Println("No providers defined in " + path + " (use --all to see built-ins)")
		}
		return nil
	}

	if len(cfg.Providers) > 0 {
		fmt.Println("Configured providers:")
		for _, p := range cfg.Providers {
			key := utils.MaskAPIKey(p.APIKey)
			if listFull {
				key = p.APIKey
			}
			fmt.Printf("  %s: key %s, URL %s, %d model(s)\n", p.Name, key, p.BaseURL, len(p.Models))
		}
	}
	if listAll {
		fmt.Println("Built-in providers:")
		for _, n := range providers.Names() {
			b, _ := providers.Lookup(n)
			fmt.Printf("  %s: URL %s, %d model(s), key via %s\n", b.Name, b.BaseURL, len(b.Models), providers.CredentialVar(b.Name))
		}
	}
	return nil
}

func printProviderDetail(cfg *models.File, name string) error {
	if p := cfg.FindProvider(name); p != nil {
		key := utils.MaskAPIKey(p.APIKey)
		if listFull {
			key = p.APIKey
		}
		fmt.Printf("Name:     %s\n", p.Name)
		fmt.Printf("API key:  %s\n", key)
		fmt.Printf("Base URL: %s\n", p.BaseURL)
		fmt.Printf("Models:   %s\n", strings.Join(p.Models, ", "))
		return nil
	}
	if b, ok := providers.Lookup(name); ok {
		fmt.Printf("Name:     %s (built-in)\n", b.Name)
		fmt.Printf("API key:  via %s or %s\n", providers.CredentialVar(b.Name), providers.GenericCredentialVar)
		fmt.Printf("Base URL: %s\n", b.BaseURL)
		fmt.Printf("Models:   %s\n", strings.Join(b.Models, ", "))
		return nil
	}
	available := append(cfg.ProviderNames(), providers.Names()...)
	return fmt.Errorf("provider '%s' not found, available: %s", name, strings.Join(available, ", "))
}
