// Package validation judges whether configuration entries are usable. It
// produces per-entry results with fatal errors and advisory warnings.
//
// Two levels of strictness apply. A Result's IsValid field only reflects
// errors: an entry with warnings but no errors is still IsValid. The
// aggregate success reported to the command layer is stricter: it requires
// zero errors AND zero warnings. Both behaviors are load-bearing; tests
// assert on each.
package validation

import (
	"fmt"

	"aiswitch/config/models"
	"aiswitch/internal/providers"
)

// ProviderSummary describes the provider a result resolved against, for
// display. BaseURL falls back to the built-in default when the configured
// one is empty and the provider name is a known built-in.
type ProviderSummary struct {
	Name       string
	BaseURL    string
	ModelCount int
}

// Result is the validation outcome for a single configuration name.
type Result struct {
	Name     string
	IsValid  bool
	Errors   []string
	Warnings []string
	Provider *ProviderSummary
	Model    string
}

// Clean reports whether the result has neither errors nor warnings. This is
// the condition aggregate success is built from.
func (r *Result) Clean() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// Validator is the validation engine.
type Validator struct {
	creds providers.CredentialSource
}

// New creates a Validator. A nil credential source reads the process
// environment.
func New(creds providers.CredentialSource) *Validator {
	if creds == nil {
		creds = providers.EnvCredentialSource{}
	}
	return &Validator{creds: creds}
}

// ValidateEntry checks a single configuration entry by name.
func (v *Validator) ValidateEntry(cfg *models.File, name string) *Result {
	res := &Result{Name: name, IsValid: true}

	entry := cfg.FindEntry(name)
	if entry == nil {
		res.IsValid = false
		res.Errors = append(res.Errors, fmt.Sprintf("configuration '%s' not found", name))
		return res
	}
	res.Model = entry.Model

	provider := cfg.FindProvider(entry.Provider)
	if provider == nil {
		builtin, ok := providers.Lookup(entry.Provider)
		if !ok {
			// Unknown everywhere: single error, no provider/model info,
			// and no further checks.
			res.IsValid = false
			res.Errors = append(res.Errors, fmt.Sprintf("provider '%s' not found", entry.Provider))
			return res
		}
		v.validateAgainstBuiltin(res, entry, builtin)
		res.IsValid = len(res.Errors) == 0
		return res
	}

	v.validateConfigured(res, entry, provider)
	res.IsValid = len(res.Errors) == 0
	return res
}

// validateAgainstBuiltin handles entries whose provider is absent from the
// config file but present in the built-in table.
func (v *Validator) validateAgainstBuiltin(res *Result, entry *models.Entry, builtin *providers.BuiltIn) {
	res.Provider = &ProviderSummary{
		Name:       builtin.Name,
		BaseURL:    builtin.BaseURL,
		ModelCount: len(builtin.Models),
	}

	if !builtin.HasModel(entry.Model) {
		res.Errors = append(res.Errors, fmt.Sprintf("model '%s' not found in built-in provider '%s'", entry.Model, builtin.Name))
	}

	// Built-in providers carry no stored key; the user has to supply one
	// when the configuration is actually used.
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"API key for built-in provider '%s' must be set via %s (or %s) at runtime",
		builtin.Name, providers.CredentialVar(builtin.Name), providers.GenericCredentialVar))
}

// validateConfigured handles entries whose provider is defined in the
// config file.
func (v *Validator) validateConfigured(res *Result, entry *models.Entry, provider *models.Provider) {
	builtin, isBuiltin := providers.Lookup(provider.Name)

	summary := &ProviderSummary{Name: provider.Name, BaseURL: provider.BaseURL, ModelCount: len(provider.Models)}
	if summary.BaseURL == "" && isBuiltin {
		// display fallback only; the stored value stays empty
		summary.BaseURL = builtin.BaseURL
	}
	if provider.Models == nil && isBuiltin {
		summary.ModelCount = len(builtin.Models)
	}
	res.Provider = summary

	switch {
	case provider.Models != nil:
		// An explicitly written list is authoritative, even when empty.
		if !provider.HasModel(entry.Model) {
			res.Errors = append(res.Errors, fmt.Sprintf("model '%s' not found in provider '%s'", entry.Model, provider.Name))
		}
	case isBuiltin:
		if !builtin.HasModel(entry.Model) {
			res.Errors = append(res.Errors, fmt.Sprintf("model '%s' not found in built-in provider '%s'", entry.Model, provider.Name))
		}
	default:
		res.Errors = append(res.Errors, fmt.Sprintf("provider '%s' has no models defined", provider.Name))
	}

	if provider.APIKey == "" {
		if isBuiltin {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"provider '%s' has no API key configured; set one in the config file or via %s",
				provider.Name, providers.CredentialVar(provider.Name)))
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("provider '%s' has no API key configured", provider.Name))
		}
	}

	if provider.BaseURL == "" && !isBuiltin {
		res.Warnings = append(res.Warnings, fmt.Sprintf("provider '%s' has no base URL configured", provider.Name))
	}

	if provider.Models != nil && len(provider.Models) == 0 && !isBuiltin {
		res.Warnings = append(res.Warnings, fmt.Sprintf("provider '%s' has no models configured", provider.Name))
	}
}

// ValidateAll validates every configuration entry in file order. success is
// true only when every result is Clean: warnings alone flip it to false.
func (v *Validator) ValidateAll(cfg *models.File) (results []*Result, success bool) {
	success = true
	for _, name := range cfg.EntryNames() {
		res := v.ValidateEntry(cfg, name)
		if !res.Clean() {
			success = false
		}
		results = append(results, res)
	}
	return results, success
}

// ValidateEntryWithConnectivity runs static validation and, when that passes
// without errors and a tester is supplied, a single best-effort API probe.
// A failed probe converts the result to invalid; it is never retried.
func (v *Validator) ValidateEntryWithConnectivity(cfg *models.File, name string, tester *APITester) *Result {
	res := v.ValidateEntry(cfg, name)
	if len(res.Errors) > 0 || tester == nil {
		return res
	}

	baseURL, apiKey := v.endpointFor(cfg, name)
	if baseURL == "" {
		return res
	}
	if err := tester.CheckModels(baseURL, apiKey, res.Model); err != nil {
		res.Errors = append(res.Errors, err.Error())
		res.IsValid = false
	}
	return res
}

// endpointFor computes the base URL and API key an entry would actually use,
// mirroring resolution precedence: configured provider values first,
// built-in defaults and environment credentials as fallback.
func (v *Validator) endpointFor(cfg *models.File, name string) (baseURL, apiKey string) {
	entry := cfg.FindEntry(name)
	if entry == nil {
		return "", ""
	}
	if provider := cfg.FindProvider(entry.Provider); provider != nil {
		baseURL, apiKey = provider.BaseURL, provider.APIKey
		if builtin, ok := providers.Lookup(provider.Name); ok {
			if baseURL == "" {
				baseURL = builtin.ExpandBaseURL(entry.Model)
			}
			if apiKey == "" {
				apiKey, _, _ = v.creds.Credential(provider.Name)
			}
		}
		return baseURL, apiKey
	}
	if builtin, ok := providers.Lookup(entry.Provider); ok {
		key, _, _ := v.creds.Credential(builtin.Name)
		return builtin.ExpandBaseURL(entry.Model), key
	}
	return "", ""
}
