package resolver

import (
	"fmt"
	"strings"
)

// The resolver reports failures as a closed set of tagged error variants so
// the command layer can render consistent "not found, available: ..."
// messaging and map each variant to an exit code. Nothing here is wrapped
// from lower layers; every variant carries its own structured fields.

// ConfigNotFoundError means no configuration entry has the requested name.
type ConfigNotFoundError struct {
	Name      string
	Available []string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("configuration '%s' not found%s", e.Name, renderAvailable(e.Available))
}

// ProviderNotFoundError means neither the config file nor the built-in table
// knows the requested provider.
type ProviderNotFoundError struct {
	Name      string
	Available []string
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("provider '%s' not found%s", e.Name, renderAvailable(e.Available))
}

// ModelUnsupportedError means the provider was found but does not list the
// requested model.
type ModelUnsupportedError struct {
	Provider  string
	Model     string
	Available []string
}

func (e *ModelUnsupportedError) Error() string {
	return fmt.Sprintf("model '%s' is not supported by provider '%s'%s", e.Model, e.Provider, renderAvailable(e.Available))
}

// CredentialMissingError means a built-in provider matched but no API key
// could be read from the environment.
type CredentialMissingError struct {
	Provider string
	Variable string
}

func (e *CredentialMissingError) Error() string {
	return fmt.Sprintf("no API key for built-in provider '%s': set %s or %s", e.Provider, e.Variable, genericCredentialVar)
}

// NoDefaultError means resolveDefault was called with no default pointer set.
type NoDefaultError struct{}

func (e *NoDefaultError) Error() string {
	return "no default configuration set (use 'aiswitch set-default <name>')"
}

func renderAvailable(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return ", available: " + strings.Join(names, ", ")
}
