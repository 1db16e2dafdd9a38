package providers

import (
	"os"
	"strings"
)

// GenericCredentialVar is consulted when no provider-specific credential
// variable is set.
const GenericCredentialVar = "LLM_API_KEY"

// CredentialSource reads API keys for built-in providers from the process
// environment. It is an interface so tests can substitute a fixed map.
type CredentialSource interface {
	// Credential returns the API key for the given provider name, and the
	// variable it was read from. ok is false when neither the
	// provider-specific variable nor the generic fallback is set.
	Credential(provider string) (key, variable string, ok bool)
}

// EnvCredentialSource reads credentials from os.Getenv.
type EnvCredentialSource struct{}

// CredentialVar returns the provider-specific environment variable name,
// e.g. "openai" -> "OPENAI_API_KEY".
func CredentialVar(provider string) string {
	name := strings.ToUpper(strings.ReplaceAll(provider, "-", "_"))
	return name + "_API_KEY"
}

func (EnvCredentialSource) Credential(provider string) (string, string, bool) {
	specific := CredentialVar(provider)
	if v := os.Getenv(specific); v != "" {
		return v, specific, true
	}
	if v := os.Getenv(GenericCredentialVar); v != "" {
		return v, GenericCredentialVar, true
	}
	return "", specific, false
}

// StaticCredentialSource serves credentials from a fixed map, for tests.
type StaticCredentialSource map[string]string

func (s StaticCredentialSource) Credential(provider string) (string, string, bool) {
	specific := CredentialVar(provider)
	if v, ok := s[specific]; ok && v != "" {
		return v, specific, true
	}
	if v, ok := s[GenericCredentialVar]; ok && v != "" {
		return v, GenericCredentialVar, true
	}
	return "", specific, false
}
