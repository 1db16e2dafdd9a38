package providers

import (
	"sort"
	"strings"
)

// BuiltIn describes a provider definition shipped with aiswitch. It is used
// as a fallback when the config file does not define the provider itself.
// BaseURL may contain a {model} placeholder that is substituted with the
// normalized model name (Azure-style deployment URLs).
type BuiltIn struct {
	Name    string
	BaseURL string
	Models  []string
}

// HasModel reports whether model is in the built-in list. Matching is
// case-insensitive; use CanonicalModel to recover the stored casing.
func (b *BuiltIn) HasModel(model string) bool {
	_, ok := b.CanonicalModel(model)
	return ok
}

// CanonicalModel returns the stored casing of model, matched case-insensitively.
func (b *BuiltIn) CanonicalModel(model string) (string, bool) {
	for _, m := range b.Models {
		if strings.EqualFold(m, model) {
			return m, true
		}
	}
	return "", false
}

// ExpandBaseURL substitutes the {model} placeholder, if any, with the
// normalized form of the model name.
func (b *BuiltIn) ExpandBaseURL(model string) string {
	if !strings.Contains(b.BaseURL, "{model}") {
		return b.BaseURL
	}
	return strings.ReplaceAll(b.BaseURL, "{model}", NormalizeModelName(model))
}

// NormalizeModelName lowercases a model name and strips dots, matching the
// resource-name form expected in templated deployment URLs
// (gpt-3.5-turbo -> gpt-35-turbo).
func NormalizeModelName(model string) string {
	return strings.ReplaceAll(strings.ToLower(model), ".", "")
}

// builtins is the static, read-only table of well-known providers.
// Keys are lower case; Lookup normalizes before searching.
var builtins = map[string]*BuiltIn{
	"openai": {
		Name:    "openai",
		BaseURL: "https://api.openai.com/v1",
		Models:  []string{"gpt-4o", "gpt-4o-mini", "gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"},
	},
	"anthropic": {
		Name:    "anthropic",
		BaseURL: "https://api.anthropic.com/v1",
		Models:  []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022", "claude-3-opus-20240229", "claude-3-sonnet-20240229", "claude-3-haiku-20240307"},
	},
	"azure": {
		Name:    "azure",
		BaseURL: "https://models.inference.azure.com/deployments/{model}",
		Models:  []string{"gpt-4o", "gpt-4", "gpt-4-turbo", "gpt-35-turbo"},
	},
	"google": {
		Name:    "google",
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Models:  []string{"gemini-1.5-pro", "gemini-1.5-flash", "gemini-1.0-pro"},
	},
	"deepseek": {
		Name:    "deepseek",
		BaseURL: "https://api.deepseek.com/v1",
		Models:  []string{"deepseek-chat", "deepseek-coder", "deepseek-reasoner"},
	},
	"mistral": {
		Name:    "mistral",
		BaseURL: "https://api.mistral.ai/v1",
		Models:  []string{"mistral-large-latest", "mistral-small-latest", "open-mistral-7b"},
	},
	"groq": {
		Name:    "groq",
		BaseURL: "https://api.groq.com/openai/v1",
		Models:  []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
	},
	"ollama": {
		Name:    "ollama",
		BaseURL: "http://localhost:11434/v1",
		Models:  []string{"llama3.1", "mistral", "qwen2.5", "codellama"},
	},
}

// Lookup returns the built-in provider for name, matched case-insensitively.
func Lookup(name string) (*BuiltIn, bool) {
	b, ok := builtins[strings.ToLower(name)]
	return b, ok
}

// IsBuiltIn reports whether name is a recognized built-in provider.
func IsBuiltIn(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Names returns all built-in provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
