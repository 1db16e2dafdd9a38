package providers

import (
	"sort"
	"strings"
	"testing"
)

func TestLookupCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		found bool
	}{
		{"openai", true},
		{"OpenAI", true},
		{"AZURE", true},
		{"Anthropic", true},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Lookup(tt.name)
			if ok != tt.found {
				t.Errorf("Lookup(%q) found = %v, want %v", tt.name, ok, tt.found)
			}
		})
	}
}

func TestCanonicalModel(t *testing.T) {
	b, ok := Lookup("openai")
	if !ok {
		t.Fatal("openai should be built-in")
	}

	canonical, ok := b.CanonicalModel("GPT-4")
	if !ok {
		t.Fatal("GPT-4 should match case-insensitively")
	}
	if canonical != "gpt-4" {
		t.Errorf("canonical casing = %q, want %q", canonical, "gpt-4")
	}

	if _, ok := b.CanonicalModel("gpt-99"); ok {
		t.Error("gpt-99 should not match")
	}
}

func TestNormalizeModelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gpt-3.5-turbo", "gpt-35-turbo"},
		{"GPT-4", "gpt-4"},
		{"llama3.1", "llama31"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := NormalizeModelName(tt.in); got != tt.want {
			t.Errorf("NormalizeModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandBaseURL(t *testing.T) {
	azure, _ := Lookup("azure")
	got := azure.ExpandBaseURL("GPT-3.5-Turbo")
	if !strings.HasSuffix(got, "/deployments/gpt-35-turbo") {
		t.Errorf("azure base URL = %q, want normalized model substituted", got)
	}

	openai, _ := Lookup("openai")
	if got := openai.ExpandBaseURL("gpt-4"); got != openai.BaseURL {
		t.Errorf("non-templated base URL changed: %q", got)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("expected built-in providers")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestCredentialVar(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "OPENAI_API_KEY"},
		{"deepseek", "DEEPSEEK_API_KEY"},
		{"my-proxy", "MY_PROXY_API_KEY"},
	}
	for _, tt := range tests {
		if got := CredentialVar(tt.provider); got != tt.want {
			t.Errorf("CredentialVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestStaticCredentialSource(t *testing.T) {
	src := StaticCredentialSource{
		"OPENAI_API_KEY": "sk-specific",
		"LLM_API_KEY":    "sk-generic",
	}

	key, variable, ok := src.Credential("openai")
	if !ok || key != "sk-specific" || variable != "OPENAI_API_KEY" {
		t.Errorf("Credential(openai) = %q via %q ok=%v, want provider-specific key", key, variable, ok)
	}

	key, variable, ok = src.Credential("mistral")
	if !ok || key != "sk-generic" || variable != "LLM_API_KEY" {
		t.Errorf("Credential(mistral) = %q via %q ok=%v, want generic fallback", key, variable, ok)
	}

	empty := StaticCredentialSource{}
	if _, _, ok := empty.Credential("openai"); ok {
		t.Error("empty source should report no credential")
	}
}

func TestEnvCredentialSource(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gk-123")
	t.Setenv("LLM_API_KEY", "")

	key, variable, ok := EnvCredentialSource{}.Credential("groq")
	if !ok || key != "gk-123" || variable != "GROQ_API_KEY" {
		t.Errorf("Credential(groq) = %q via %q ok=%v", key, variable, ok)
	}

	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("LLM_API_KEY", "generic")
	key, variable, ok = EnvCredentialSource{}.Credential("groq")
	if !ok || key != "generic" || variable != "LLM_API_KEY" {
		t.Errorf("generic fallback = %q via %q ok=%v", key, variable, ok)
	}
}
