package envutil

import (
	"strings"
	"testing"
)

func TestExportLines(t *testing.T) {
	out := ExportLines(Triple{
		APIKey:  "sk-1234567890abcdef",
		BaseURL: "https://api.example.com/v1",
		Model:   "gpt-4",
	}, "work-openai")

	// Old values are cleared before the new ones are exported.
	for _, v := range []string{EnvAPIKey, EnvBaseURL, EnvModel, EnvActive} {
		if !strings.Contains(out, "unset "+v+"\n") {
			t.Errorf("output missing unset for %s:\n%s", v, out)
		}
	}
	wantExports := []string{
		`export LLM_API_KEY="sk-1234567890abcdef"`,
		`export LLM_BASE_URL="https://api.example.com/v1"`,
		`export LLM_MODEL="gpt-4"`,
		`export AISWITCH_ACTIVE="work-openai"`,
	}
	for _, line := range wantExports {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}

	idxUnset := strings.Index(out, "unset "+EnvAPIKey)
	idxExport := strings.Index(out, "export "+EnvAPIKey)
	if idxUnset == -1 || idxExport == -1 || idxUnset > idxExport {
		t.Error("unset lines must precede export lines")
	}
}

func TestExportLinesOmitsEmptyValues(t *testing.T) {
	out := ExportLines(Triple{Model: "gpt-4"}, "")
	if strings.Contains(out, "export "+EnvAPIKey) {
		t.Errorf("empty API key should not be exported:\n%s", out)
	}
	if strings.Contains(out, "export "+EnvActive) {
		t.Errorf("empty active marker should not be exported:\n%s", out)
	}
	if !strings.Contains(out, "unset "+EnvAPIKey+"\n") {
		t.Error("unset lines are emitted regardless of values")
	}
}

func TestEnviron(t *testing.T) {
	base := []string{
		"PATH=/usr/bin",
		"LLM_API_KEY=old",
		"LLM_MODEL=old-model",
		"HOME=/home/u",
	}
	triple := Triple{APIKey: "new", BaseURL: "https://x/v1", Model: "m"}

	got := triple.Environ(base)

	count := map[string]int{}
	values := map[string]string{}
	for _, kv := range got {
		key, val, _ := strings.Cut(kv, "=")
		count[key]++
		values[key] = val
	}
	for _, key := range []string{EnvAPIKey, EnvBaseURL, EnvModel} {
		if count[key] != 1 {
			t.Errorf("%s appears %d times", key, count[key])
		}
	}
	if values[EnvAPIKey] != "new" || values[EnvBaseURL] != "https://x/v1" || values[EnvModel] != "m" {
		t.Errorf("triple values = %v", values)
	}
	if values["PATH"] != "/usr/bin" || values["HOME"] != "/home/u" {
		t.Errorf("unrelated variables altered: %v", got)
	}
	// base must stay untouched
	if base[1] != "LLM_API_KEY=old" {
		t.Error("base slice was modified")
	}
}

func TestRead(t *testing.T) {
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvBaseURL, "https://b/v1")
	t.Setenv(EnvModel, "m")

	got := Read()
	want := Triple{APIKey: "k", BaseURL: "https://b/v1", Model: "m"}
	if got != want {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		triple    Triple
		wantOK    bool
		wantWarns int
	}{
		{
			name:   "complete https triple",
			triple: Triple{APIKey: "sk-1234567890abcdef", BaseURL: "https://api.example.com/v1", Model: "m"},
			wantOK: true,
		},
		{
			name:   "missing everything",
			triple: Triple{},
			wantOK: false,
		},
		{
			name:      "short key warns",
			triple:    Triple{APIKey: "short", BaseURL: "https://api.example.com/v1", Model: "m"},
			wantOK:    true,
			wantWarns: 1,
		},
		{
			name:      "http warns but passes",
			triple:    Triple{APIKey: "sk-1234567890abcdef", BaseURL: "http://localhost:8080/v1", Model: "m"},
			wantOK:    true,
			wantWarns: 1,
		},
		{
			name:   "garbage URL fails",
			triple: Triple{APIKey: "sk-1234567890abcdef", BaseURL: "not a url", Model: "m"},
			wantOK: false,
		},
		{
			name:   "ftp scheme fails",
			triple: Triple{APIKey: "sk-1234567890abcdef", BaseURL: "ftp://files.example.com", Model: "m"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(tt.triple)
			if r.OK() != tt.wantOK {
				t.Errorf("OK() = %v, errors = %v", r.OK(), r.Errors)
			}
			if len(r.Warnings) != tt.wantWarns {
				t.Errorf("warnings = %v, want %d", r.Warnings, tt.wantWarns)
			}
		})
	}
}

func TestValidateMissingTripleErrorCount(t *testing.T) {
	r := Validate(Triple{})
	if len(r.Errors) != 3 {
		t.Errorf("errors = %v, want one per missing variable", r.Errors)
	}
}
