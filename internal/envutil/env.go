// Package envutil owns the environment-variable triple handed to downstream
// tools. The engines pass Triple values around explicitly; actual process
// environment is touched only when printing export lines or building a child
// process environment.
package envutil

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Environment variable names of the triple, plus the active-entry marker.
const (
	EnvAPIKey  = "LLM_API_KEY"
	EnvBaseURL = "LLM_BASE_URL"
	EnvModel   = "LLM_MODEL"
	EnvActive  = "AISWITCH_ACTIVE"
)

// Triple is the resolved set of variables for one configuration.
type Triple struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ExportLines renders shell commands that clear the previous triple and
// export the new one, suitable for eval "$(aiswitch use <name>)".
func ExportLines(t Triple, active string) string {
	var b strings.Builder
	for _, v := range []string{EnvAPIKey, EnvBaseURL, EnvModel, EnvActive} {
		fmt.Fprintf(&b, "unset %s\n", v)
	}
	if t.APIKey != "" {
		fmt.Fprintf(&b, "export %s=%q\n", EnvAPIKey, t.APIKey)
	}
	if t.BaseURL != "" {
		fmt.Fprintf(&b, "export %s=%q\n", EnvBaseURL, t.BaseURL)
	}
	if t.Model != "" {
		fmt.Fprintf(&b, "export %s=%q\n", EnvModel, t.Model)
	}
	if active != "" {
		fmt.Fprintf(&b, "export %s=%q\n", EnvActive, active)
	}
	return b.String()
}

// Environ returns base with the triple variables replaced. base is usually
// os.Environ(); it is not modified.
func (t Triple) Environ(base []string) []string {
	out := make([]string, 0, len(base)+3)
	for _, kv := range base {
		switch key, _, _ := strings.Cut(kv, "="); key {
		case EnvAPIKey, EnvBaseURL, EnvModel:
			// replaced below
		default:
			out = append(out, kv)
		}
	}
	out = append(out,
		EnvAPIKey+"="+t.APIKey,
		EnvBaseURL+"="+t.BaseURL,
		EnvModel+"="+t.Model,
	)
	return out
}

// Read retrieves the triple from the current process environment.
func Read() Triple {
	return Triple{
		APIKey:  os.Getenv(EnvAPIKey),
		BaseURL: os.Getenv(EnvBaseURL),
		Model:   os.Getenv(EnvModel),
	}
}

// Report holds the outcome of environment-level validation.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the triple is usable (warnings are advisory here).
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks the triple for presence, URL well-formedness, and common
// misconfigurations. This is the generic environment-level check used by
// `run`, distinct from provider-specific validation.
func Validate(t Triple) Report {
	var r Report

	if t.APIKey == "" {
		r.Errors = append(r.Errors, fmt.Sprintf("%s is not set", EnvAPIKey))
	} else if len(t.APIKey) < 16 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s looks unusually short", EnvAPIKey))
	}

	if t.BaseURL == "" {
		r.Errors = append(r.Errors, fmt.Sprintf("%s is not set", EnvBaseURL))
	} else {
		parsed, err := url.ParseRequestURI(t.BaseURL)
		switch {
		case err != nil || parsed.Host == "":
			r.Errors = append(r.Errors, fmt.Sprintf("%s is not a valid URL: %s", EnvBaseURL, t.BaseURL))
		case parsed.Scheme != "http" && parsed.Scheme != "https":
			r.Errors = append(r.Errors, fmt.Sprintf("%s must use http or https: %s", EnvBaseURL, t.BaseURL))
		case parsed.Scheme != "https":
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s does not use HTTPS", EnvBaseURL))
		}
	}

	if t.Model == "" {
		r.Errors = append(r.Errors, fmt.Sprintf("%s is not set", EnvModel))
	}

	return r
}
