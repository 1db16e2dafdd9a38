// Package resolver turns a configuration name, or a provider+model pair,
// into a concrete environment-variable triple. Provider lookup follows a
// fixed precedence: providers from the config file first, the built-in
// table second. The precedence is enforced by a single ordered lookup chain
// rather than per-call-site branching.
package resolver

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"aiswitch/config/models"
	"aiswitch/internal/envutil"
	"aiswitch/internal/providers"
)

const genericCredentialVar = providers.GenericCredentialVar

// Source tags which lookup path produced a result.
type Source string

const (
	// SourceConfig: entry resolved by name against the config file.
	SourceConfig Source = "config"
	// SourceProvider: provider+model matched a configured provider.
	SourceProvider Source = "provider"
	// SourceBuiltin: provider+model matched the built-in table.
	SourceBuiltin Source = "builtin"
)

// Result is the outcome of a successful resolution.
type Result struct {
	Name     string // entry name, empty for direct provider/model activation
	Provider string
	Model    string // canonical (stored) casing
	Source   Source
	Triple   envutil.Triple
}

// Resolver is the resolution engine. The zero value is not usable; call New.
type Resolver struct {
	creds providers.CredentialSource
}

// New creates a Resolver. A nil credential source falls back to reading the
// process environment.
func New(creds providers.CredentialSource) *Resolver {
	if creds == nil {
		creds = providers.EnvCredentialSource{}
	}
	return &Resolver{creds: creds}
}

// ResolveByName resolves a configuration entry by its exact name. Every
// lookup in this path is case-sensitive: entry name, provider reference,
// and model membership.
func (r *Resolver) ResolveByName(cfg *models.File, name string) (*Result, error) {
	entry := cfg.FindEntry(name)
	if entry == nil {
		return nil, &ConfigNotFoundError{Name: name, Available: cfg.EntryNames()}
	}

	provider := cfg.FindProvider(entry.Provider)
	if provider == nil {
		return nil, &ProviderNotFoundError{Name: entry.Provider, Available: cfg.ProviderNames()}
	}

	if !provider.HasModel(entry.Model) {
		return nil, &ModelUnsupportedError{Provider: provider.Name, Model: entry.Model, Available: provider.Models}
	}

	log.Debugf("resolved '%s' -> provider=%s model=%s", name, provider.Name, entry.Model)
	return &Result{
		Name:     entry.Name,
		Provider: provider.Name,
		Model:    entry.Model,
		Source:   SourceConfig,
		Triple: envutil.Triple{
			APIKey:  provider.APIKey,
			BaseURL: provider.BaseURL,
			Model:   entry.Model,
		},
	}, nil
}

// ResolveDefault resolves the configuration named by the default pointer.
func (r *Resolver) ResolveDefault(cfg *models.File) (*Result, error) {
	if cfg.Default == "" {
		return nil, &NoDefaultError{}
	}
	return r.ResolveByName(cfg, cfg.Default)
}

// ResolveByProviderModel resolves a provider+model pair without a named
// entry. cfg may be nil, in which case only the built-in table is
// consulted. Provider matching is case-insensitive throughout; model
// matching is case-insensitive for lookup, but the stored casing is
// preserved in the result.
func (r *Resolver) ResolveByProviderModel(cfg *models.File, providerName, modelName string) (*Result, error) {
	var matched *record
	for _, t := range r.chain(cfg) {
		rec, ok := t.lookup(providerName)
		if !ok {
			continue
		}
		if matched == nil {
			matched = rec
		}
		canonical, ok := rec.canonicalModel(modelName)
		if !ok {
			continue
		}
		return r.buildResult(rec, canonical)
	}

	if matched != nil {
		return nil, &ModelUnsupportedError{Provider: matched.name, Model: modelName, Available: matched.models}
	}
	available := providers.Names()
	if cfg != nil {
		available = append(cfg.ProviderNames(), available...)
	}
	return nil, &ProviderNotFoundError{Name: providerName, Available: available}
}

func (r *Resolver) buildResult(rec *record, model string) (*Result, error) {
	res := &Result{
		Provider: rec.name,
		Model:    model,
		Source:   rec.source,
	}
	if rec.source == SourceBuiltin {
		key, variable, ok := r.creds.Credential(rec.name)
		if !ok {
			return nil, &CredentialMissingError{Provider: rec.name, Variable: variable}
		}
		res.Triple = envutil.Triple{
			APIKey:  key,
			BaseURL: rec.builtin.ExpandBaseURL(model),
			Model:   model,
		}
		log.Debugf("resolved provider=%s model=%s from built-in table (key via %s)", rec.name, model, variable)
		return res, nil
	}
	res.Triple = envutil.Triple{
		APIKey:  rec.apiKey,
		BaseURL: rec.baseURL,
		Model:   model,
	}
	log.Debugf("resolved provider=%s model=%s from configured providers", rec.name, model)
	return res, nil
}

// record is one provider found in some table of the lookup chain.
type record struct {
	name    string
	apiKey  string
	baseURL string
	models  []string
	builtin *providers.BuiltIn
	source  Source
}

func (rec *record) canonicalModel(model string) (string, bool) {
	for _, m := range rec.models {
		if strings.EqualFold(m, model) {
			return m, true
		}
	}
	return "", false
}

// table is one named provider table consulted during provider+model lookup.
type table interface {
	lookup(name string) (*record, bool)
}

// chain returns the ordered lookup chain: configured providers first,
// built-ins second.
func (r *Resolver) chain(cfg *models.File) []table {
	if cfg == nil {
		return []table{builtinTable{}}
	}
	return []table{configuredTable{cfg}, builtinTable{}}
}

type configuredTable struct {
	cfg *models.File
}

func (t configuredTable) lookup(name string) (*record, bool) {
	for i := range t.cfg.Providers {
		p := &t.cfg.Providers[i]
		if strings.EqualFold(p.Name, name) {
			return &record{
				name:    p.Name,
				apiKey:  p.APIKey,
				baseURL: p.BaseURL,
				models:  p.Models,
				source:  SourceProvider,
			}, true
		}
	}
	return nil, false
}

type builtinTable struct{}

func (builtinTable) lookup(name string) (*record, bool) {
	b, ok := providers.Lookup(name)
	if !ok {
		return nil, false
	}
	return &record{
		name:    b.Name,
		baseURL: b.BaseURL,
		models:  b.Models,
		builtin: b,
		source:  SourceBuiltin,
	}, true
}
