package models

// Provider represents one backend service definition from the config file.
// A nil Models slice means the user never wrote a models list; an empty
// slice means the list was written and is explicitly empty. Validation
// treats these differently.
type Provider struct {
	Name    string   `yaml:"name" json:"name"`
	APIKey  string   `yaml:"api_key" json:"api_key"`
	BaseURL string   `yaml:"base_url" json:"base_url"`
	Models  []string `yaml:"models" json:"models"`
}

// HasModel reports whether model appears in the provider's list, exact match.
func (p *Provider) HasModel(model string) bool {
	for _, m := range p.Models {
		if m == model {
			return true
		}
	}
	return false
}

// Entry is a named shortcut binding a provider+model pair.
// Group is purely for display grouping in list output.
type Entry struct {
	Name     string `yaml:"name" json:"name"`
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	Group    string `yaml:"group,omitempty" json:"group,omitempty"`
}

// File represents the structure of the config file.
type File struct {
	Default   string     `yaml:"default,omitempty" json:"default,omitempty"`
	Providers []Provider `yaml:"providers" json:"providers"`
	Configs   []Entry    `yaml:"configs" json:"configs"`
}

// FindEntry returns the entry with the given name, exact match.
// First match wins when names collide.
func (f *File) FindEntry(name string) *Entry {
	for i := range f.Configs {
		if f.Configs[i].Name == name {
			return &f.Configs[i]
		}
	}
	return nil
}

// FindProvider returns the provider with the given name, exact match.
func (f *File) FindProvider(name string) *Provider {
	for i := range f.Providers {
		if f.Providers[i].Name == name {
			return &f.Providers[i]
		}
	}
	return nil
}

// EntryNames returns all configuration entry names in file order.
func (f *File) EntryNames() []string {
	names := make([]string, 0, len(f.Configs))
	for _, e := range f.Configs {
		names = append(names, e.Name)
	}
	return names
}

// ProviderNames returns all configured provider names in file order.
func (f *File) ProviderNames() []string {
	names := make([]string, 0, len(f.Providers))
	for _, p := range f.Providers {
		names = append(names, p.Name)
	}
	return names
}
