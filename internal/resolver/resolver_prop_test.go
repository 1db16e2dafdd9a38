package resolver

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"aiswitch/config/models"
	"aiswitch/internal/providers"
)

// identGen produces plausible name strings without exotic characters so the
// generated config files stay structurally valid.
func identGen() gopter.Gen {
	return gen.RegexMatch(`[a-z][a-z0-9-]{0,15}`)
}

// fileGen generates config files where every entry references an existing
// provider and a model from that provider's list.
func fileGen() gopter.Gen {
	providerGen := gopter.CombineGens(
		identGen(),
		gen.RegexMatch(`[a-zA-Z0-9.-]{1,20}`),
		gen.IntRange(1, 5),
	).Map(func(values []interface{}) models.Provider {
		n := values[2].(int)
		ms := make([]string, 0, n)
		for i := 0; i < n; i++ {
			ms = append(ms, values[1].(string)+"-"+string(rune('a'+i)))
		}
		return models.Provider{
			Name:    values[0].(string),
			APIKey:  "key-" + values[0].(string),
			BaseURL: "https://" + values[0].(string) + ".example.com/v1",
			Models:  ms,
		}
	})

	return gopter.CombineGens(
		gen.SliceOfN(3, providerGen),
		gen.IntRange(0, 4),
	).Map(func(values []interface{}) *models.File {
		ps := values[0].([]models.Provider)
		// Distinct provider names; duplicates would make "first match
		// wins" interfere with the property being tested.
		seen := map[string]bool{}
		uniq := ps[:0]
		for _, p := range ps {
			if !seen[p.Name] {
				seen[p.Name] = true
				uniq = append(uniq, p)
			}
		}
		f := &models.File{Providers: uniq}
		for i, p := range uniq {
			mi := values[1].(int) % len(p.Models)
			f.Configs = append(f.Configs, models.Entry{
				Name:     p.Name + "-cfg-" + string(rune('0'+i)),
				Provider: p.Name,
				Model:    p.Models[mi],
			})
		}
		return f
	})
}

// For every entry whose provider exists and whose model is in that
// provider's list, resolution succeeds and the emitted model preserves the
// entry's exact casing.
func TestPropertyResolveByNameSucceedsForConsistentEntries(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	r := New(providers.StaticCredentialSource{})

	properties.Property("consistent entries resolve with exact model", prop.ForAll(
		func(f *models.File) bool {
			for _, e := range f.Configs {
				res, err := r.ResolveByName(f, e.Name)
				if err != nil {
					return false
				}
				if res.Model != e.Model {
					return false
				}
			}
			return true
		},
		fileGen(),
	))

	properties.Property("resolution is idempotent", prop.ForAll(
		func(f *models.File) bool {
			for _, e := range f.Configs {
				a, errA := r.ResolveByName(f, e.Name)
				b, errB := r.ResolveByName(f, e.Name)
				if errA != nil || errB != nil {
					return false
				}
				if a.Triple != b.Triple {
					return false
				}
			}
			return true
		},
		fileGen(),
	))

	properties.TestingRun(t)
}

// For any name not present in the file, resolution fails and the
// alternatives list equals exactly the configured names in original order.
func TestPropertyResolveByNameUnknownListsAllNames(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	r := New(providers.StaticCredentialSource{})

	properties.Property("unknown names list all entries in order", prop.ForAll(
		func(f *models.File, probe string) bool {
			name := "no-such-" + probe
			if f.FindEntry(name) != nil {
				return true // improbable collision, skip
			}
			_, err := r.ResolveByName(f, name)
			nf, ok := err.(*ConfigNotFoundError)
			if !ok {
				return false
			}
			return reflect.DeepEqual(nf.Available, f.EntryNames())
		},
		fileGen(),
		identGen(),
	))

	properties.TestingRun(t)
}
