package species

import (
	"sort"

	"arbor/internal/tree"
)

// Factory produces the decoded growth parameters of a species, with
// optional flag-style string overrides applied on top of the preset.
type Factory func(cfg map[string]string) tree.Params

var registry = map[string]Factory{}

// Register adds a species factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered species in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
