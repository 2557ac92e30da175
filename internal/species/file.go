package species

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"arbor/internal/tree"
)

// LoadFile reads a species preset from a yaml file and validates it.
func LoadFile(path string) (tree.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tree.Params{}, fmt.Errorf("species: read %s: %w", path, err)
	}
	var p tree.Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return tree.Params{}, fmt.Errorf("species: parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return tree.Params{}, fmt.Errorf("species: %s: %w", path, err)
	}
	return p, nil
}

// SaveFile writes a parameter set as yaml, handy for scaffolding a new
// preset from a builtin one.
func SaveFile(path string, p tree.Params) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("species: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("species: write %s: %w", path, err)
	}
	return nil
}
