package app

import "flag"

// Config represents the command-line parameters of the viewer.
type Config struct {
	Species string
	Preset  string
	Seed    int64
	Width   int
	Height  int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Species: "quaking_aspen", Seed: 42, Width: 1024, Height: 768}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Species, "species", c.Species, "builtin species to grow")
	fs.StringVar(&c.Preset, "preset", c.Preset, "yaml preset file, overrides -species")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for structure generation")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
}
