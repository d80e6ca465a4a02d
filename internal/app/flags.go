package app

import "flag"

// Config represents the command-line parameters of the viewer.
type Config struct {
	Recipe     string
	Resolution int
	Scale      int
	PanelWidth int
	Verbose    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Resolution: 256, Scale: 2, PanelWidth: 280}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Recipe, "recipe", c.Recipe, "optional YAML recipe to open")
	fs.IntVar(&c.Resolution, "res", c.Resolution, "texture resolution when no recipe is given")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.PanelWidth, "panel", c.PanelWidth, "width of the layer panel")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
}
