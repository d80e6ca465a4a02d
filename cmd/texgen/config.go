package main

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Config holds the command-line parameters of the renderer.
type Config struct {
	Recipe   string
	Out      string
	Verbose  bool
	Sets     kvList
	Variants int
	Workers  int
	Watch    bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Out: "texture", Variants: 1, Workers: runtime.NumCPU()}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Recipe, "recipe", c.Recipe, "YAML recipe to render")
	fs.StringVar(&c.Out, "out", c.Out, "output prefix; writes <out>_left.png and <out>_right.png")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
	fs.Var(&c.Sets, "set", "parameter override as key=value for the last layer or N.key=value for layer N (repeatable)")
	fs.IntVar(&c.Variants, "variants", c.Variants, "number of seed variants to render")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel variant renders")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "re-render when the recipe or its sprites change")
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// override is one parsed -set entry. layer is -1 for the last layer.
type override struct {
	layer int
	key   string
	value string
}

func parseOverride(kv string) (override, error) {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return override{}, fmt.Errorf("override %q: want key=value", kv)
	}
	o := override{layer: -1, key: parts[0], value: parts[1]}
	if idx, key, ok := strings.Cut(parts[0], "."); ok {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 || key == "" {
			return override{}, fmt.Errorf("override %q: bad layer index", kv)
		}
		o.layer, o.key = n, key
	}
	return o, nil
}
