package core

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
)

// ParamKind enumerates supported parameter value kinds.
type ParamKind string

const (
	// ParamInt denotes integer-valued parameters.
	ParamInt ParamKind = "int"
	// ParamFloat denotes floating-point parameters.
	ParamFloat ParamKind = "float"
	// ParamSlider denotes a normalized value in the range 0..100.
	ParamSlider ParamKind = "slider"
	// ParamSeed denotes a 64-bit seed that front ends may randomize.
	ParamSeed ParamKind = "seed"
)

// SeedKey is the parameter name every seeded operation reads its seed from.
const SeedKey = "seed"

// ParamSpec describes a single tunable value exposed by an operation.
type ParamSpec struct {
	Key     string
	Label   string
	Kind    ParamKind
	Default float64
}

// Schema is the ordered list of parameters an operation declares. Front ends
// render it in order; the core never looks at presentation.
type Schema []ParamSpec

// Lookup returns the spec registered under key.
func (s Schema) Lookup(key string) (ParamSpec, bool) {
	for _, spec := range s {
		if spec.Key == key {
			return spec, true
		}
	}
	return ParamSpec{}, false
}

// Defaults builds a Parameters set holding every declared default.
func (s Schema) Defaults() Parameters {
	p := make(Parameters, len(s))
	for _, spec := range s {
		p[spec.Key] = spec.Default
	}
	return p
}

// Parameters maps parameter names to values. Only key identity matters;
// iteration order carries no meaning.
type Parameters map[string]float64

// Get returns the value stored under key or def when absent.
func (p Parameters) Get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Int is Get truncated toward zero.
func (p Parameters) Int(key string, def int) int {
	return int(p.Get(key, float64(def)))
}

// Has reports whether key is present.
func (p Parameters) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Set stores v under key.
func (p Parameters) Set(key string, v float64) { p[key] = v }

// Seed returns the seed parameter. Reproducibility depends on callers
// providing it, so absence is reported rather than randomized.
func (p Parameters) Seed() (int64, error) {
	v, ok := p[SeedKey]
	if !ok {
		return 0, ErrMissingSeed
	}
	return int64(v), nil
}

// Clone returns an independent copy. A nil receiver clones to an empty set.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the parameter names in lexical order.
func (p Parameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the set as key=value pairs in key order.
func (p Parameters) String() string {
	var sb strings.Builder
	for i, k := range p.Keys() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(p[k], 'g', -1, 64))
	}
	return sb.String()
}

// ParamError reports a raw value that could not be coerced to its declared
// kind. It wraps ErrInvalidParameter.
type ParamError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: invalid value %q: %v", e.Key, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// ParseParameters coerces textual values into a Parameters set following the
// schema. Keys missing from raw take their declared default. Values that fail
// to parse also fall back to the default; each such failure is returned as a
// warning and never aborts the parse. Keys not declared in the schema are
// parsed as plain floats.
func ParseParameters(schema Schema, raw map[string]string) (Parameters, []error) {
	p := schema.Defaults()
	var warnings []error
	for _, spec := range schema {
		text, ok := raw[spec.Key]
		if !ok {
			continue
		}
		v, err := coerce(spec.Kind, text)
		if err != nil {
			warnings = append(warnings, &ParamError{Key: spec.Key, Value: text, Err: err})
			continue
		}
		p[spec.Key] = v
	}
	extra := make([]string, 0)
	for k := range raw {
		if _, declared := schema.Lookup(k); !declared {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		v, err := coerce(ParamFloat, raw[k])
		if err != nil {
			warnings = append(warnings, &ParamError{Key: k, Value: raw[k], Err: err})
			continue
		}
		p[k] = v
	}
	return p, warnings
}

func coerce(kind ParamKind, text string) (float64, error) {
	text = strings.TrimSpace(text)
	switch kind {
	case ParamInt, ParamSeed:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return float64(n), nil
		}
		f, err := parseFinite(text)
		if err != nil {
			return 0, err
		}
		return math.Trunc(f), nil
	case ParamSlider:
		f, err := parseFinite(text)
		if err != nil {
			return 0, err
		}
		return math.Max(0, math.Min(100, f)), nil
	default:
		return parseFinite(text)
	}
}

func parseFinite(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return f, nil
}

// RandomSeed draws a fresh non-negative 31-bit seed. It backs the "randomize"
// affordance of seed parameters and is the only nondeterministic source in
// the package.
func RandomSeed() int64 {
	return int64(rand.IntN(math.MaxInt32))
}
