package machine

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Feature names a statement family a machine generation understands.
type Feature string

const (
	FeaturePointerStore Feature = "pointer-store" // *p = 5
	FeatureDeclare      Feature = "declare"       // int x = 5
	FeatureLiteral      Feature = "literal"       // x = true|false|null
	FeatureAdd          Feature = "add"           // z = x + y
	FeatureMul          Feature = "mul"           // z = x * y
	FeatureInput        Feature = "input"         // x = get_mouse_x()
	FeatureIf           Feature = "if"            // if ( a == b )
	FeatureLabel        Feature = "label"         // label loop
	FeatureCall         Feature = "call"          // call f
	FeatureReturn       Feature = "return"        // return
	FeatureGraphics     Feature = "graphics"      // color/pos/size
	FeatureSystem       Feature = "system"        // draw()/clear()/halt()/RECT
)

// AllFeatures lists every feature in classifier priority order.
var AllFeatures = []Feature{
	FeaturePointerStore,
	FeatureDeclare,
	FeatureLiteral,
	FeatureAdd,
	FeatureMul,
	FeatureInput,
	FeatureIf,
	FeatureLabel,
	FeatureCall,
	FeatureReturn,
	FeatureGraphics,
	FeatureSystem,
}

var (
	// ErrUnknownProfile is returned by Lookup for names without a builtin.
	ErrUnknownProfile = errors.New("unknown machine profile")
	// ErrInvalidProfile is returned when a profile fails validation.
	ErrInvalidProfile = errors.New("invalid machine profile")
)

// Profile is an instruction-set profile: one machine generation described as
// data instead of a separate copy of the translator.
type Profile struct {
	Name       string    `yaml:"name"`
	Layout     Layout    `yaml:"registers"`
	BoolOpcode string    `yaml:"bool_opcode"` // opcode loading true/false/null
	Features   []Feature `yaml:"kinds"`
}

// Enabled reports whether the profile understands f.
func (p *Profile) Enabled(f Feature) bool {
	for _, have := range p.Features {
		if have == f {
			return true
		}
	}
	return false
}

// Validate checks the register layout, the boolean opcode and the feature
// names.
func (p *Profile) Validate() error {
	if err := p.Layout.Validate(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidProfile, p.Name, err)
	}
	switch p.BoolOpcode {
	case "WAK", "SET":
	default:
		return fmt.Errorf("%w %q: bool_opcode must be WAK or SET, got %q", ErrInvalidProfile, p.Name, p.BoolOpcode)
	}
	for _, f := range p.Features {
		if !knownFeature(f) {
			return fmt.Errorf("%w %q: unknown kind %q", ErrInvalidProfile, p.Name, f)
		}
	}
	return nil
}

func knownFeature(f Feature) bool {
	for _, k := range AllFeatures {
		if k == f {
			return true
		}
	}
	return false
}

// DefaultProfileName is the most complete machine generation.
const DefaultProfileName = "void3-3"

var builtins = map[string]Profile{
	// First generation: pointer stores, balanced literals, addition and
	// the hardware primitives. Literals load through WAK.
	"void3-1": {
		Name:       "void3-1",
		Layout:     DefaultLayout,
		BoolOpcode: "WAK",
		Features: []Feature{
			FeaturePointerStore, FeatureLiteral, FeatureAdd,
			FeatureGraphics, FeatureSystem,
		},
	},
	"void3-2": {
		Name:       "void3-2",
		Layout:     DefaultLayout,
		BoolOpcode: "SET",
		Features: []Feature{
			FeaturePointerStore, FeatureDeclare, FeatureLiteral, FeatureAdd,
			FeatureMul, FeatureInput, FeatureIf, FeatureLabel,
			FeatureGraphics, FeatureSystem,
		},
	},
	"void3-3": {
		Name:       "void3-3",
		Layout:     DefaultLayout,
		BoolOpcode: "SET",
		Features:   AllFeatures,
	},
}

// Lookup returns a copy of the builtin profile called name.
func Lookup(name string) (*Profile, error) {
	p, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownProfile, name, strings.Join(Names(), ", "))
	}
	p.Features = append([]Feature(nil), p.Features...)
	return &p, nil
}

// Default returns the default builtin profile.
func Default() *Profile {
	p, _ := Lookup(DefaultProfileName)
	return p
}

// Names returns the builtin profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseProfile decodes a YAML profile. Fields left out of the document keep
// the values of the default profile.
func ParseProfile(data []byte) (*Profile, error) {
	p := Default()
	p.Name = "custom"
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfile(data)
}

// Resolve returns the builtin profile named ref, or loads ref as a YAML file
// when no builtin has that name.
func Resolve(ref string) (*Profile, error) {
	if ref == "" {
		return Default(), nil
	}
	if _, ok := builtins[ref]; ok {
		return Lookup(ref)
	}
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") {
		return LoadProfile(ref)
	}
	return Lookup(ref)
}
