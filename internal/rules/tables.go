package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// ErrInvalidTable is returned for a flag table that fails validation.
var ErrInvalidTable = errors.New("invalid flag table")

// FlagRule maps one legacy flag to one target assignment.
type FlagRule struct {
	Flag  schema.Flag `yaml:"flag"`
	Scope Scope       `yaml:"scope"`
	Key   string      `yaml:"key"`
	Value any         `yaml:"value,omitempty"`
	// Copy emits the flag state itself, including false.
	Copy bool `yaml:"copy,omitempty"`
}

// Tables groups the flag rules by the kind of geometry they apply to.
type Tables struct {
	Surface []FlagRule `yaml:"surface"`
	Portal  []FlagRule `yaml:"portal"`
}

func surfaceRule(f schema.Flag, key string, value any) FlagRule {
	return FlagRule{Flag: f, Scope: ScopeFace, Key: key, Value: value}
}

// DefaultTables returns the built-in legacy-to-target flag mapping.
func DefaultTables() *Tables {
	return &Tables{
		Surface: []FlagRule{
			surfaceRule(schema.TwoSided, schema.KeyTwoSided, true),
			surfaceRule(schema.Transparent1Sided, schema.KeyTransparent, true),
			surfaceRule(schema.Transparent2Sided, schema.KeyTwoSided, true),
			surfaceRule(schema.Transparent2Sided, schema.KeyTransparent, true),
			surfaceRule(schema.RenderOnly, schema.KeyFaceMode, schema.FaceModeRenderOnly),
			surfaceRule(schema.CollisionOnly, schema.KeyFaceMode, schema.FaceModeCollisionOnly),
			surfaceRule(schema.SphereCollisionOnly, schema.KeyFaceMode, schema.FaceModeSphereCollisionOnly),
			surfaceRule(schema.Ladder, schema.KeyLadder, true),
			surfaceRule(schema.Breakable, schema.KeyFaceMode, schema.FaceModeBreakable),
			surfaceRule(schema.NoShadow, schema.KeyNoShadow, true),
			surfaceRule(schema.ShadowOnly, schema.KeyFaceMode, schema.FaceModeShadowOnly),
			surfaceRule(schema.LightmapOnly, schema.KeyFaceMode, schema.FaceModeLightmapOnly),
			surfaceRule(schema.Precise, schema.KeyPrecisePosition, true),
			surfaceRule(schema.PortalVisBlocker, schema.KeyNoPVS, true),
			surfaceRule(schema.IgnoredByLightmaps, schema.KeyNoLightmap, true),
			surfaceRule(schema.DecalOffset, schema.KeyDecalOffset, true),
			surfaceRule(schema.SlipSurface, schema.KeySlipSurface, true),
			surfaceRule(schema.GroupTransparentsByPlane, schema.KeyGroupTransparentsByPlane, true),
		},
		Portal: []FlagRule{
			{Flag: schema.Portal1Way, Scope: ScopeObject, Key: schema.KeyPortalType, Value: schema.PortalTypeOneWay},
			{Flag: schema.PortalVisBlocker, Scope: ScopeObject, Key: schema.KeyPortalType, Value: schema.PortalTypeNoWay},
			{Flag: schema.AIDeafening, Scope: ScopeObject, Key: schema.KeyPortalAIDeafening, Copy: true},
			{Flag: schema.BlocksSound, Scope: ScopeObject, Key: schema.KeyPortalBlocksSounds, Copy: true},
			{Flag: schema.PortalDoor, Scope: ScopeObject, Key: schema.KeyPortalIsDoor, Copy: true},
		},
	}
}

// Apply emits the effects of rules for the given flags, in table order.
func Apply(rules []FlagRule, flags schema.FlagSet) []Effect {
	var out []Effect
	for _, r := range rules {
		on := flags.Has(r.Flag)
		switch {
		case r.Copy:
			out = append(out, Effect{Scope: r.Scope, Key: r.Key, Value: on})
		case on:
			out = append(out, Effect{Scope: r.Scope, Key: r.Key, Value: r.Value})
		}
	}
	return out
}

// OnlySet drops Copy rules whose flag is unset in flags. Name overlays use it
// so that a symbol never resets a copied flag back to false.
func OnlySet(rules []FlagRule, flags schema.FlagSet) []FlagRule {
	out := make([]FlagRule, 0, len(rules))
	for _, r := range rules {
		if r.Copy && !flags.Has(r.Flag) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Validate checks every rule for a usable key and value.
func (t *Tables) Validate() error {
	check := func(section string, rules []FlagRule) error {
		for i, r := range rules {
			if r.Key == "" {
				return fmt.Errorf("%w: %s[%d] (%s) has no key", ErrInvalidTable, section, i, r.Flag)
			}
			if r.Scope == ScopeMaterial {
				return fmt.Errorf("%w: %s[%d] (%s) targets the material scope", ErrInvalidTable, section, i, r.Flag)
			}
			if !r.Copy && r.Value == nil {
				return fmt.Errorf("%w: %s[%d] (%s) has no value", ErrInvalidTable, section, i, r.Flag)
			}
		}
		return nil
	}
	if err := check("surface", t.Surface); err != nil {
		return err
	}
	return check("portal", t.Portal)
}

// ParseTables decodes and validates a YAML flag table.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse flag tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTables reads a YAML flag table from path.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flag tables %s: %w", path, err)
	}
	return ParseTables(data)
}

// MarshalTables serializes t to YAML.
func MarshalTables(t *Tables) ([]byte, error) {
	return yaml.Marshal(t)
}
