// Package schema defines the legacy material record and the target property
// vocabulary used by the migration engine.
package schema

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFlag is returned when a flag name is not part of the legacy schema.
var ErrUnknownFlag = errors.New("unknown legacy flag")

// Flag is a single legacy boolean material field.
type Flag uint8

const (
	TwoSided Flag = iota
	Transparent1Sided
	Transparent2Sided
	RenderOnly
	CollisionOnly
	SphereCollisionOnly
	FogPlane
	Ladder
	Breakable
	AIDeafening
	NoShadow
	ShadowOnly
	LightmapOnly
	Precise
	Conveyor
	Portal1Way
	PortalDoor
	PortalVisBlocker
	DislikePhotons
	IgnoredByLightmaps
	BlocksSound
	DecalOffset
	WaterSurface
	SlipSurface
	GroupTransparentsByPlane

	flagCount
)

var flagNames = [flagCount]string{
	TwoSided:                 "two_sided",
	Transparent1Sided:        "transparent_1_sided",
	Transparent2Sided:        "transparent_2_sided",
	RenderOnly:               "render_only",
	CollisionOnly:            "collision_only",
	SphereCollisionOnly:      "sphere_collision_only",
	FogPlane:                 "fog_plane",
	Ladder:                   "ladder",
	Breakable:                "breakable",
	AIDeafening:              "ai_deafening",
	NoShadow:                 "no_shadow",
	ShadowOnly:               "shadow_only",
	LightmapOnly:             "lightmap_only",
	Precise:                  "precise",
	Conveyor:                 "conveyor",
	Portal1Way:               "portal_1_way",
	PortalDoor:               "portal_door",
	PortalVisBlocker:         "portal_vis_blocker",
	DislikePhotons:           "dislike_photons",
	IgnoredByLightmaps:       "ignored_by_lightmaps",
	BlocksSound:              "blocks_sound",
	DecalOffset:              "decal_offset",
	WaterSurface:             "water_surface",
	SlipSurface:              "slip_surface",
	GroupTransparentsByPlane: "group_transparents_by_plane",
}

// String returns the legacy field name.
func (f Flag) String() string {
	if f < flagCount {
		return flagNames[f]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(f))
}

// ParseFlag resolves a legacy field name.
func ParseFlag(name string) (Flag, error) {
	name = strings.TrimSpace(name)
	for i, n := range flagNames {
		if n == name {
			return Flag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
}

// AllFlags returns every legacy flag in schema order.
func AllFlags() []Flag {
	out := make([]Flag, flagCount)
	for i := range out {
		out[i] = Flag(i)
	}
	return out
}

// MarshalYAML writes the flag by name.
func (f Flag) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML reads a flag by name.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFlag(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FlagSet is a set of legacy flags.
type FlagSet uint32

// NewFlagSet builds a set from the given flags.
func NewFlagSet(flags ...Flag) FlagSet {
	var s FlagSet
	for _, f := range flags {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is set.
func (s FlagSet) Has(f Flag) bool {
	return s&(1<<f) != 0
}

// With returns a copy of s with f set.
func (s FlagSet) With(f Flag) FlagSet {
	return s | 1<<f
}

// Union returns the flags set in either s or o.
func (s FlagSet) Union(o FlagSet) FlagSet {
	return s | o
}

// Empty reports whether no flag is set.
func (s FlagSet) Empty() bool {
	return s == 0
}

// Flags lists the set flags in schema order.
func (s FlagSet) Flags() []Flag {
	var out []Flag
	for f := Flag(0); f < flagCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String returns the set as a comma-separated list.
func (s FlagSet) String() string {
	names := make([]string, 0, flagCount)
	for _, f := range s.Flags() {
		names = append(names, f.String())
	}
	return "[" + strings.Join(names, ",") + "]"
}

// MarshalYAML writes the set as a sequence of flag names.
func (s FlagSet) MarshalYAML() (any, error) {
	names := []string{}
	for _, f := range s.Flags() {
		names = append(names, f.String())
	}
	return names, nil
}

// UnmarshalYAML reads a sequence of flag names.
func (s *FlagSet) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	var set FlagSet
	for _, n := range names {
		f, err := ParseFlag(n)
		if err != nil {
			return err
		}
		set = set.With(f)
	}
	*s = set
	return nil
}

// Color is a linear RGB color as stored on legacy materials.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// Value returns the HSV value channel.
func (c Color) Value() float64 {
	_, _, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return v
}

// Lighting holds the emissive lighting group of a legacy material.
type Lighting struct {
	Color              Color   `yaml:"color"`
	Power              float64 `yaml:"power"`
	Quality            float64 `yaml:"quality"`
	EmissiveFocus      float64 `yaml:"emissive_focus"`
	AttenuationEnabled bool    `yaml:"attenuation_enabled"`
	FalloffDistance    float64 `yaml:"falloff_distance"`
	CutoffDistance     float64 `yaml:"cutoff_distance"`
	PowerPerUnitArea   bool    `yaml:"power_per_unit_area"`
	UseShaderGel       bool    `yaml:"use_shader_gel"`
}

// DefaultLightmapRes is the neutral lightmap resolution scale.
const DefaultLightmapRes = 1.0

// MaterialRecord is a read-only snapshot of a material's legacy fields.
type MaterialRecord struct {
	Name                 string   `yaml:"-"`
	Flags                FlagSet  `yaml:"flags,omitempty"`
	Lighting             Lighting `yaml:"lighting,omitempty"`
	LightmapRes          float64  `yaml:"lightmap_res"`
	AdditiveTransparency Color    `yaml:"additive_transparency,omitempty"`
	TwoSidedTint         Color    `yaml:"two_sided_tint,omitempty"`
	MaterialEffect       string   `yaml:"material_effect,omitempty"`
}

// NewMaterialRecord returns a record with neutral legacy values.
func NewMaterialRecord(name string) MaterialRecord {
	return MaterialRecord{Name: name, LightmapRes: DefaultLightmapRes}
}

// Has reports whether the legacy flag f is set.
func (m *MaterialRecord) Has(f Flag) bool {
	return m.Flags.Has(f)
}

// WithFlags returns a copy of the record with extra flags set.
func (m MaterialRecord) WithFlags(extra FlagSet) MaterialRecord {
	m.Flags = m.Flags.Union(extra)
	return m
}
