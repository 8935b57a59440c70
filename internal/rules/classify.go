package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// ErrMalformedName is returned for a sky material whose index suffix is not a
// non-negative integer. The material is still a sky, without an index.
var ErrMalformedName = errors.New("malformed material name")

// Material name prefixes with special meaning.
const (
	PrefixSky        = "+sky"
	PrefixSeamSealer = "+seamsealer"
	PrefixPortal     = "+portal"
)

// Kind is the tag of a Category.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindSky
	KindSeamSealer
	KindPortal
	KindFogPlane
	KindWaterSurface
	KindGlass
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "Generic"
	case KindSky:
		return "Sky"
	case KindSeamSealer:
		return "SeamSealer"
	case KindPortal:
		return "Portal"
	case KindFogPlane:
		return "FogPlane"
	case KindWaterSurface:
		return "WaterSurface"
	case KindGlass:
		return "Glass"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Category is the classification of one material.
type Category struct {
	Kind Kind
	// Index is the sky permutation index; valid only when HasIndex is set.
	Index    int
	HasIndex bool
}

// Generic is the default category.
var Generic = Category{Kind: KindGeneric}

// Sky returns a sky category with a permutation index.
func Sky(index int) Category {
	return Category{Kind: KindSky, Index: index, HasIndex: true}
}

// String returns e.g. "Sky(2)", "Sky" or "Portal".
func (c Category) String() string {
	if c.Kind == KindSky && c.HasIndex {
		return fmt.Sprintf("Sky(%d)", c.Index)
	}
	return c.Kind.String()
}

// Classify assigns m to exactly one category. Rules are tried in priority
// order and the first match wins.
func Classify(m *schema.MaterialRecord) Category {
	name := m.Name
	switch {
	case strings.HasPrefix(name, PrefixSky):
		c := Category{Kind: KindSky}
		if idx, ok, _ := SkyIndex(name); ok {
			c.Index, c.HasIndex = idx, true
		}
		return c
	case strings.HasPrefix(name, PrefixSeamSealer):
		return Category{Kind: KindSeamSealer}
	case strings.HasPrefix(name, PrefixPortal):
		return Category{Kind: KindPortal}
	case m.Has(schema.FogPlane):
		return Category{Kind: KindFogPlane}
	case m.Has(schema.WaterSurface):
		return Category{Kind: KindWaterSurface}
	case strings.Contains(name, "glass") && (m.Has(schema.TwoSided) || m.Has(schema.Transparent2Sided)):
		return Category{Kind: KindGlass}
	}
	return Generic
}

// SkyIndex extracts the permutation index from a sky material name. The
// index runs from after "+sky" to the first '.', which hosts append to
// duplicated names. An empty index is absent without error; anything other
// than digits is ErrMalformedName.
func SkyIndex(name string) (int, bool, error) {
	rest, ok := strings.CutPrefix(name, PrefixSky)
	if !ok {
		return 0, false, nil
	}
	rest, _, _ = strings.Cut(rest, ".")
	if strings.TrimSpace(rest) == "" {
		return 0, false, nil
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false, fmt.Errorf("%w: %q has non-numeric sky index %q", ErrMalformedName, name, rest)
		}
	}
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q: %v", ErrMalformedName, name, err)
	}
	return idx, true, nil
}
