package rules

import (
	"strings"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// Profile lists which rules apply to objects of one category kind.
type Profile struct {
	Object       []Effect // object defaults
	SurfaceFlags bool     // surface flag table applies to faces
	PortalFlags  bool     // portal flag table applies to the object
	Numeric      bool     // numeric transforms apply to faces
	Instanceable bool     // instance prefix turns the object into instance geometry
}

var instanceDefaults = []Effect{
	objectEffect(schema.KeyMeshType, schema.MeshTypePoop),
	objectEffect(schema.KeyPoopLighting, schema.PoopLightingDefault),
	objectEffect(schema.KeyPoopPathfinding, schema.PoopPathfindingCutout),
}

var profiles = map[Kind]Profile{
	KindGeneric: {
		Object:       []Effect{objectEffect(schema.KeyMeshType, schema.MeshTypeStructure)},
		SurfaceFlags: true,
		Numeric:      true,
		Instanceable: true,
	},
	KindSky: {
		Object: []Effect{objectEffect(schema.KeyMeshType, schema.MeshTypeStructure)},
	},
	KindSeamSealer: {
		Object: []Effect{objectEffect(schema.KeyMeshType, schema.MeshTypeStructure)},
	},
	KindPortal: {
		Object: []Effect{
			objectEffect(schema.KeyMeshType, schema.MeshTypePlane),
			objectEffect(schema.KeyPlaneType, schema.PlaneTypePortal),
			objectEffect(schema.KeyPortalType, schema.PortalTypeTwoWay),
		},
		SurfaceFlags: true,
		PortalFlags:  true,
		Numeric:      true,
	},
	KindFogPlane: {
		Object: []Effect{
			objectEffect(schema.KeyMeshType, schema.MeshTypePlane),
			objectEffect(schema.KeyPlaneType, schema.PlaneTypeFogVolume),
		},
		SurfaceFlags: true,
		Numeric:      true,
	},
	KindWaterSurface: {
		Object: []Effect{
			objectEffect(schema.KeyMeshType, schema.MeshTypePlane),
			objectEffect(schema.KeyPlaneType, schema.PlaneTypeWaterSurface),
		},
		SurfaceFlags: true,
		Numeric:      true,
	},
	KindGlass: {
		Object:       instanceDefaults,
		SurfaceFlags: true,
		Numeric:      true,
	},
}

// ProfileFor returns the profile of k. Unknown kinds fall back to Generic.
func ProfileFor(k Kind) Profile {
	if p, ok := profiles[k]; ok {
		return p
	}
	return profiles[KindGeneric]
}

// DefaultInstancePrefix marks instance geometry object names.
const DefaultInstancePrefix = "%"

// Ruleset bundles the tables and policies of one migration run.
type Ruleset struct {
	Tables          *Tables
	Lightmap        LightmapPolicy
	Precedence      Precedence
	ObjectLexicon   Lexicon
	MaterialLexicon Lexicon
	InstancePrefix  string
}

// DefaultRuleset returns the built-in rules.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Tables:          DefaultTables(),
		Lightmap:        LightmapBuckets,
		Precedence:      PrefixWins,
		ObjectLexicon:   ObjectLexicon(),
		MaterialLexicon: MaterialLexicon(),
		InstancePrefix:  DefaultInstancePrefix,
	}
}

// ObjectDefaults returns the category defaults for an object of kind k.
func (rs *Ruleset) ObjectDefaults(k Kind, objectName string) []Effect {
	p := ProfileFor(k)
	out := append([]Effect(nil), p.Object...)
	if p.Instanceable && rs.InstancePrefix != "" && strings.HasPrefix(objectName, rs.InstancePrefix) {
		out = append(out, instanceDefaults...)
	}
	return out
}

// FaceDefaults returns the face defaults for a material of category c.
func (rs *Ruleset) FaceDefaults(c Category) []Effect {
	switch c.Kind {
	case KindSky:
		out := []Effect{faceEffect(schema.KeyFaceType, schema.FaceTypeSky)}
		if c.HasIndex {
			out = append(out, faceEffect(schema.KeySkyPermutationIndex, c.Index))
		}
		return out
	case KindSeamSealer:
		return []Effect{faceEffect(schema.KeyFaceType, schema.FaceTypeSeamSealer)}
	}
	return nil
}

// FieldEffects returns the face effects of the legacy text fields of m. They
// run ahead of the flag tables, on kinds that take surface flags.
func (rs *Ruleset) FieldEffects(k Kind, m *schema.MaterialRecord) []Effect {
	if !ProfileFor(k).SurfaceFlags {
		return nil
	}
	effect := strings.TrimSpace(m.MaterialEffect)
	if effect == "" {
		return nil
	}
	return []Effect{faceEffect(schema.KeyFaceGlobalMaterial, effect)}
}

// FlagEffects applies the flag tables of kind k to flags.
func (rs *Ruleset) FlagEffects(k Kind, flags schema.FlagSet) (face, object []Effect) {
	p := ProfileFor(k)
	if p.SurfaceFlags {
		face = Apply(rs.Tables.Surface, flags)
	}
	if p.PortalFlags {
		object = Apply(rs.Tables.Portal, flags)
	}
	return face, object
}

// OverlayEffects is FlagEffects for a name overlay: only flags the overlay
// actually sets produce effects.
func (rs *Ruleset) OverlayEffects(k Kind, overlay schema.FlagSet) (face, object []Effect) {
	if overlay.Empty() {
		return nil, nil
	}
	p := ProfileFor(k)
	if p.SurfaceFlags {
		face = Apply(OnlySet(rs.Tables.Surface, overlay), overlay)
	}
	if p.PortalFlags {
		object = Apply(OnlySet(rs.Tables.Portal, overlay), overlay)
	}
	return face, object
}

// NumericEffects runs the numeric transforms when kind k uses them.
func (rs *Ruleset) NumericEffects(k Kind, m *schema.MaterialRecord) []Effect {
	if !ProfileFor(k).Numeric {
		return nil
	}
	return NumericEffects(m, rs.Lightmap)
}

// MaterialNameFlags parses both ends of a material name into a flag overlay.
func (rs *Ruleset) MaterialNameFlags(name string) schema.FlagSet {
	return FlagOverlay(ParseName(name, rs.MaterialLexicon, rs.Precedence))
}

// ObjectNameEffects parses the symbols leading an object name.
func (rs *Ruleset) ObjectNameEffects(name string) []Effect {
	return ParsePrefix(name, rs.ObjectLexicon)
}
