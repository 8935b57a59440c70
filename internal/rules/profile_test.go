package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// keys flattens effects into key=value pairs, later writes winning.
func keys(effects []Effect) map[string]any {
	out := make(map[string]any, len(effects))
	for _, e := range effects {
		out[e.Key] = e.Value
	}
	return out
}

func TestObjectDefaults(t *testing.T) {
	rs := DefaultRuleset()

	tests := []struct {
		kind Kind
		name string
		want map[string]any
	}{
		{KindGeneric, "wall", map[string]any{schema.KeyMeshType: schema.MeshTypeStructure}},
		{KindGeneric, "%crate", map[string]any{
			schema.KeyMeshType:        schema.MeshTypePoop,
			schema.KeyPoopLighting:    schema.PoopLightingDefault,
			schema.KeyPoopPathfinding: schema.PoopPathfindingCutout,
		}},
		{KindSky, "%sky", map[string]any{schema.KeyMeshType: schema.MeshTypeStructure}},
		{KindPortal, "door", map[string]any{
			schema.KeyMeshType:   schema.MeshTypePlane,
			schema.KeyPlaneType:  schema.PlaneTypePortal,
			schema.KeyPortalType: schema.PortalTypeTwoWay,
		}},
		{KindFogPlane, "fog", map[string]any{
			schema.KeyMeshType:  schema.MeshTypePlane,
			schema.KeyPlaneType: schema.PlaneTypeFogVolume,
		}},
		{KindWaterSurface, "lake", map[string]any{
			schema.KeyMeshType:  schema.MeshTypePlane,
			schema.KeyPlaneType: schema.PlaneTypeWaterSurface,
		}},
		{KindGlass, "window", map[string]any{
			schema.KeyMeshType:        schema.MeshTypePoop,
			schema.KeyPoopLighting:    schema.PoopLightingDefault,
			schema.KeyPoopPathfinding: schema.PoopPathfindingCutout,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.name, func(t *testing.T) {
			effects := rs.ObjectDefaults(tt.kind, tt.name)
			for _, e := range effects {
				assert.Equal(t, ScopeObject, e.Scope)
			}
			assert.Equal(t, tt.want, keys(effects))
		})
	}
}

func TestObjectDefaults_DoesNotAlias(t *testing.T) {
	rs := DefaultRuleset()
	a := rs.ObjectDefaults(KindGeneric, "%a")
	a[0].Value = "tampered"
	b := rs.ObjectDefaults(KindGeneric, "%b")
	assert.Equal(t, schema.MeshTypeStructure, b[0].Value)
}

func TestObjectDefaults_CustomPrefix(t *testing.T) {
	rs := DefaultRuleset()
	rs.InstancePrefix = "inst_"
	assert.Equal(t, schema.MeshTypePoop, keys(rs.ObjectDefaults(KindGeneric, "inst_rock"))[schema.KeyMeshType])
	assert.Equal(t, schema.MeshTypeStructure, keys(rs.ObjectDefaults(KindGeneric, "%rock"))[schema.KeyMeshType])

	rs.InstancePrefix = ""
	assert.Len(t, rs.ObjectDefaults(KindGeneric, "rock"), 1)
}

func TestFaceDefaults(t *testing.T) {
	rs := DefaultRuleset()

	assert.Equal(t, []Effect{
		faceEffect(schema.KeyFaceType, schema.FaceTypeSky),
		faceEffect(schema.KeySkyPermutationIndex, 4),
	}, rs.FaceDefaults(Sky(4)))
	assert.Equal(t, []Effect{faceEffect(schema.KeyFaceType, schema.FaceTypeSky)}, rs.FaceDefaults(Category{Kind: KindSky}))
	assert.Equal(t, []Effect{faceEffect(schema.KeyFaceType, schema.FaceTypeSeamSealer)}, rs.FaceDefaults(Category{Kind: KindSeamSealer}))
	assert.Empty(t, rs.FaceDefaults(Generic))
	assert.Empty(t, rs.FaceDefaults(Category{Kind: KindPortal}))
}

func TestFlagEffects(t *testing.T) {
	rs := DefaultRuleset()
	flags := schema.NewFlagSet(schema.Ladder, schema.Portal1Way, schema.BlocksSound)

	face, object := rs.FlagEffects(KindGeneric, flags)
	assert.Equal(t, map[string]any{schema.KeyLadder: true}, keys(face))
	assert.Empty(t, object, "portal table only applies to portals")

	face, object = rs.FlagEffects(KindPortal, flags)
	assert.Equal(t, map[string]any{schema.KeyLadder: true}, keys(face))
	assert.Equal(t, map[string]any{
		schema.KeyPortalType:         schema.PortalTypeOneWay,
		schema.KeyPortalAIDeafening:  false,
		schema.KeyPortalBlocksSounds: true,
		schema.KeyPortalIsDoor:       false,
	}, keys(object))

	face, object = rs.FlagEffects(KindSky, flags)
	assert.Empty(t, face)
	assert.Empty(t, object)
}

func TestOverlayEffects(t *testing.T) {
	rs := DefaultRuleset()

	face, object := rs.OverlayEffects(KindPortal, schema.NewFlagSet(schema.PortalDoor))
	assert.Empty(t, face)
	require.Len(t, object, 1, "unset copied flags are not reset by a name")
	assert.Equal(t, Effect{Scope: ScopeObject, Key: schema.KeyPortalIsDoor, Value: true}, object[0])

	face, object = rs.OverlayEffects(KindGeneric, schema.FlagSet(0))
	assert.Nil(t, face)
	assert.Nil(t, object)
}

func TestNumericEffectsByKind(t *testing.T) {
	rs := DefaultRuleset()
	m := schema.NewMaterialRecord("lamp")
	m.LightmapRes = 4

	assert.NotEmpty(t, rs.NumericEffects(KindGeneric, &m))
	assert.NotEmpty(t, rs.NumericEffects(KindGlass, &m))
	assert.Empty(t, rs.NumericEffects(KindSky, &m))
	assert.NotEmpty(t, rs.NumericEffects(KindFogPlane, &m))
	assert.NotEmpty(t, rs.NumericEffects(KindWaterSurface, &m))
	assert.Empty(t, rs.NumericEffects(KindSeamSealer, &m))
}

func TestMaterialNameFlags(t *testing.T) {
	rs := DefaultRuleset()
	assert.Equal(t, schema.NewFlagSet(schema.TwoSided, schema.RenderOnly), rs.MaterialNameFlags("%wall!"))
	assert.True(t, rs.MaterialNameFlags("plain").Empty())
}

func TestObjectNameEffects(t *testing.T) {
	rs := DefaultRuleset()
	assert.Equal(t, map[string]any{
		schema.KeyPoopLighting:    schema.PoopLightingPerPixel,
		schema.KeyPoopPathfinding: schema.PoopPathfindingNone,
	}, keys(rs.ObjectNameEffects("!-crate")))
	assert.Empty(t, rs.ObjectNameEffects("crate!"))
}

func TestProfileFor_UnknownKind(t *testing.T) {
	assert.Equal(t, ProfileFor(KindGeneric).Instanceable, ProfileFor(Kind(99)).Instanceable)
	assert.True(t, ProfileFor(Kind(99)).SurfaceFlags)
}

func TestFieldEffects(t *testing.T) {
	rs := DefaultRuleset()
	m := schema.NewMaterialRecord("tile")
	m.MaterialEffect = "  metal_thin  "

	assert.Equal(t, []Effect{faceEffect(schema.KeyFaceGlobalMaterial, "metal_thin")}, rs.FieldEffects(KindGeneric, &m))
	assert.Len(t, rs.FieldEffects(KindPortal, &m), 1)
	assert.Empty(t, rs.FieldEffects(KindSky, &m))

	m.MaterialEffect = " \t"
	assert.Empty(t, rs.FieldEffects(KindGeneric, &m), "blank effects are not written")
}
