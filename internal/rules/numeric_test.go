package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

func TestLightmapBuckets(t *testing.T) {
	tests := []struct {
		res    float64
		want   int
		wantOK bool
	}{
		{0.5, 1, true},
		{0, 1, true},
		{2.0, 5, true},
		{1.0001, 5, true},
		{1.0, 0, false},
	}
	for _, tt := range tests {
		got, ok := LightmapBuckets.Bucket(tt.res)
		assert.Equal(t, tt.wantOK, ok, "res=%v", tt.res)
		assert.Equal(t, tt.want, got, "res=%v", tt.res)
	}
}

func TestLightmapRound(t *testing.T) {
	tests := []struct {
		res    float64
		want   int
		wantOK bool
	}{
		{1.0, 0, false},
		{0.5, 2, true},
		{0, 0, true},
		{2.0, 6, true},
		{10, schema.LightmapResolutionMax, true},
		{1e19, schema.LightmapResolutionMax, true},
		{1e300, schema.LightmapResolutionMax, true},
		{math.Inf(1), schema.LightmapResolutionMax, true},
		{-1e19, schema.LightmapResolutionMin, true},
		{math.Inf(-1), schema.LightmapResolutionMin, true},
		{math.NaN(), 0, false},
	}
	for _, tt := range tests {
		got, ok := LightmapRound.Bucket(tt.res)
		assert.Equal(t, tt.wantOK, ok, "res=%v", tt.res)
		assert.Equal(t, tt.want, got, "res=%v", tt.res)
	}
}

func TestParseLightmapPolicy(t *testing.T) {
	p, err := ParseLightmapPolicy("round")
	require.NoError(t, err)
	assert.Equal(t, LightmapRound, p)
	assert.Equal(t, "round", p.String())

	_, err = ParseLightmapPolicy("ceil")
	assert.Error(t, err)
}

func TestColorEffect(t *testing.T) {
	_, ok := ColorEffect(schema.KeyAdditiveTransparency, schema.Color{})
	assert.False(t, ok)

	e, ok := ColorEffect(schema.KeyAdditiveTransparency, schema.Color{B: 0.001})
	require.True(t, ok)
	assert.Equal(t, ScopeFace, e.Scope)
	assert.Equal(t, schema.Color{B: 0.001}, e.Value)
}

func TestEmissiveEffects(t *testing.T) {
	assert.Nil(t, EmissiveEffects(schema.Lighting{Power: 0, Quality: 1}))
	assert.Nil(t, EmissiveEffects(schema.Lighting{Power: -2}))

	l := schema.Lighting{Color: schema.Color{R: 1}, Power: 4, Quality: 1, EmissiveFocus: 0.5, UseShaderGel: true}
	effects := EmissiveEffects(l)
	keys := make([]string, 0, len(effects))
	for _, e := range effects {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{
		schema.KeyEmissiveColor, schema.KeyEmissivePower, schema.KeyEmissiveQuality,
		schema.KeyEmissiveFocus, schema.KeyUseShaderGel, schema.KeyEmissivePerUnit,
	}, keys)

	l.AttenuationEnabled = true
	l.FalloffDistance, l.CutoffDistance = 2, 8
	assert.Len(t, EmissiveEffects(l), 8)
}

func TestNumericEffects(t *testing.T) {
	m := schema.NewMaterialRecord("lamp")
	assert.Empty(t, NumericEffects(&m, LightmapBuckets))

	m.LightmapRes = 0.25
	m.TwoSidedTint = schema.Color{G: 0.3}
	effects := NumericEffects(&m, LightmapBuckets)
	require.Len(t, effects, 2)
	assert.Equal(t, schema.KeyTranslucencyTint, effects[0].Key)
	assert.Equal(t, faceEffect(schema.KeyLightmapResolution, 1), effects[1])
}
