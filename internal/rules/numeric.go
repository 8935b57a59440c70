package rules

import (
	"fmt"
	"math"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// LightmapPolicy selects how the continuous legacy lightmap resolution is
// turned into a target bucket.
type LightmapPolicy uint8

const (
	// LightmapBuckets maps below-neutral to 1 and above-neutral to 5.
	LightmapBuckets LightmapPolicy = iota
	// LightmapRound maps to round(res*3) clamped to the target range.
	LightmapRound
)

// String returns the policy name used in config files.
func (p LightmapPolicy) String() string {
	switch p {
	case LightmapBuckets:
		return "bucket"
	case LightmapRound:
		return "round"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// ParseLightmapPolicy resolves "bucket" or "round".
func ParseLightmapPolicy(s string) (LightmapPolicy, error) {
	switch s {
	case "bucket", "":
		return LightmapBuckets, nil
	case "round":
		return LightmapRound, nil
	default:
		return 0, fmt.Errorf("unknown lightmap policy %q", s)
	}
}

// Bucket returns the target resolution scale for res, or false when the
// value is already the target default and nothing should be written.
func (p LightmapPolicy) Bucket(res float64) (int, bool) {
	switch p {
	case LightmapRound:
		if math.IsNaN(res) {
			return 0, false
		}
		// clamp before converting; out-of-range float to int is undefined
		v := math.Round(res * schema.LightmapResolutionDefault)
		v = math.Max(schema.LightmapResolutionMin, math.Min(v, schema.LightmapResolutionMax))
		scale := int(v)
		if scale == schema.LightmapResolutionDefault {
			return 0, false
		}
		return scale, true
	default:
		switch {
		case res < schema.DefaultLightmapRes:
			return 1, true
		case res > schema.DefaultLightmapRes:
			return 5, true
		}
		return 0, false
	}
}

// LightmapEffect returns the resolution scale effect for res, if any.
func LightmapEffect(res float64, p LightmapPolicy) (Effect, bool) {
	scale, ok := p.Bucket(res)
	if !ok {
		return Effect{}, false
	}
	return faceEffect(schema.KeyLightmapResolution, scale), true
}

// ColorEffect returns an effect for c unless its HSV value is zero, which is
// indistinguishable from unset.
func ColorEffect(key string, c schema.Color) (Effect, bool) {
	if c.Value() <= 0 {
		return Effect{}, false
	}
	return faceEffect(key, c), true
}

// EmissiveEffects returns the emissive lighting group, all or nothing.
func EmissiveEffects(l schema.Lighting) []Effect {
	if l.Power <= 0 {
		return nil
	}
	out := []Effect{
		faceEffect(schema.KeyEmissiveColor, l.Color),
		faceEffect(schema.KeyEmissivePower, l.Power),
		faceEffect(schema.KeyEmissiveQuality, l.Quality),
		faceEffect(schema.KeyEmissiveFocus, l.EmissiveFocus),
	}
	if l.AttenuationEnabled {
		out = append(out,
			faceEffect(schema.KeyAttenuationFalloff, l.FalloffDistance),
			faceEffect(schema.KeyAttenuationCutoff, l.CutoffDistance),
		)
	}
	return append(out,
		faceEffect(schema.KeyUseShaderGel, l.UseShaderGel),
		faceEffect(schema.KeyEmissivePerUnit, l.PowerPerUnitArea),
	)
}

// NumericEffects runs every numeric transform for m.
func NumericEffects(m *schema.MaterialRecord, p LightmapPolicy) []Effect {
	var out []Effect
	if e, ok := ColorEffect(schema.KeyAdditiveTransparency, m.AdditiveTransparency); ok {
		out = append(out, e)
	}
	if e, ok := ColorEffect(schema.KeyTranslucencyTint, m.TwoSidedTint); ok {
		out = append(out, e)
	}
	if e, ok := LightmapEffect(m.LightmapRes, p); ok {
		out = append(out, e)
	}
	return append(out, EmissiveEffects(m.Lighting)...)
}
