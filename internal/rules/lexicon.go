package rules

import "github.com/Simouie/Project-Furnace/pkg/schema"

// Lexicon maps a name symbol to the effect it stands for.
type Lexicon map[rune]Effect

// Lookup returns the effect for r. Unknown symbols have none.
func (l Lexicon) Lookup(r rune) (Effect, bool) {
	e, ok := l[r]
	return e, ok
}

// ObjectLexicon returns the symbols understood in object names.
func ObjectLexicon() Lexicon {
	return Lexicon{
		'!': objectEffect(schema.KeyPoopLighting, schema.PoopLightingPerPixel),
		'?': objectEffect(schema.KeyPoopLighting, schema.PoopLightingPerVertex),
		'-': objectEffect(schema.KeyPoopPathfinding, schema.PoopPathfindingNone),
		'+': objectEffect(schema.KeyPoopPathfinding, schema.PoopPathfindingStatic),
		'*': objectEffect(schema.KeyPoopRenderOnly, true),
		'&': objectEffect(schema.KeyPoopChopsPortals, true),
		'^': objectEffect(schema.KeyPoopDoesNotBlockAOE, true),
		'<': objectEffect(schema.KeyPoopExcludedFromLightprobe, true),
		'|': objectEffect(schema.KeyDecalOffset, true),
	}
}

// materialSymbols is the material-name symbol set. '0' is listed for
// completeness but a digit always ends the symbol run first.
var materialSymbols = map[rune]schema.Flag{
	'%':  schema.TwoSided,
	'#':  schema.Transparent1Sided,
	'?':  schema.Transparent2Sided,
	'!':  schema.RenderOnly,
	'@':  schema.CollisionOnly,
	'*':  schema.SphereCollisionOnly,
	'$':  schema.FogPlane,
	'^':  schema.Ladder,
	'-':  schema.Breakable,
	'&':  schema.AIDeafening,
	'=':  schema.NoShadow,
	'.':  schema.ShadowOnly,
	';':  schema.LightmapOnly,
	')':  schema.Precise,
	'>':  schema.Conveyor,
	'<':  schema.Portal1Way,
	'|':  schema.PortalDoor,
	'~':  schema.PortalVisBlocker,
	'(':  schema.DislikePhotons,
	'{':  schema.IgnoredByLightmaps,
	'}':  schema.BlocksSound,
	'[':  schema.DecalOffset,
	'\'': schema.WaterSurface,
	'0':  schema.SlipSurface,
	']':  schema.GroupTransparentsByPlane,
}

// MaterialLexicon returns the symbols understood in material names. Each
// effect sets one legacy flag on the material overlay.
func MaterialLexicon() Lexicon {
	lex := make(Lexicon, len(materialSymbols))
	for r, f := range materialSymbols {
		lex[r] = FlagEffect(f)
	}
	return lex
}

// FlagEffect is the material-scope effect that sets f.
func FlagEffect(f schema.Flag) Effect {
	return Effect{Scope: ScopeMaterial, Key: f.String(), Value: true}
}

// FlagOverlay folds material-scope effects into a flag set. Other scopes and
// keys that are not legacy flags are ignored.
func FlagOverlay(effects []Effect) schema.FlagSet {
	var set schema.FlagSet
	for _, e := range effects {
		if e.Scope != ScopeMaterial {
			continue
		}
		on, _ := e.Value.(bool)
		if !on {
			continue
		}
		f, err := schema.ParseFlag(e.Key)
		if err != nil {
			continue
		}
		set = set.With(f)
	}
	return set
}
