package rules

import (
	"fmt"
	"unicode"
)

// Precedence decides which end of a name wins when both carry symbols.
type Precedence uint8

const (
	PrefixWins Precedence = iota
	SuffixWins
)

// String returns the precedence name used in config files.
func (p Precedence) String() string {
	switch p {
	case PrefixWins:
		return "prefix"
	case SuffixWins:
		return "suffix"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// ParsePrecedence resolves "prefix" or "suffix".
func ParsePrecedence(s string) (Precedence, error) {
	switch s {
	case "prefix", "":
		return PrefixWins, nil
	case "suffix":
		return SuffixWins, nil
	default:
		return 0, fmt.Errorf("unknown name precedence %q", s)
	}
}

// isNameChar matches letters and every numeric rune, including superscripts
// and roman numerals.
func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ParsePrefix returns the effects of the symbols leading name, in scan order.
// Scanning stops at the first letter or number.
func ParsePrefix(name string, lex Lexicon) []Effect {
	var out []Effect
	for _, r := range name {
		if isNameChar(r) {
			break
		}
		if e, ok := lex.Lookup(r); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseSuffix is ParsePrefix over the reversed name.
func ParseSuffix(name string, lex Lexicon) []Effect {
	runes := []rune(name)
	var out []Effect
	for i := len(runes) - 1; i >= 0; i-- {
		if isNameChar(runes[i]) {
			break
		}
		if e, ok := lex.Lookup(runes[i]); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseName parses both ends of name. The winning end is emitted last so it
// overrides the other under last-write-wins.
func ParseName(name string, lex Lexicon, p Precedence) []Effect {
	prefix := ParsePrefix(name, lex)
	suffix := ParseSuffix(name, lex)
	if p == SuffixWins {
		return append(prefix, suffix...)
	}
	return append(suffix, prefix...)
}

// LeadingSymbols returns the run of non-alphanumeric runes at the start of name.
func LeadingSymbols(name string) string {
	for i, r := range name {
		if isNameChar(r) {
			return name[:i]
		}
	}
	return name
}
