package lexflow

import "unicode"

// DefaultEscapeCharacter is the escape rune used unless overridden.
const DefaultEscapeCharacter = '\\'

type runeClass uint8

const (
	// classMatch runes extend the buildup.
	classMatch runeClass = iota
	// classEscape is the escape rune itself; it is dropped from all output.
	classEscape
	// classIgnore runes are literal text that never takes part in matching.
	classIgnore
)

type policy struct {
	escape      bool
	escapeChar  rune
	ignoreSpace bool
	isSpace     func(rune) bool
}

func defaultPolicy() policy {
	return policy{
		escape:      true,
		escapeChar:  DefaultEscapeCharacter,
		ignoreSpace: true,
		isSpace:     unicode.IsSpace,
	}
}

// classify decides how r is treated. escaped reports whether the previous
// rune was an unescaped escape rune.
func (p policy) classify(r rune, escaped bool) runeClass {
	if p.escape && escaped {
		return classIgnore
	}
	if p.ignoreSpace && p.isSpace(r) {
		return classIgnore
	}
	if p.escape && r == p.escapeChar {
		return classEscape
	}
	return classMatch
}
