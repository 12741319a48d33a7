package lexflow

// Token is a named literal pattern recognized as a boundary in the text.
//
// Tokens are compared by identity, so two tokens may share a name. A token
// with an empty pattern is accepted but never matches.
type Token struct {
	name    string
	pattern []rune
}

// NoToken is reported as TokenEvent.Next when no token follows.
var NoToken = &Token{}

// NewToken creates a token from a string pattern.
func NewToken(name, pattern string) *Token {
	return &Token{name: name, pattern: []rune(pattern)}
}

// NewRuneToken creates a token from individual runes.
func NewRuneToken(name string, pattern ...rune) *Token {
	return &Token{name: name, pattern: append([]rune(nil), pattern...)}
}

// Name returns the token name.
func (t *Token) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Pattern returns the literal text the token matches.
func (t *Token) Pattern() string {
	if t == nil {
		return ""
	}
	return string(t.pattern)
}

// Len returns the pattern length in runes.
func (t *Token) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pattern)
}

// IsNone reports whether t is the NoToken sentinel or nil.
func (t *Token) IsNone() bool {
	return t == nil || t == NoToken
}

func (t *Token) String() string {
	if t.IsNone() {
		return "<none>"
	}
	return t.name + "(" + string(t.pattern) + ")"
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}
