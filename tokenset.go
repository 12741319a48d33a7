package lexflow

// tokenSet owns the registered tokens and the first-rune index derived from
// them. The index is rebuilt synchronously on every change so a change made
// from a hook applies to the next scanned rune.
type tokenSet struct {
	tokens []*Token
	limit  limiter
	index  map[rune][]*Token
}

func newTokenSet() tokenSet {
	s := tokenSet{limit: limiter{affectsNextTrailing: true}}
	s.rebuild()
	return s
}

func (s *tokenSet) set(tokens []*Token) {
	s.tokens = append(make([]*Token, 0, len(tokens)), tokens...)
	s.rebuild()
}

func (s *tokenSet) add(tokens []*Token) {
	s.tokens = append(s.tokens, tokens...)
	s.rebuild()
}

func (s *tokenSet) setLimit(prefixes []string) {
	s.limit.set(prefixes)
	s.rebuild()
}

func (s *tokenSet) clearLimit() {
	s.limit.clear()
	s.rebuild()
}

// release applies limiter auto-release at a committed boundary.
func (s *tokenSet) release() {
	if s.limit.release() {
		s.rebuild()
	}
}

// rebuild indexes every non-empty token admitted by the limiter under its
// first rune. Registration order is preserved within each bucket.
func (s *tokenSet) rebuild() {
	idx := make(map[rune][]*Token, len(s.tokens))
	for _, tok := range s.tokens {
		if tok == nil || len(tok.pattern) == 0 {
			continue
		}
		if !s.limit.admits(tok.pattern) {
			continue
		}
		first := tok.pattern[0]
		idx[first] = append(idx[first], tok)
	}
	s.index = idx
}

func (s *tokenSet) lookup(r rune) []*Token {
	return s.index[r]
}

func (s *tokenSet) snapshot() []*Token {
	return append([]*Token(nil), s.tokens...)
}
