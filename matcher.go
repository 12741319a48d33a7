package lexflow

type feedResult uint8

const (
	// feedLiteral: the rune starts no token.
	feedLiteral feedResult = iota
	// feedPending: a longer token may still match; nothing is decided yet.
	feedPending
	// feedCommit: the buildup exactly matches a token and nothing longer can.
	feedCommit
	// feedExhausted: no candidate survives the rune. Any exact match found
	// earlier in the buildup is final; otherwise the buildup was not a token.
	feedExhausted
)

// matcher is the maximal-munch state for the buildup in progress.
//
// Idle: start < 0. Building: candidates left, exact == nil. ExactFound:
// exact != nil, possibly with longer candidates still alive.
type matcher struct {
	buildup  []rune
	cands    []*Token
	spare    []*Token
	exact    *Token
	exactEnd int
	start    int
	// mark is the active segment length before the buildup's first rune.
	mark int

	buildupArr [64]rune
	candsArr   [16]*Token
	spareArr   [16]*Token
}

func (m *matcher) reset() {
	if m.buildup == nil {
		m.buildup = m.buildupArr[:0]
		m.cands = m.candsArr[:0]
		m.spare = m.spareArr[:0]
	}
	m.buildup = m.buildup[:0]
	clear(m.cands)
	m.cands = m.cands[:0]
	m.exact = nil
	m.exactEnd = -1
	m.start = -1
	m.mark = 0
}

func (m *matcher) idle() bool {
	return m.start < 0
}

// feed extends the buildup with r found at position at. mark is the active
// segment length before r was appended to it.
func (m *matcher) feed(set *tokenSet, r rune, at, mark int) feedResult {
	var pool []*Token
	if m.idle() {
		pool = set.lookup(r)
		if len(pool) == 0 {
			return feedLiteral
		}
		m.start = at
		m.mark = mark
	} else {
		pool = m.cands
	}
	m.buildup = append(m.buildup, r)
	n := len(m.buildup)

	// Every token in pool already agrees with the first n-1 runes of the
	// buildup, so only the newest rune needs checking.
	next := m.spare[:0]
	var hit *Token
	for _, tok := range pool {
		if len(tok.pattern) < n || tok.pattern[n-1] != r {
			continue
		}
		if len(tok.pattern) > n {
			next = append(next, tok)
		} else if hit == nil {
			hit = tok
		}
	}
	m.spare = m.cands[:0]
	m.cands = next

	if hit != nil {
		m.exact = hit
		m.exactEnd = at
	}
	switch {
	case len(next) > 0:
		return feedPending
	case hit != nil:
		return feedCommit
	default:
		return feedExhausted
	}
}
