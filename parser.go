package lexflow

// Parser scans text for literal tokens and reports each one together with the
// text around it. A Parser is not safe for concurrent use; hooks may call any
// of its methods while a scan is running.
type Parser struct {
	cfg      config
	set      tokenSet
	listener Listener
	sess     *session
	loc      int
}

// New returns a parser configured by opts.
func New(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	p := &Parser{cfg: cfg, set: newTokenSet()}
	p.listener = cfg.listener
	if p.listener == nil {
		p.listener = NopListener{}
	}
	if len(cfg.tokens) > 0 {
		p.set.set(cfg.tokens)
	}
	p.cfg.tokens = nil
	return p
}

// Start scans text, calling the listener as tokens are found. It returns the
// first error a hook returns. Calling Start from a hook while a scan is
// running does nothing.
func (p *Parser) Start(text string) error {
	if p.sess != nil {
		return nil
	}
	return p.StartRunes([]rune(text))
}

// StartRunes is Start for text that is already decoded.
func (p *Parser) StartRunes(text []rune) error {
	if p.sess != nil {
		return nil
	}
	s := sessionPool.Get().(*session)
	s.reset(p, text)
	p.sess = s
	p.loc = 0
	defer func() {
		p.sess = nil
		s.release()
		sessionPool.Put(s)
	}()
	return s.run()
}

// Stop ends the running scan once the current hook returns. The queued token
// is still delivered and OnEnd still runs.
func (p *Parser) Stop() {
	if p.sess != nil {
		p.sess.stopped = true
	}
}

// Running reports whether a scan is in progress.
func (p *Parser) Running() bool {
	return p.sess != nil
}

// MoveForward skips the next unscanned rune. The skipped rune is still part of
// the surrounding text but cannot start or extend a token. Skipping an escape
// rune drops it as scanning would, and the rune after it stays escaped.
func (p *Parser) MoveForward() {
	s := p.sess
	if s == nil {
		return
	}
	if s.pos < len(s.text) {
		r := s.text[s.pos]
		pol := p.cfg.policy
		switch {
		case s.escaped:
			s.escaped = false
			s.seg.appendRune(r)
		case pol.escape && r == pol.escapeChar:
			s.escaped = true
		default:
			s.seg.appendRune(r)
		}
		s.pos++
	}
	p.loc = s.pos
}

// Location returns the rune offset of the last event reported, or the
// position MoveForward left the cursor at.
func (p *Parser) Location() int {
	return p.loc
}

// SetTokens replaces the registered tokens.
func (p *Parser) SetTokens(tokens ...*Token) {
	p.set.set(tokens)
}

// AddTokens registers more tokens. When two tokens have the same pattern the
// one registered first is reported.
func (p *Parser) AddTokens(tokens ...*Token) {
	p.set.add(tokens)
}

// Tokens returns a copy of the registered tokens.
func (p *Parser) Tokens() []*Token {
	return p.set.snapshot()
}

// SetTokenLimit restricts matching to tokens whose pattern starts with one of
// prefixes, beginning with the next scanned rune.
func (p *Parser) SetTokenLimit(prefixes ...string) {
	p.set.setLimit(prefixes)
}

// ClearTokenLimit lifts any restriction set with SetTokenLimit.
func (p *Parser) ClearTokenLimit() {
	p.set.clearLimit()
}

// TokenLimit returns the active prefixes.
func (p *Parser) TokenLimit() []string {
	return p.set.limit.snapshot()
}

// SetLimitAffectsNextTrailing controls how long a token limit lasts. When set
// to false the limit is lifted as soon as the next token is found, and the
// setting reverts to true.
func (p *Parser) SetLimitAffectsNextTrailing(v bool) {
	p.set.limit.affectsNextTrailing = v
}

// LimitAffectsNextTrailing reports the current limit lifetime setting.
func (p *Parser) LimitAffectsNextTrailing() bool {
	return p.set.limit.affectsNextTrailing
}
