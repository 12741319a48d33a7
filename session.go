package lexflow

import "sync"

var sessionPool = sync.Pool{
	New: func() any {
		return &session{}
	},
}

// session is the state of a single Start call.
//
// pos is the index of the next rune to scan. It can move backwards: when a
// token commits, scanning resumes right after its last rune; when a buildup
// turns out not to be a token, scanning resumes right after its first rune.
type session struct {
	p       *Parser
	text    []rune
	pos     int
	escaped bool
	stopped bool

	m   matcher
	seg segments

	// queued is the committed token still waiting for its trailing text.
	queued *Token
	qStart int
	qEnd   int

	// reported is the index of the next rune OnCharacterProcessed will see.
	reported      int
	reportEscaped bool
}

func (s *session) reset(p *Parser, text []rune) {
	s.p = p
	s.text = text
	s.pos = 0
	s.escaped = false
	s.stopped = false
	s.m.reset()
	s.seg.reset()
	s.queued = nil
	s.qStart = 0
	s.qEnd = 0
	s.reported = 0
	s.reportEscaped = false
}

func (s *session) release() {
	s.p = nil
	s.text = nil
	s.queued = nil
	s.m.reset()
	s.seg.release()
}

func (s *session) run() error {
	l := s.p.listener
	if err := l.OnStart(s.p); err != nil {
		return err
	}
	for !s.stopped {
		if s.pos >= len(s.text) {
			if s.m.idle() {
				break
			}
			if err := s.settle(); err != nil {
				return err
			}
			continue
		}
		at := s.pos
		s.pos++
		if err := s.step(s.text[at], at); err != nil {
			return err
		}
	}
	if s.queued != nil {
		ev := s.event(NoToken)
		s.queued = nil
		if err := s.deliver(ev); err != nil {
			return err
		}
	}
	if err := s.report(min(s.pos, len(s.text))); err != nil {
		return err
	}
	return l.OnEnd(s.p)
}

func (s *session) step(r rune, at int) error {
	escaped := s.escaped
	s.escaped = false
	switch s.p.cfg.policy.classify(r, escaped) {
	case classEscape:
		s.escaped = true
		return nil
	case classIgnore:
		if !s.m.idle() {
			// Ignorable runes end the buildup; r is scanned again once it
			// is settled.
			return s.settle()
		}
		s.seg.appendRune(r)
		return nil
	}
	mark := s.seg.mark()
	s.seg.appendRune(r)
	switch s.m.feed(&s.p.set, r, at, mark) {
	case feedCommit:
		return s.commit()
	case feedExhausted:
		return s.settle()
	}
	return nil
}

// settle resolves a buildup that cannot grow any further.
func (s *session) settle() error {
	if s.m.exact != nil {
		return s.commit()
	}
	// Not a token: the first rune is literal and the rest is scanned again,
	// since a token may start inside the failed buildup.
	start := s.m.start
	s.seg.truncate(s.m.mark)
	s.seg.appendRune(s.text[start])
	s.m.reset()
	s.pos = start + 1
	s.escaped = false
	return nil
}

// commit finalizes the matcher's exact token and hands it to the queue.
func (s *session) commit() error {
	tok, start, end := s.m.exact, s.m.start, s.m.exactEnd
	s.seg.truncate(s.m.mark)
	s.m.reset()
	s.pos = end + 1
	s.escaped = false

	s.p.set.release()
	var (
		ev      TokenEvent
		pending bool
	)
	if s.queued != nil {
		ev, pending = s.event(tok), true
	}
	// From here on runes belong to the trailing text of tok.
	s.seg.rotate()
	s.queued, s.qStart, s.qEnd = tok, start, end
	if pending {
		if err := s.deliver(ev); err != nil {
			return err
		}
	}
	if err := s.report(start); err != nil {
		return err
	}
	s.reported = max(s.reported, end+1)
	return s.p.listener.BeforeTokenProcessed(s.p, tok)
}

// event builds the event for the queued token. The lead buffer holds its
// leading text and the active buffer everything collected since.
func (s *session) event(next *Token) TokenEvent {
	return TokenEvent{
		Token:    s.queued,
		Next:     next,
		Start:    s.qStart,
		End:      s.qEnd,
		Leading:  string(s.seg.lead()),
		Trailing: string(s.seg.current()),
	}
}

func (s *session) deliver(ev TokenEvent) error {
	if !s.p.cfg.manualCursor {
		s.p.loc = ev.End
	}
	return s.p.listener.OnTokenProcessed(s.p, ev)
}

// report replays runes up to until to OnCharacterProcessed. Escape runes are
// skipped, so the reported runes are exactly the leading and trailing text.
func (s *session) report(until int) error {
	if !s.p.cfg.notifyChars {
		if until > s.reported {
			s.reported = until
		}
		return nil
	}
	pol := s.p.cfg.policy
	for s.reported < until {
		i := s.reported
		s.reported++
		r := s.text[i]
		if pol.escape && r == pol.escapeChar && !s.reportEscaped {
			s.reportEscaped = true
			continue
		}
		s.reportEscaped = false
		if !s.p.cfg.manualCursor {
			s.p.loc = i
		}
		if err := s.p.listener.OnCharacterProcessed(s.p, r); err != nil {
			return err
		}
	}
	return nil
}
