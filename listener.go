package lexflow

// Listener receives parser callbacks. All hooks run synchronously on the
// goroutine that called Start and block scanning until they return. A
// non-nil error aborts the scan and is returned by Start as is.
//
// Hook order for a text with tokens T1 and T2:
//
//	OnStart
//	OnCharacterProcessed (leading text of T1)
//	BeforeTokenProcessed(T1)
//	OnTokenProcessed(T1)
//	OnCharacterProcessed (text between T1 and T2)
//	BeforeTokenProcessed(T2)
//	OnTokenProcessed(T2)
//	OnCharacterProcessed (trailing text of T2)
//	OnEnd
//
// OnCharacterProcessed only fires when enabled with WithCharacterNotifications.
type Listener interface {
	// OnStart runs once before the first rune is scanned.
	OnStart(p *Parser) error
	// OnEnd runs once after the final token has been delivered.
	OnEnd(p *Parser) error
	// BeforeTokenProcessed runs when a token commits, before its trailing
	// text is collected. Changing the token limit here applies to the text
	// right after tok.
	BeforeTokenProcessed(p *Parser, tok *Token) error
	// OnTokenProcessed delivers a token once its trailing text is known.
	OnTokenProcessed(p *Parser, ev TokenEvent) error
	// OnCharacterProcessed reports runes outside token matches in text order.
	OnCharacterProcessed(p *Parser, r rune) error
}

// NopListener implements Listener with hooks that do nothing. Embed it to
// override only some hooks.
type NopListener struct{}

func (NopListener) OnStart(*Parser) error {
	return nil
}

func (NopListener) OnEnd(*Parser) error {
	return nil
}

func (NopListener) BeforeTokenProcessed(*Parser, *Token) error {
	return nil
}

func (NopListener) OnTokenProcessed(*Parser, TokenEvent) error {
	return nil
}

func (NopListener) OnCharacterProcessed(*Parser, rune) error {
	return nil
}

// Hooks adapts a set of optional functions to Listener.
type Hooks struct {
	Start       func(p *Parser) error
	End         func(p *Parser) error
	BeforeToken func(p *Parser, tok *Token) error
	Token       func(p *Parser, ev TokenEvent) error
	Character   func(p *Parser, r rune) error
}

func (h Hooks) OnStart(p *Parser) error {
	if h.Start == nil {
		return nil
	}
	return h.Start(p)
}

func (h Hooks) OnEnd(p *Parser) error {
	if h.End == nil {
		return nil
	}
	return h.End(p)
}

func (h Hooks) BeforeTokenProcessed(p *Parser, tok *Token) error {
	if h.BeforeToken == nil {
		return nil
	}
	return h.BeforeToken(p, tok)
}

func (h Hooks) OnTokenProcessed(p *Parser, ev TokenEvent) error {
	if h.Token == nil {
		return nil
	}
	return h.Token(p, ev)
}

func (h Hooks) OnCharacterProcessed(p *Parser, r rune) error {
	if h.Character == nil {
		return nil
	}
	return h.Character(p, r)
}
