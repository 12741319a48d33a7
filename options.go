package lexflow

import "unicode"

// Option configures a Parser.
type Option func(*config)

type config struct {
	policy       policy
	notifyChars  bool
	manualCursor bool
	tokens       []*Token
	listener     Listener
}

func defaultConfig() config {
	return config{policy: defaultPolicy()}
}

// WithTokens registers tokens in addition to any registered by earlier options.
func WithTokens(tokens ...*Token) Option {
	return func(cfg *config) {
		cfg.tokens = append(cfg.tokens, tokens...)
	}
}

// WithListener sets the hooks the parser calls. A nil listener ignores all
// events.
func WithListener(l Listener) Option {
	return func(cfg *config) {
		cfg.listener = l
	}
}

// WithEscape enables or disables the escape character. Enabled by default.
func WithEscape(enabled bool) Option {
	return func(cfg *config) {
		cfg.policy.escape = enabled
	}
}

// WithEscapeCharacter sets the escape rune. Tokens cannot contain it while
// escaping is enabled.
func WithEscapeCharacter(r rune) Option {
	return func(cfg *config) {
		cfg.policy.escapeChar = r
	}
}

// WithIgnoreWhitespace controls whether whitespace is excluded from matching.
// Ignored whitespace still appears in leading and trailing text. Enabled by
// default; disable it to use whitespace in token patterns.
func WithIgnoreWhitespace(enabled bool) Option {
	return func(cfg *config) {
		cfg.policy.ignoreSpace = enabled
	}
}

// WithWhitespaceFunc replaces unicode.IsSpace as the whitespace test.
func WithWhitespaceFunc(fn func(rune) bool) Option {
	return func(cfg *config) {
		if fn == nil {
			fn = unicode.IsSpace
		}
		cfg.policy.isSpace = fn
	}
}

// WithCharacterNotifications enables OnCharacterProcessed. Scanning is slower
// with it enabled.
func WithCharacterNotifications(enabled bool) Option {
	return func(cfg *config) {
		cfg.notifyChars = enabled
	}
}

// WithManualCursor makes Location move only through MoveForward.
func WithManualCursor(enabled bool) Option {
	return func(cfg *config) {
		cfg.manualCursor = enabled
	}
}
