package lexflow

import "encoding/json"

// TokenEvent describes one resolved token together with the literal text on
// either side of it. Events are delivered one token behind the scanner, since
// the trailing text is only known once the next token is found.
type TokenEvent struct {
	// Token is the matched token.
	Token *Token
	// Next is the token that ended the trailing text, or NoToken.
	Next *Token
	// Start and End are the rune offsets of the first and last rune of the
	// match, both inclusive.
	Start int
	End   int
	// Leading is the text since the previous token (or the start of input).
	Leading string
	// Trailing is the text up to the next token (or the end of input).
	Trailing string
}

type eventJSON struct {
	Token    string `json:"token"`
	Pattern  string `json:"pattern"`
	Next     string `json:"next,omitempty"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Leading  string `json:"leading"`
	Trailing string `json:"trailing"`
}

// MarshalJSON encodes the event with token names in place of token values.
func (e TokenEvent) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		Token:    e.Token.Name(),
		Pattern:  e.Token.Pattern(),
		Start:    e.Start,
		End:      e.End,
		Leading:  e.Leading,
		Trailing: e.Trailing,
	}
	if !e.Next.IsNone() {
		out.Next = e.Next.Name()
	}
	return json.Marshal(out)
}
