package lexflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenEventJSON(t *testing.T) {
	ev := TokenEvent{
		Token:    NewToken("DOT", "."),
		Next:     NewToken("COMMA", ","),
		Start:    3,
		End:      3,
		Leading:  "abc",
		Trailing: "d",
	}
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"DOT","pattern":".","next":"COMMA","start":3,"end":3,"leading":"abc","trailing":"d"}`, string(data))
}

func TestTokenEventJSONOmitsNoToken(t *testing.T) {
	ev := TokenEvent{Token: NewToken("DOT", "."), Next: NoToken}
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"next"`)
}

func TestTokenAccessors(t *testing.T) {
	tok := NewRuneToken("ARROW", '-', '>')
	assert.Equal(t, "ARROW", tok.Name())
	assert.Equal(t, "->", tok.Pattern())
	assert.Equal(t, 2, tok.Len())
	assert.Equal(t, "ARROW(->)", tok.String())
	assert.False(t, tok.IsNone())

	var nilTok *Token
	assert.True(t, nilTok.IsNone())
	assert.Equal(t, "", nilTok.Name())
	assert.Equal(t, "<none>", NoToken.String())
}
