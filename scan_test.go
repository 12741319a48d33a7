package lexflow

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRequiresReader(t *testing.T) {
	err := Scan(ScanRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reader is nil")
}

func TestScanRejectsValidateAndSanitize(t *testing.T) {
	err := Scan(ScanRequest{Reader: strings.NewReader("x"), Validate: true, Sanitize: true})
	require.Error(t, err)
}

func TestScanDeliversEvents(t *testing.T) {
	rec := &recorder{}
	err := Scan(ScanRequest{
		Reader:   strings.NewReader("a.b,c"),
		Listener: rec.listener(),
		Tokens:   punctuation(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DOT", "COMMA"}, rec.names())
	assert.Equal(t, []string{"b", "c"}, rec.trailing())
}

func TestScanOneByteReads(t *testing.T) {
	rec := &recorder{}
	err := Scan(ScanRequest{
		Reader:   iotest.OneByteReader(strings.NewReader("ä→ö.ü")),
		Listener: rec.listener(),
		Tokens:   []*Token{NewToken("ARROW", "→"), NewToken("DOT", ".")},
		Validate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ARROW", "DOT"}, rec.names())
	assert.Equal(t, []string{"ä", "ö"}, rec.leading())
	assert.Equal(t, []int{1, 3}, rec.starts())
}

func TestScanValidateRejectsBinary(t *testing.T) {
	err := Scan(ScanRequest{
		Reader:   strings.NewReader("abc\x00def"),
		Validate: true,
	})
	assert.ErrorIs(t, err, ErrBinaryInput)
}

func TestScanValidateRejectsTruncatedTail(t *testing.T) {
	err := Scan(ScanRequest{
		Reader:   strings.NewReader("abc\xe2\x86"),
		Validate: true,
	})
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestScanSanitize(t *testing.T) {
	rec := &recorder{}
	err := Scan(ScanRequest{
		Reader:   strings.NewReader("a\x01b\xff.c"),
		Listener: rec.listener(),
		Tokens:   punctuation(),
		Sanitize: true,
	})
	require.NoError(t, err)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "ab", rec.events[0].Leading)
	assert.Equal(t, 2, rec.events[0].Start)
}

func TestScanReadError(t *testing.T) {
	boom := errors.New("boom")
	err := Scan(ScanRequest{Reader: iotest.ErrReader(boom)})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "scan: read")
}

func TestScanHookErrorUnwrapped(t *testing.T) {
	boom := errors.New("boom")
	err := Scan(ScanRequest{
		Reader:   strings.NewReader("a.b"),
		Tokens:   punctuation(),
		Listener: Hooks{End: func(*Parser) error { return boom }},
	})
	assert.Same(t, boom, err)
}

func TestHTTPScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "key=value;other=thing")
	}))
	defer srv.Close()

	rec := &recorder{}
	err := HTTPScan(context.Background(), HTTPScanRequest{
		URL:      srv.URL,
		Client:   srv.Client(),
		Listener: rec.listener(),
		Tokens:   []*Token{NewToken("EQ", "="), NewToken("SEMI", ";")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"EQ", "SEMI", "EQ"}, rec.names())
	assert.Equal(t, []string{"key", "value", "other"}, rec.leading())
}

func TestHTTPScanStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	err := HTTPScan(context.Background(), HTTPScanRequest{URL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPScanRejectsScheme(t *testing.T) {
	err := HTTPScan(context.Background(), HTTPScanRequest{URL: "ftp://example.com/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestHTTPScanRequiresURL(t *testing.T) {
	err := HTTPScan(context.Background(), HTTPScanRequest{})
	require.Error(t, err)
}
