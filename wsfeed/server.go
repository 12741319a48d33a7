// Package wsfeed serves lexflow scans over WebSocket. Every text message a
// client sends is scanned as one document and answered with a stream of JSON
// frames: a start frame, one frame per token, then an end or error frame.
package wsfeed

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"pkt.systems/lexflow"
)

// DefaultMaxMessageBytes bounds client messages when Config leaves it unset.
const DefaultMaxMessageBytes = 1 << 20

// Frame types.
const (
	FrameStart = "start"
	FrameToken = "token"
	FrameEnd   = "end"
	FrameError = "error"
)

// Frame is one JSON message sent to the client.
type Frame struct {
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`
	Type    string `json:"type"`
	Event   *Event `json:"event,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Event is the wire form of a lexflow.TokenEvent.
type Event struct {
	Token    string `json:"token"`
	Pattern  string `json:"pattern"`
	Next     string `json:"next,omitempty"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Leading  string `json:"leading"`
	Trailing string `json:"trailing"`
}

func newEvent(ev lexflow.TokenEvent) *Event {
	out := &Event{
		Token:    ev.Token.Name(),
		Pattern:  ev.Token.Pattern(),
		Start:    ev.Start,
		End:      ev.End,
		Leading:  ev.Leading,
		Trailing: ev.Trailing,
	}
	if !ev.Next.IsNone() {
		out.Next = ev.Next.Name()
	}
	return out
}

// Config configures a Server.
type Config struct {
	// Tokens are registered on the parser for every message.
	Tokens []*lexflow.Token
	// Options are applied to the parser for every message.
	Options []lexflow.Option
	// Validate rejects messages that are not UTF-8 text.
	Validate bool
	// MaxMessageBytes limits the size of a client message.
	MaxMessageBytes int64
	// Logger receives connection lifecycle logs. Defaults to slog.Default.
	Logger *slog.Logger
	// CheckOrigin is passed to the upgrader. Nil accepts any origin.
	CheckOrigin func(r *http.Request) bool
}

// Server upgrades HTTP requests to WebSocket connections and scans the
// messages it receives.
type Server struct {
	cfg      Config
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*conn
}

type conn struct {
	id  string
	ws  *websocket.Conn
	seq uint64
	mu  sync.Mutex
}

// NewServer returns a server using cfg.
func NewServer(cfg Config) *Server {
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Server{
		cfg: cfg,
		log: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin,
		},
		conns: make(map[string]*conn),
	}
}

// Sessions returns the number of open connections.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &conn{id: uuid.NewString(), ws: ws}
	ws.SetReadLimit(s.cfg.MaxMessageBytes)
	s.mu.Lock()
	s.conns[c.id] = c
	s.mu.Unlock()
	log := s.log.With("session", c.id)
	log.Info("session opened", "remote", r.RemoteAddr)

	defer func() {
		_ = ws.Close()
		s.mu.Lock()
		delete(s.conns, c.id)
		s.mu.Unlock()
		log.Info("session closed")
	}()

	for {
		kind, msg, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read failed", "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			if err := c.send(Frame{Type: FrameError, Error: "only text messages are supported"}); err != nil {
				return
			}
			continue
		}
		if err := s.scan(c, msg); err != nil {
			log.Debug("write failed", "error", err)
			return
		}
	}
}

// scan runs one message through a fresh parser. Only write errors are
// returned; scan errors are reported to the client as an error frame.
func (s *Server) scan(c *conn, msg []byte) error {
	if s.cfg.Validate {
		if err := lexflow.ValidateInput(msg); err != nil {
			return c.send(Frame{Type: FrameError, Error: err.Error()})
		}
	}
	var writeErr error
	send := func(f Frame) error {
		err := c.send(f)
		if err != nil && writeErr == nil {
			writeErr = err
		}
		return err
	}
	listener := lexflow.Hooks{
		Start: func(*lexflow.Parser) error {
			return send(Frame{Type: FrameStart})
		},
		Token: func(_ *lexflow.Parser, ev lexflow.TokenEvent) error {
			return send(Frame{Type: FrameToken, Event: newEvent(ev)})
		},
		End: func(*lexflow.Parser) error {
			return send(Frame{Type: FrameEnd})
		},
	}
	opts := make([]lexflow.Option, 0, len(s.cfg.Options)+2)
	opts = append(opts, s.cfg.Options...)
	opts = append(opts, lexflow.WithTokens(s.cfg.Tokens...), lexflow.WithListener(listener))
	if err := lexflow.New(opts...).Start(string(msg)); err != nil {
		if writeErr != nil {
			return writeErr
		}
		return c.send(Frame{Type: FrameError, Error: err.Error()})
	}
	return nil
}

func (c *conn) send(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	f.Session = c.id
	f.Seq = c.seq
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// ErrClosed is returned by Client methods after Close.
var ErrClosed = errors.New("wsfeed: client closed")

// Client is a minimal client for Server, mostly useful in tests and tools.
type Client struct {
	ws     *websocket.Conn
	closed bool
}

// Dial connects to a wsfeed server at url (ws:// or wss://).
func Dial(url string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{ws: ws}, nil
}

// Scan sends text and collects frames until the end or error frame.
func (c *Client) Scan(text string) ([]Frame, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return nil, err
	}
	var frames []Frame
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return frames, err
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			return frames, err
		}
		frames = append(frames, f)
		if f.Type == FrameEnd || f.Type == FrameError {
			return frames, nil
		}
	}
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}
