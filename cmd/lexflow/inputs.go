package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// inputSource opens one input lazily so later files are not held open while
// earlier ones are scanned.
type inputSource struct {
	name string
	open func(ctx context.Context) (io.ReadCloser, error)
}

// concatReader reads its sources back to back.
type concatReader struct {
	ctx     context.Context
	sources []inputSource
	idx     int
	cur     io.ReadCloser
	closed  bool
}

func (m *concatReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			src := m.sources[m.idx]
			rc, err := src.open(m.ctx)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", src.name, err)
			}
			m.cur = rc
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			_ = m.cur.Close()
			m.cur = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *concatReader) Close() error {
	m.closed = true
	if m.cur != nil {
		err := m.cur.Close()
		m.cur = nil
		return err
	}
	return nil
}

// openInputs returns a reader over all args in order, or stdin when there
// are none. Arguments may be paths, file:// URLs or http(s) URLs.
func openInputs(ctx context.Context, args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw, stdin)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	r := &concatReader{ctx: ctx, sources: sources}
	return r, r, nil
}

func makeInputSource(raw string, stdin io.Reader) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{name: "stdin", open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(stdin), nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{name: raw, open: func(ctx context.Context) (io.ReadCloser, error) {
				return openURL(ctx, raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{name: path, open: func(context.Context) (io.ReadCloser, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{name: raw, open: func(context.Context) (io.ReadCloser, error) {
		return openFile(raw)
	}}, nil
}

func openURL(ctx context.Context, raw string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("http status %s", resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(normalizePath(path))
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
