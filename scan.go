package lexflow

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
)

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// maxPooledBuffer caps the size of read buffers returned to the pool.
const maxPooledBuffer = 1 << 20

// ScanRequest configures Scan.
type ScanRequest struct {
	Reader   io.Reader
	Listener Listener
	Tokens   []*Token
	Options  []Option
	// Validate rejects input that is not UTF-8 text.
	Validate bool
	// Sanitize drops invalid UTF-8 and control characters instead.
	Sanitize bool
}

// Scan reads all of req.Reader and scans it with a new Parser. Errors from
// hooks are returned unwrapped.
func Scan(req ScanRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("scan: reader is nil")
	}
	if req.Validate && req.Sanitize {
		return fmt.Errorf("scan: Validate and Sanitize are mutually exclusive")
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			bufferPool.Put(buf)
		}
	}()
	if err := readInput(buf, req); err != nil {
		return err
	}

	opts := make([]Option, 0, len(req.Options)+2)
	opts = append(opts, req.Options...)
	if len(req.Tokens) > 0 {
		opts = append(opts, WithTokens(req.Tokens...))
	}
	if req.Listener != nil {
		opts = append(opts, WithListener(req.Listener))
	}
	return New(opts...).StartRunes(bytes.Runes(buf.Bytes()))
}

func readInput(dst *bytes.Buffer, req ScanRequest) error {
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	defer func() {
		reader.Reset(nil)
		readerPool.Put(reader)
	}()

	var (
		v        validator
		chunk    [4096]byte
		clean    [4096 + 4]byte
		tail     [4]byte
		tailLen  int
		combined [4096 + 4]byte
	)
	v.reset()
	for {
		n, err := reader.Read(chunk[:])
		if n > 0 {
			data := chunk[:n]
			if tailLen > 0 {
				copy(combined[:], tail[:tailLen])
				copy(combined[tailLen:], data)
				data = combined[:tailLen+n]
				tailLen = 0
			}
			switch {
			case req.Validate:
				rest, verr := v.addBytes(data)
				if verr != nil {
					return fmt.Errorf("scan: %w", verr)
				}
				dst.Write(data[:len(data)-len(rest)])
				tailLen = copy(tail[:], rest)
			case req.Sanitize:
				out, rest := sanitizeBytes(clean[:], data)
				dst.Write(out)
				tailLen = copy(tail[:], rest)
			default:
				dst.Write(data)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("scan: read: %w", err)
		}
	}
	if tailLen > 0 && req.Validate {
		return fmt.Errorf("scan: %w", &InputError{Offset: v.offset, Err: ErrInvalidUTF8})
	}
	return nil
}
