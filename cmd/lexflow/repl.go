package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"pkt.systems/lexflow"
)

const (
	replPrompt  = "lexflow> "
	historyFile = ".lexflow_history"
)

// lineReader is the part of liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	in     lineReader
	out    io.Writer
	parser *lexflow.Parser
}

func runREPL(out io.Writer, parser *lexflow.Parser) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	r := &repl{in: ln, out: out, parser: parser}
	err := r.loop()

	if f, ferr := os.Create(histPath); ferr == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return err
}

func (r *repl) loop() error {
	for {
		line, err := r.in.Prompt(replPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.in.AppendHistory(line)
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if done := r.command(strings.TrimSpace(line)); done {
				return nil
			}
			continue
		}
		if err := r.parser.Start(line); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

// command handles :help, :quit, :tokens, :add, :clear, :limit and :unlimit.
func (r *repl) command(line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, "Type text to scan it. Commands:")
		fmt.Fprintln(r.out, "  :tokens              list registered tokens")
		fmt.Fprintln(r.out, "  :add NAME=PATTERN    register a token")
		fmt.Fprintln(r.out, "  :clear               remove all tokens")
		fmt.Fprintln(r.out, "  :limit PREFIX...     only match tokens starting with a prefix")
		fmt.Fprintln(r.out, "  :unlimit             lift the limit")
		fmt.Fprintln(r.out, "  :quit                leave")
	case ":tokens":
		for _, tok := range r.parser.Tokens() {
			fmt.Fprintf(r.out, "%s %q\n", tok.Name(), tok.Pattern())
		}
		if limit := r.parser.TokenLimit(); len(limit) > 0 {
			fmt.Fprintf(r.out, "limit: %q\n", limit)
		}
	case ":add":
		if len(fields) < 2 {
			fmt.Fprintln(r.out, "usage: :add NAME=PATTERN")
			return false
		}
		spec := strings.TrimSpace(strings.TrimPrefix(line, ":add"))
		tok, err := parseTokenSpec(spec)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			return false
		}
		r.parser.AddTokens(tok)
	case ":clear":
		r.parser.SetTokens()
	case ":limit":
		r.parser.SetTokenLimit(fields[1:]...)
	case ":unlimit":
		r.parser.ClearTokenLimit()
	default:
		fmt.Fprintf(r.out, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}
