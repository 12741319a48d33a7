package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const ansiReset = "\x1b[0m"

// style is an ANSI prefix sequence. The zero style prints text unchanged.
type style struct {
	prefix string
}

func (s style) render(text string) string {
	if s.prefix == "" || text == "" {
		return text
	}
	return s.prefix + text + ansiReset
}

// palette groups the styles used by the event printer.
type palette struct {
	token   style
	pattern style
	offset  style
	text    style
	muted   style
}

func colorPalette() palette {
	return palette{
		token:   style{prefix: "\x1b[1;36m"},
		pattern: style{prefix: "\x1b[33m"},
		offset:  style{prefix: "\x1b[2m"},
		text:    style{prefix: "\x1b[37m"},
		muted:   style{prefix: "\x1b[2;37m"},
	}
}

func plainPalette() palette {
	return palette{}
}

// detectColorSupport reports whether w likely renders ANSI colors.
func detectColorSupport(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return isTerminal(w)
}

func resolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return detectColorSupport(w), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
