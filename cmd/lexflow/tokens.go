package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pkt.systems/lexflow"
)

var presets = map[string][]string{
	"punct": {"DOT=.", "COMMA=,", "EXCL=!", "QUESTION=?", "COLON=:", "SEMI=;"},
	"json":  {"LBRACE={", "RBRACE=}", "LBRACKET=[", "RBRACKET=]", "COMMA=,", "COLON=:", `QUOTE="`},
	"lines": {`CRLF="\r\n"`, `LF="\n"`, `CR="\r"`},
	"ops":   {"LE=<=", "GE=>=", "EQ===", "NE=!=", "LT=<", "GT=>", "ASSIGN==", "PLUS=+", "MINUS=-", "STAR=*", "SLASH=/"},
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func presetTokens(name string) ([]*lexflow.Token, error) {
	specs, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(presetNames(), ", "))
	}
	return parseTokenSpecs(specs)
}

func parseTokenSpecs(specs []string) ([]*lexflow.Token, error) {
	out := make([]*lexflow.Token, 0, len(specs))
	for _, spec := range specs {
		tok, err := parseTokenSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// parseTokenSpec parses NAME=PATTERN. A pattern in double quotes is unquoted
// with Go escape rules, so "\n" is a newline.
func parseTokenSpec(spec string) (*lexflow.Token, error) {
	name, pattern, ok := strings.Cut(spec, "=")
	if !ok {
		return nil, fmt.Errorf("token %q: expected NAME=PATTERN", spec)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("token %q: name is empty", spec)
	}
	if len(pattern) >= 2 && strings.HasPrefix(pattern, `"`) && strings.HasSuffix(pattern, `"`) {
		unquoted, err := strconv.Unquote(pattern)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", spec, err)
		}
		pattern = unquoted
	}
	if pattern == "" {
		return nil, fmt.Errorf("token %q: pattern is empty", spec)
	}
	return lexflow.NewToken(name, pattern), nil
}
