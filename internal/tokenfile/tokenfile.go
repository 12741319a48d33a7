// Package tokenfile loads token definitions and scanner options from YAML.
//
//	escape: true
//	escape_character: "\\"
//	ignore_whitespace: true
//	tokens:
//	  - {name: DOT, pattern: "."}
//	  - {name: LE, pattern: "<="}
package tokenfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
	"pkt.systems/lexflow"
)

// File is the decoded form of a token file. Unset fields keep the parser
// defaults.
type File struct {
	Escape           *bool   `yaml:"escape"`
	EscapeCharacter  string  `yaml:"escape_character"`
	IgnoreWhitespace *bool   `yaml:"ignore_whitespace"`
	Tokens           []Entry `yaml:"tokens"`
}

// Entry is one token definition.
type Entry struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Load decodes a token file from r.
func Load(r io.Reader) (*File, error) {
	if r == nil {
		return nil, fmt.Errorf("tokenfile: reader is nil")
	}
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("tokenfile: empty document")
		}
		return nil, fmt.Errorf("tokenfile: decode: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and decodes the token file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tokenfile: open: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

func (f *File) validate() error {
	if f.EscapeCharacter != "" && utf8.RuneCountInString(f.EscapeCharacter) != 1 {
		return fmt.Errorf("tokenfile: escape_character %q must be a single character", f.EscapeCharacter)
	}
	for i, e := range f.Tokens {
		if e.Name == "" {
			return fmt.Errorf("tokenfile: token %d: name is required", i)
		}
		if e.Pattern == "" {
			return fmt.Errorf("tokenfile: token %q: pattern is required", e.Name)
		}
	}
	return nil
}

// Definitions returns a new token for every entry, in file order.
func (f *File) Definitions() []*lexflow.Token {
	out := make([]*lexflow.Token, 0, len(f.Tokens))
	for _, e := range f.Tokens {
		out = append(out, lexflow.NewToken(e.Name, e.Pattern))
	}
	return out
}

// Options returns parser options for the settings present in the file and
// its tokens.
func (f *File) Options() []lexflow.Option {
	var opts []lexflow.Option
	if f.Escape != nil {
		opts = append(opts, lexflow.WithEscape(*f.Escape))
	}
	if f.EscapeCharacter != "" {
		r, _ := utf8.DecodeRuneInString(f.EscapeCharacter)
		opts = append(opts, lexflow.WithEscapeCharacter(r))
	}
	if f.IgnoreWhitespace != nil {
		opts = append(opts, lexflow.WithIgnoreWhitespace(*f.IgnoreWhitespace))
	}
	if len(f.Tokens) > 0 {
		opts = append(opts, lexflow.WithTokens(f.Definitions()...))
	}
	return opts
}
