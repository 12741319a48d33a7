package tokenfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/lexflow"
)

const sample = `
escape: false
ignore_whitespace: false
tokens:
  - {name: NL, pattern: "\n"}
  - name: LE
    pattern: "<="
  - name: LT
    pattern: "<"
`

func TestLoad(t *testing.T) {
	f, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defs := f.Definitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(defs))
	}
	if defs[0].Name() != "NL" || defs[0].Pattern() != "\n" {
		t.Fatalf("unexpected first token %v", defs[0])
	}
	if f.Escape == nil || *f.Escape {
		t.Fatalf("expected escape false, got %v", f.Escape)
	}
}

func TestOptionsConfigureParser(t *testing.T) {
	f, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var leading []string
	opts := append(f.Options(), lexflow.WithListener(lexflow.Hooks{
		Token: func(_ *lexflow.Parser, ev lexflow.TokenEvent) error {
			leading = append(leading, ev.Leading)
			return nil
		},
	}))
	if err := lexflow.New(opts...).Start("a\\<=b\nc"); err != nil {
		t.Fatalf("start: %v", err)
	}
	want := []string{"a\\", "b"}
	if strings.Join(leading, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, leading)
	}
}

func TestEscapeCharacter(t *testing.T) {
	f, err := Load(strings.NewReader("escape_character: \"~\"\ntokens: [{name: DOT, pattern: .}]\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var leading string
	opts := append(f.Options(), lexflow.WithListener(lexflow.Hooks{
		Token: func(_ *lexflow.Parser, ev lexflow.TokenEvent) error {
			leading = ev.Leading
			return nil
		},
	}))
	if err := lexflow.New(opts...).Start("a~.b.c"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if leading != "a.b" {
		t.Fatalf("expected %q, got %q", "a.b", leading)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "tokenz: []\n",
		"missing name":    "tokens: [{pattern: x}]\n",
		"missing pattern": "tokens: [{name: X}]\n",
		"long escape":     "escape_character: ab\n",
		"empty":           "",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(src)); err == nil {
				t.Fatalf("expected error")
			} else if !strings.HasPrefix(err.Error(), "tokenfile: ") {
				t.Fatalf("expected tokenfile prefix, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(f.Tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(f.Tokens))
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
