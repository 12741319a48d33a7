package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"pkt.systems/lexflow"
	"pkt.systems/lexflow/internal/tokenfile"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/lexflow")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		tokenSpecs     []string
		tokensFile     string
		preset         string
		noEscape       bool
		escapeChar     string
		keepWhitespace bool
		format         string
		widthFlag      int
		colorFlag      string
		chars          bool
		validate       bool
		sanitize       bool
		replMode       bool
		serveAddr      string
		outPath        string
		listPresets    bool
		showVersion    bool
	)

	flags := pflag.NewFlagSet("lexflow", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringArrayVarP(&tokenSpecs, "token", "t", nil, `Token as NAME=PATTERN (repeatable; quote the pattern for escapes, e.g. NL="\n")`)
	flags.StringVarP(&tokensFile, "tokens-file", "f", "", "YAML token file")
	flags.StringVarP(&preset, "preset", "p", "", "Built-in token set")
	flags.BoolVar(&noEscape, "no-escape", false, "Disable the escape character")
	flags.StringVar(&escapeChar, "escape-char", "", `Escape character (default "\")`)
	flags.BoolVar(&keepWhitespace, "keep-whitespace", false, "Let whitespace take part in matching")
	flags.StringVar(&format, "format", formatText, "Output format: text|table|json")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Table width override (0 uses terminal width if available)")
	flags.StringVar(&colorFlag, "color", "auto", "Colored output: auto|on|off")
	flags.BoolVar(&chars, "chars", false, "Count characters outside tokens and print a summary")
	flags.BoolVar(&validate, "validate", false, "Reject input that is not UTF-8 text")
	flags.BoolVar(&sanitize, "sanitize", false, "Drop invalid UTF-8 and control characters")
	flags.BoolVar(&replMode, "repl", false, "Interactive mode: scan each line typed")
	flags.StringVar(&serveAddr, "serve", "", "Serve scans over WebSocket at ADDR/ws")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&listPresets, "list-presets", false, "List built-in token sets")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: lexflow [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nScans text for literal tokens and prints each token with the text around it.")
		fmt.Fprintln(stderr, "If no input is provided, text is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if listPresets {
		for _, name := range presetNames() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	var opts []lexflow.Option
	var tokens []*lexflow.Token
	if tokensFile != "" {
		f, err := tokenfile.LoadFile(normalizePath(tokensFile))
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 2
		}
		opts = append(opts, f.Options()...)
	}
	if preset != "" {
		toks, err := presetTokens(preset)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 2
		}
		tokens = append(tokens, toks...)
	}
	if len(tokenSpecs) > 0 {
		toks, err := parseTokenSpecs(tokenSpecs)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --token: %v\n", err)
			return 2
		}
		tokens = append(tokens, toks...)
	}
	if noEscape {
		opts = append(opts, lexflow.WithEscape(false))
	}
	if escapeChar != "" {
		r := []rune(escapeChar)
		if len(r) != 1 {
			fmt.Fprintf(stderr, "invalid --escape-char %q: expected a single character\n", escapeChar)
			return 2
		}
		opts = append(opts, lexflow.WithEscapeCharacter(r[0]))
	}
	if keepWhitespace {
		opts = append(opts, lexflow.WithIgnoreWhitespace(false))
	}
	if validate && sanitize {
		fmt.Fprintln(stderr, "--validate and --sanitize are mutually exclusive")
		return 2
	}

	if serveAddr != "" {
		if err := serve(serveAddr, tokens, opts, validate); err != nil {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		return 0
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	color, err := resolveColor(colorFlag, writer)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --color %q: %v\n", colorFlag, err)
		return 2
	}
	p, err := newPrinter(writer, format, resolveWidth(widthFlag), color, chars)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --format: %v\n", err)
		return 2
	}
	if chars {
		opts = append(opts, lexflow.WithCharacterNotifications(true))
	}

	if replMode {
		parser := lexflow.New(append(opts, lexflow.WithTokens(tokens...), lexflow.WithListener(p))...)
		if err := runREPL(writer, parser); err != nil {
			fmt.Fprintf(stderr, "repl: %v\n", err)
			return 1
		}
		return 0
	}

	reader, closer, err := openInputs(context.Background(), flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	if err := lexflow.Scan(lexflow.ScanRequest{
		Reader:   reader,
		Listener: p,
		Tokens:   tokens,
		Options:  opts,
		Validate: validate,
		Sanitize: sanitize,
	}); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}
