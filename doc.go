// Package lexflow is an incremental, event-driven lexer for literal tokens.
//
// A Parser scans text once from left to right. Every time one of the
// registered token patterns occurs it reports the token together with the
// text before it (leading) and the text after it up to the next token
// (trailing). Consumers build ad-hoc parsers by reacting to these boundaries
// instead of writing a grammar.
//
// Core properties:
//   - Longest match: with tokens "<" and "<=", "a<=b" yields one "<=" token
//   - One-token lookahead: events are delivered once the trailing text is known
//   - Escaping: a rune after the escape character never matches
//   - Scope limits: hooks can restrict matching to a subset of tokens, for
//     example to ignore everything but the closing quote inside a string
//
// Example:
//
//	p := lexflow.New(
//		lexflow.WithTokens(lexflow.NewToken("DOT", "."), lexflow.NewToken("COMMA", ",")),
//		lexflow.WithListener(lexflow.Hooks{
//			Token: func(_ *lexflow.Parser, ev lexflow.TokenEvent) error {
//				fmt.Println(ev.Token.Name(), ev.Leading, ev.Trailing)
//				return nil
//			},
//		}),
//	)
//	if err := p.Start("Hello world!.Anotherone,Ending"); err != nil {
//		log.Fatal(err)
//	}
//
// Scan and HTTPScan read the text from an io.Reader or a URL first.
package lexflow
