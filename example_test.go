package lexflow_test

import (
	"fmt"

	"pkt.systems/lexflow"
)

func Example() {
	p := lexflow.New(
		lexflow.WithTokens(lexflow.NewToken("DOT", "."), lexflow.NewToken("COMMA", ",")),
		lexflow.WithListener(lexflow.Hooks{
			Token: func(_ *lexflow.Parser, ev lexflow.TokenEvent) error {
				fmt.Printf("%s %d %q %q\n", ev.Token.Name(), ev.Start, ev.Leading, ev.Trailing)
				return nil
			},
		}),
	)
	if err := p.Start("Hello world!.Anotherone,Ending"); err != nil {
		fmt.Println(err)
	}
	// Output:
	// DOT 12 "Hello world!" "Anotherone"
	// COMMA 23 "Anotherone" "Ending"
}
