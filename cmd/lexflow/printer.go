package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"pkt.systems/lexflow"
)

const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

// printer writes every token event to w in one of the output formats.
type printer struct {
	lexflow.NopListener
	w      io.Writer
	format string
	width  int
	pal    palette
	enc    *json.Encoder

	tokens int
	chars  int
	counts bool
}

func newPrinter(w io.Writer, format string, width int, color, counts bool) (*printer, error) {
	switch format {
	case formatText, formatTable, formatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q (expected text|table|json)", format)
	}
	p := &printer{w: w, format: format, width: width, counts: counts}
	if color && format != formatJSON {
		p.pal = colorPalette()
	} else {
		p.pal = plainPalette()
	}
	if format == formatJSON {
		p.enc = json.NewEncoder(w)
	}
	return p, nil
}

func (p *printer) OnStart(*lexflow.Parser) error {
	p.tokens = 0
	p.chars = 0
	if p.format == formatTable {
		return p.tableHeader()
	}
	return nil
}

func (p *printer) OnEnd(*lexflow.Parser) error {
	if !p.counts || p.format == formatJSON {
		return nil
	}
	_, err := fmt.Fprintln(p.w, p.pal.muted.render(fmt.Sprintf("%d tokens, %d characters", p.tokens, p.chars)))
	return err
}

func (p *printer) OnCharacterProcessed(*lexflow.Parser, rune) error {
	p.chars++
	return nil
}

func (p *printer) OnTokenProcessed(_ *lexflow.Parser, ev lexflow.TokenEvent) error {
	p.tokens++
	switch p.format {
	case formatJSON:
		return p.enc.Encode(ev)
	case formatTable:
		return p.tableRow(ev)
	default:
		return p.textLine(ev)
	}
}

func (p *printer) textLine(ev lexflow.TokenEvent) error {
	var b strings.Builder
	b.WriteString(p.pal.token.render(ev.Token.Name()))
	b.WriteByte(' ')
	b.WriteString(p.pal.pattern.render(strconv.Quote(ev.Token.Pattern())))
	b.WriteByte(' ')
	b.WriteString(p.pal.offset.render(fmt.Sprintf("%d..%d", ev.Start, ev.End)))
	b.WriteString(" leading=")
	b.WriteString(p.pal.text.render(strconv.Quote(ev.Leading)))
	b.WriteString(" trailing=")
	b.WriteString(p.pal.text.render(strconv.Quote(ev.Trailing)))
	if !ev.Next.IsNone() {
		b.WriteString(" next=")
		b.WriteString(p.pal.muted.render(ev.Next.Name()))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Fixed column widths; leading and trailing split what remains.
const (
	colToken  = 12
	colOffset = 6
	colGaps   = 4
)

func (p *printer) textColumn() int {
	rest := p.width - colToken - 2*colOffset - colGaps
	if rest < 2*8 {
		return 8
	}
	return rest / 2
}

func (p *printer) tableHeader() error {
	text := p.textColumn()
	line := cell("TOKEN", colToken) + " " + cell("START", colOffset) + " " + cell("END", colOffset) + " " +
		cell("LEADING", text) + " " + "TRAILING"
	_, err := fmt.Fprintln(p.w, p.pal.muted.render(line))
	return err
}

func (p *printer) tableRow(ev lexflow.TokenEvent) error {
	text := p.textColumn()
	line := p.pal.token.render(cell(ev.Token.Name(), colToken)) + " " +
		p.pal.offset.render(cell(strconv.Itoa(ev.Start), colOffset)) + " " +
		p.pal.offset.render(cell(strconv.Itoa(ev.End), colOffset)) + " " +
		p.pal.text.render(cell(strconv.Quote(ev.Leading), text)) + " " +
		p.pal.text.render(fit(strconv.Quote(ev.Trailing), text))
	_, err := fmt.Fprintln(p.w, line)
	return err
}

// cell truncates s to width and pads it to exactly width columns.
func cell(s string, width int) string {
	return padding.String(fit(s, width), uint(width))
}

func fit(s string, width int) string {
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
