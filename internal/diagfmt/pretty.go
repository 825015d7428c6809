package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"saxwasm/internal/diag"
	"saxwasm/internal/source"
)

type palette struct {
	err, warn, info, code, path, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		code:  color.New(color.Faint),
		path:  color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints the diagnostics of one document, in bag order (call
// bag.Sort first for position order):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// Lines and columns are one-based. With opts.Context and src available the
// offending source line follows, underlined with ^~~~.
func Pretty(w io.Writer, path string, src []byte, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	shown := FormatPath(path, opts.PathMode, opts.BaseDir)
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(location(shown, d.Primary.Start)),
			p.severity(d.Severity).Sprint(d.Severity),
			p.code.Sprint(d.Code.ID()),
			d.Message); err != nil {
			return err
		}
		if opts.Context && src != nil {
			if err := writeContext(w, p, src, d.Primary); err != nil {
				return err
			}
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(shown, n.Range.Start), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func location(path string, pos source.Position) string {
	return fmt.Sprintf("%s:%d:%d", path, pos.Line+1, pos.Character+1)
}

func writeContext(w io.Writer, p palette, src []byte, r source.Range) error {
	line, from, to, ok := underline(src, r)
	if !ok {
		return nil
	}
	text := strings.ReplaceAll(string(line), "\t", " ")
	pad := runewidth.StringWidth(strings.ReplaceAll(string(line[:from]), "\t", " "))
	span := runewidth.StringWidth(string(line[from:to]))
	marks := "^"
	if span > 1 {
		marks += strings.Repeat("~", span-1)
	}
	gutter := fmt.Sprintf("%5d | ", r.Start.Line+1)
	_, err := fmt.Fprintf(w, "%s%s\n%s%s%s\n",
		gutter, text,
		strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), p.caret.Sprint(marks))
	return err
}
