package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"saxwasm/internal/capture"
	"saxwasm/internal/event"
	"saxwasm/internal/reader"
	"saxwasm/internal/source"
)

type TextOutput struct {
	Start source.Position `json:"start"`
	End   source.Position `json:"end"`
	Value string          `json:"value"`
}

type AttrOutput struct {
	Type  string     `json:"type"`
	Name  TextOutput `json:"name"`
	Value TextOutput `json:"value"`
}

// EventOutput is a decoded event flattened for rendering. Only the fields
// of the event's payload shape are set.
type EventOutput struct {
	Kind string `json:"kind"`

	// Text и ProcInst
	Start   *source.Position `json:"start,omitempty"`
	End     *source.Position `json:"end,omitempty"`
	Value   *string          `json:"value,omitempty"`
	Target  *TextOutput      `json:"target,omitempty"`
	Content *TextOutput      `json:"content,omitempty"`

	// Attribute
	Attribute *AttrOutput `json:"attribute,omitempty"`

	// Tag
	Name        *string          `json:"name,omitempty"`
	OpenStart   *source.Position `json:"open_start,omitempty"`
	OpenEnd     *source.Position `json:"open_end,omitempty"`
	CloseStart  *source.Position `json:"close_start,omitempty"`
	CloseEnd    *source.Position `json:"close_end,omitempty"`
	SelfClosing *bool            `json:"self_closing,omitempty"`
	Attributes  []AttrOutput     `json:"attributes,omitempty"`
	TextNodes   []TextOutput     `json:"text_nodes,omitempty"`
}

func textOutput(t *reader.Text) TextOutput {
	return TextOutput{Start: t.Start(), End: t.End(), Value: t.Value()}
}

func attrOutput(a *reader.Attribute) AttrOutput {
	return AttrOutput{Type: a.Type().String(), Name: textOutput(a.Name()), Value: textOutput(a.Value())}
}

func ptr[T any](v T) *T { return &v }

// BuildEvent decodes every field of e. It must run while e is readable.
func BuildEvent(kind event.Kind, e reader.Entity) (EventOutput, error) {
	out := EventOutput{Kind: kind.String()}
	switch v := e.(type) {
	case *reader.Text:
		out.Start, out.End, out.Value = ptr(v.Start()), ptr(v.End()), ptr(v.Value())
	case *reader.ProcInst:
		out.Start, out.End = ptr(v.Start()), ptr(v.End())
		out.Target, out.Content = ptr(textOutput(v.Target())), ptr(textOutput(v.Content()))
	case *reader.Attribute:
		out.Attribute = ptr(attrOutput(v))
	case *reader.Tag:
		out.Name = ptr(v.Name())
		out.OpenStart, out.OpenEnd = ptr(v.OpenStart()), ptr(v.OpenEnd())
		out.CloseStart, out.CloseEnd = ptr(v.CloseStart()), ptr(v.CloseEnd())
		out.SelfClosing = ptr(v.SelfClosing())
		for _, a := range v.Attributes() {
			out.Attributes = append(out.Attributes, attrOutput(a))
		}
		for _, t := range v.TextNodes() {
			out.TextNodes = append(out.TextNodes, textOutput(t))
		}
	default:
		return out, fmt.Errorf("diagfmt: unexpected entity %T for %s", e, kind)
	}
	return out, nil
}

// FromCapture decodes every frame of c.
func FromCapture(c *capture.Capture) ([]EventOutput, error) {
	out := make([]EventOutput, 0, len(c.Frames))
	for i := range c.Frames {
		kind, e, err := c.Decode(i)
		if err != nil {
			return out, err
		}
		ev, err := BuildEvent(kind, e)
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func kindColor(kind string) *color.Color {
	switch kind {
	case "open_tag_start", "open_tag", "close_tag":
		return color.New(color.FgBlue, color.Bold)
	case "attribute":
		return color.New(color.FgMagenta)
	case "text", "cdata":
		return color.New(color.FgGreen)
	case "comment":
		return color.New(color.Faint)
	default:
		return color.New(color.FgYellow)
	}
}

func rng(a, b *source.Position) string {
	if a == nil || b == nil {
		return ""
	}
	return source.Range{Start: *a, End: *b}.String()
}

// trunc cuts s to width display cells; 0 means no limit.
func trunc(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func clip(s string, width int) string {
	return trunc(fmt.Sprintf("%q", s), width)
}

// attrString renders an attribute in its source quoting style.
func attrString(a AttrOutput, width int) string {
	v := trunc(a.Value.Value, width)
	switch a.Type {
	case "single_quoted":
		return a.Name.Value + "='" + v + "'"
	case "unquoted":
		return a.Name.Value + "=" + v
	case "brace_expression":
		if a.Name.Value == "" {
			return "{" + v + "}"
		}
		return a.Name.Value + "={" + v + "}"
	default:
		return a.Name.Value + `="` + v + `"`
	}
}

// FormatEventsPretty prints one event per line:
//
//	  3: close_tag       0:0-0:5   "div" attrs=[...] texts=2
func FormatEventsPretty(w io.Writer, events []EventOutput, opts PrettyOpts) error {
	for i, ev := range events {
		c := kindColor(ev.Kind)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		var where, detail string
		switch {
		case ev.Attribute != nil:
			where = rng(&ev.Attribute.Name.Start, &ev.Attribute.Value.End)
			detail = ev.Attribute.Type + " " + attrString(*ev.Attribute, opts.Width)
		case ev.Name != nil:
			where = rng(ev.OpenStart, ev.OpenEnd)
			var b strings.Builder
			b.WriteString(clip(*ev.Name, opts.Width))
			if *ev.SelfClosing {
				b.WriteString(" self-closing")
			}
			for _, a := range ev.Attributes {
				b.WriteString(" " + attrString(a, opts.Width))
			}
			if ev.Kind == "close_tag" {
				fmt.Fprintf(&b, " close=%s texts=%d", rng(ev.CloseStart, ev.CloseEnd), len(ev.TextNodes))
			}
			detail = b.String()
		case ev.Target != nil:
			where = rng(ev.Start, ev.End)
			detail = ev.Target.Value + " " + clip(ev.Content.Value, opts.Width)
		case ev.Value != nil:
			where = rng(ev.Start, ev.End)
			detail = clip(*ev.Value, opts.Width)
		}
		if _, err := fmt.Fprintf(w, "%4d: %s %-13s %s\n", i+1, c.Sprintf("%-22s", ev.Kind), where, detail); err != nil {
			return err
		}
	}
	return nil
}

type eventsDocument struct {
	Source string        `json:"source,omitempty"`
	Events []EventOutput `json:"events"`
	Count  int           `json:"count"`
}

// FormatEventsJSON writes {"source", "events", "count"}.
func FormatEventsJSON(w io.Writer, src string, events []EventOutput) error {
	if events == nil {
		events = []EventOutput{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(eventsDocument{Source: src, Events: events, Count: len(events)})
}
