package lexer

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
)

// recorder renders every event into one line so streams compare as strings.
type recorder struct {
	set event.Set
	got []string
}

func (r *recorder) Wants(k event.Kind) bool { return r.set.Has(k) }

func (r *recorder) Text(k event.Kind, t *entity.Text) {
	r.got = append(r.got, fmt.Sprintf("%s %q %s-%s", k, t.Value, t.Start, t.End))
}

func (r *recorder) Attribute(a *entity.Attribute) {
	r.got = append(r.got, "attribute "+renderAttr(a))
}

func (r *recorder) Tag(k event.Kind, t *entity.Tag) {
	attrs := make([]string, 0, len(t.Attributes))
	for i := range t.Attributes {
		attrs = append(attrs, renderAttr(&t.Attributes[i]))
	}
	texts := make([]string, 0, len(t.TextNodes))
	for _, tn := range t.TextNodes {
		texts = append(texts, fmt.Sprintf("%q", tn.Value))
	}
	r.got = append(r.got, fmt.Sprintf("%s %q %s-%s %s-%s self=%t attrs=[%s] texts=[%s]",
		k, t.Name, t.OpenStart, t.OpenEnd, t.CloseStart, t.CloseEnd, t.SelfClosing,
		strings.Join(attrs, " "), strings.Join(texts, " ")))
}

func (r *recorder) ProcInst(p *entity.ProcInst) {
	r.got = append(r.got, fmt.Sprintf("processing_instruction %q %q %s-%s",
		p.Target.Value, p.Content.Value, p.Start, p.End))
}

func renderAttr(a *entity.Attribute) string {
	return fmt.Sprintf("%s %q=%q %s-%s/%s-%s", a.Type, a.Name.Value, a.Value.Value,
		a.Name.Start, a.Name.End, a.Value.Start, a.Value.End)
}

// tokenize feeds input in the given chunk sizes (the rest goes in one piece)
// and ends the document.
func tokenize(input string, set event.Set, opts Options, chunks ...int) []string {
	r := &recorder{set: set}
	lx := New(r, opts)
	rest := []byte(input)
	for _, n := range chunks {
		n = min(n, len(rest))
		lx.Write(rest[:n])
		rest = rest[n:]
	}
	lx.Write(rest)
	lx.End()
	return r.got
}

// names pulls the quoted second field out of rendered lines of kind k.
func names(lines []string, k event.Kind) []string {
	var out []string
	prefix := k.String() + " "
	for _, l := range lines {
		if !strings.HasPrefix(l, prefix) {
			continue
		}
		rest := strings.TrimPrefix(l, prefix)
		var s string
		if _, err := fmt.Sscanf(rest, "%q", &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func TestScenario_AttributeOnly(t *testing.T) {
	got := tokenize(`<body class="main"></body>`, event.SetOf(event.Attribute), Options{})
	want := []string{`attribute double_quoted "class"="main" 0:6-0:11/0:13-0:17`}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestScenario_EmptyCloseTagIsText(t *testing.T) {
	set := event.SetOf(event.OpenTag, event.CloseTag, event.Text)
	got := tokenize(`<div></></div>`, set, Options{})
	want := []string{
		`open_tag "div" 0:0-0:5 0:0-0:0 self=false attrs=[] texts=[]`,
		`text "</>" 0:5-0:8`,
		`close_tag "div" 0:0-0:5 0:8-0:14 self=false attrs=[] texts=["</>"]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestScenario_SelfClosingPath(t *testing.T) {
	got := tokenize(`<g><path d="M0,12.5 L50,12.5 L50,25 L0,25 L0,12.5z"/></g>`, event.SetOf(event.CloseTag), Options{})
	if len(got) != 2 {
		t.Fatalf("got %d events: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], `close_tag "path"`) || !strings.Contains(got[0], "self=true") {
		t.Errorf("first = %s", got[0])
	}
	if !strings.HasPrefix(got[1], `close_tag "g"`) || !strings.Contains(got[1], "self=false") {
		t.Errorf("second = %s", got[1])
	}
	if !strings.Contains(got[0], `"M0,12.5 L50,12.5 L50,25 L0,25 L0,12.5z"`) {
		t.Errorf("path attribute missing: %s", got[0])
	}
}

func TestScenario_JSXTernary(t *testing.T) {
	got := tokenize(`<foo>{bar < baz ? <div></div> : <></>}</foo>`, event.SetOf(event.CloseTag), Options{})
	if n := names(got, event.CloseTag); !slices.Equal(n, []string{"div", "", "foo"}) {
		t.Fatalf("close tags = %q (%q)", n, got)
	}
	wantTexts := `texts=["{bar " "< baz ? " " : " "}"]`
	if !strings.HasSuffix(got[2], wantTexts) {
		t.Fatalf("foo = %s\nwant suffix %s", got[2], wantTexts)
	}
}

func TestScenario_MalformedPIRecovers(t *testing.T) {
	set := event.SetOf(event.Comment, event.ProcessingInstruction, event.Text, event.CloseTag)
	got := tokenize(`<!--lit-part BRUAAAUVAAA=--><?><!--/lit-part--><p>more</p>`, set, Options{})
	want := []string{
		`comment "lit-part BRUAAAUVAAA=" 0:0-0:28`,
		`processing_instruction "" "" 0:28-0:31`,
		`comment "/lit-part" 0:31-0:47`,
		`text "more" 0:50-0:54`,
		`close_tag "p" 0:47-0:50 0:54-0:58 self=false attrs=[] texts=["more"]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

var corpus = []string{
	`<body class="main"></body>`,
	`<?xml version="1.0" encoding="utf-8"?><!DOCTYPE note [<!ENTITY x "y>">]><note a='1' b="2">text</note>`,
	`<root><!-- a -- b --><![CDATA[ x ]] y ]]><child/>tail</root>`,
	`<foo>{bar < baz ? <div></div> : <></>}</foo>`,
	`<A render={() => <b>hi</b>} x="1" {...rest}/>`,
	"\xEF\xBB\xBF<p>é😀x</p>\n<p>line</p>",
	`<div *ngIf="c" [(ngModel)]="v" (click)="f()" disabled href=/x/></div>`,
	`<!--lit-part BRUAAAUVAAA=--><?><!--/lit-part--><p>more</p>`,
	`<a><b><c></a>  </x> <1 < <!DOCTYPE html><!ELEMENT br EMPTY>`,
	`<unterminated attr="`,
}

func TestChunkBoundaryInvariance(t *testing.T) {
	set := event.All
	for _, in := range corpus {
		whole := tokenize(in, set, Options{})
		for i := 0; i <= len(in); i++ {
			split := tokenize(in, set, Options{}, i)
			if !slices.Equal(whole, split) {
				t.Fatalf("input %q split at %d:\nwhole %q\nsplit %q", in, i, whole, split)
			}
		}
		ones := make([]int, len(in))
		for i := range ones {
			ones[i] = 1
		}
		if bytewise := tokenize(in, set, Options{}, ones...); !slices.Equal(whole, bytewise) {
			t.Fatalf("input %q byte by byte:\nwhole %q\nbytes %q", in, whole, bytewise)
		}
	}
}

func TestPositions_LinesAndSelfClosing(t *testing.T) {
	got := tokenize("<a>\n  <b x=\"1\"/>\n</a>", event.SetOf(event.CloseTag, event.Attribute), Options{})
	want := []string{
		`attribute double_quoted "x"="1" 1:5-1:6/1:8-1:9`,
		`close_tag "b" 1:2-1:12 1:2-1:12 self=true attrs=[double_quoted "x"="1" 1:5-1:6/1:8-1:9] texts=[]`,
		`close_tag "a" 0:0-0:3 2:0-2:4 self=false attrs=[] texts=[]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestPositions_UTF16Units(t *testing.T) {
	got := tokenize("<p>é😀x</p>", event.SetOf(event.Text, event.CloseTag), Options{})
	want := []string{
		`text "é😀x" 0:3-0:7`,
		`close_tag "p" 0:0-0:3 0:7-0:11 self=false attrs=[] texts=["é😀x"]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestBOM_Skipped(t *testing.T) {
	in := "\xEF\xBB\xBFhi"
	for i := 0; i <= len(in); i++ {
		got := tokenize(in, event.SetOf(event.Text), Options{}, i)
		if want := []string{`text "hi" 0:0-0:2`}; !slices.Equal(got, want) {
			t.Fatalf("split %d: got %q", i, got)
		}
	}
	// неполный BOM в конце остаётся обычным текстом
	got := tokenize("\xEF\xBB", event.SetOf(event.Text), Options{})
	if len(got) != 1 {
		t.Fatalf("partial BOM: %q", got)
	}
}

func TestMarkers_CaseInsensitive(t *testing.T) {
	set := event.SetOf(event.Doctype, event.Cdata, event.Comment)
	upper := tokenize(`<!DOCTYPE html><![CDATA[x]]><!--c-->`, set, Options{})
	lower := tokenize(`<!doctype html><![cdata[x]]><!--c-->`, set, Options{})
	want := []string{
		`doctype "html" 0:0-0:15`,
		`cdata "x" 0:15-0:28`,
		`comment "c" 0:28-0:36`,
	}
	if !slices.Equal(upper, want) || !slices.Equal(lower, want) {
		t.Fatalf("upper %q\nlower %q\nwant %q", upper, lower, want)
	}
}

func TestComment_InnerDashes(t *testing.T) {
	got := tokenize(`<!-- a -- b ---><!---->`, event.SetOf(event.Comment), Options{})
	want := []string{`comment " a -- b -" 0:0-0:16`, `comment "" 0:16-0:23`}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestDeclarations(t *testing.T) {
	set := event.SetOf(event.Declaration, event.Doctype)
	got := tokenize(`<!ELEMENT br EMPTY><!DOCX><!><!-x><!DOCTYPE  note [<!ENTITY a "]>">] >`, set, Options{})
	want := []string{
		`declaration "ELEMENT br EMPTY" 0:0-0:19`,
		`declaration "DOCX" 0:19-0:26`,
		`declaration "" 0:26-0:29`,
		`declaration "-x" 0:29-0:34`,
		`doctype "note [<!ENTITY a \"]>\">]" 0:34-0:70`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestProcessingInstruction(t *testing.T) {
	got := tokenize(`<?xml version="1.0"?><?php ?? echo ?><?target?>`, event.SetOf(event.ProcessingInstruction), Options{})
	want := []string{
		`processing_instruction "xml" "version=\"1.0\"" 0:0-0:21`,
		`processing_instruction "php" "?? echo " 0:21-0:37`,
		`processing_instruction "target" "" 0:37-0:47`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestAttributes_Forms(t *testing.T) {
	in := `<x a="1"b='2' c d={e{f}} {...g} h=i *ngIf="ok" [(m)]="v" (click)="f()" s={"}"}/>`
	got := tokenize(in, event.SetOf(event.OpenTag), Options{})
	if len(got) != 1 {
		t.Fatalf("got %q", got)
	}
	for _, part := range []string{
		`double_quoted "a"="1"`,
		`single_quoted "b"="2"`,
		`unquoted "c"=""`,
		`brace_expression "d"="e{f}"`,
		`brace_expression ""="...g"`,
		`unquoted "h"="i"`,
		`double_quoted "*ngIf"="ok"`,
		`double_quoted "[(m)]"="v"`,
		`double_quoted "(click)"="f()"`,
		`brace_expression "s"="\"}\""`,
		`self=true`,
	} {
		if !strings.Contains(got[0], part) {
			t.Errorf("missing %s in %s", part, got[0])
		}
	}
}

func TestAttributes_UnquotedSlash(t *testing.T) {
	got := tokenize(`<a href=/x/><b href=a/b></b>`, event.SetOf(event.Attribute, event.OpenTag), Options{})
	want := []string{
		`attribute unquoted "href"="/x" 0:3-0:7/0:8-0:10`,
		`open_tag "a" 0:0-0:12 0:0-0:12 self=true attrs=[unquoted "href"="/x" 0:3-0:7/0:8-0:10] texts=[]`,
		`attribute unquoted "href"="a/b" 0:15-0:19/0:20-0:23`,
		`open_tag "b" 0:12-0:24 0:0-0:0 self=false attrs=[unquoted "href"="a/b" 0:15-0:19/0:20-0:23] texts=[]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestNestedTagInAttributeBrace(t *testing.T) {
	set := event.SetOf(event.OpenTagStart, event.OpenTag, event.CloseTag, event.Attribute, event.Text)
	got := tokenize(`<A render={() => <b>hi</b>} x="1"/>`, set, Options{})
	var kinds []string
	for _, l := range got {
		kinds = append(kinds, strings.Join(strings.Fields(l)[:2], " "))
	}
	want := []string{
		`open_tag_start "A"`,
		`open_tag_start "b"`,
		`open_tag "b"`,
		`text "hi"`,
		`close_tag "b"`,
		`attribute brace_expression`,
		`attribute double_quoted`,
		`open_tag "A"`,
		`close_tag "A"`,
	}
	if !slices.Equal(kinds, want) {
		t.Fatalf("got %q\nwant %q", kinds, want)
	}
	if !strings.Contains(got[5], `"render"="() => <b>hi</b>"`) {
		t.Fatalf("render attribute = %s", got[5])
	}
}

func TestWhitespaceText(t *testing.T) {
	in := "<a>\n  <b/>\n</a>"
	if got := tokenize(in, event.SetOf(event.Text), Options{}); len(got) != 0 {
		t.Fatalf("whitespace reported by default: %q", got)
	}
	got := tokenize(in, event.SetOf(event.Text), Options{WhitespaceText: true})
	want := []string{`text "\n  " 0:3-1:2`, `text "\n" 1:6-2:0`}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestCloseTags_UnmatchedAndImplicit(t *testing.T) {
	bag := diag.NewBag(0)
	opts := Options{Reporter: diag.BagReporter{Bag: bag}}
	got := tokenize(`<a><b></x></a>`, event.SetOf(event.Text, event.CloseTag), opts)
	want := []string{
		`text "</x>" 0:6-0:10`,
		`close_tag "b" 0:3-0:6 0:10-0:10 self=false attrs=[] texts=["</x>"]`,
		`close_tag "a" 0:0-0:3 0:10-0:14 self=false attrs=[] texts=[]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	if !slices.Equal(codes, []diag.Code{diag.LexUnmatchedCloseTag, diag.LexImplicitClose}) {
		t.Fatalf("diagnostics = %v", codes)
	}
}

func TestEnd_FlushesAndResets(t *testing.T) {
	bag := diag.NewBag(0)
	r := &recorder{set: event.SetOf(event.Comment, event.CloseTag, event.Text)}
	lx := New(r, Options{Reporter: diag.BagReporter{Bag: bag}})
	lx.Write([]byte("<a>\n<!-- open"))
	lx.End()
	want := []string{
		`comment " open" 1:0-1:9`,
		`close_tag "a" 0:0-0:3 1:9-1:9 self=false attrs=[] texts=[]`,
	}
	if !slices.Equal(r.got, want) {
		t.Fatalf("got %q\nwant %q", r.got, want)
	}
	if lx.Pos().Line != 0 || lx.Pos().Character != 0 || lx.Depth() != 0 || lx.Retained() != 0 {
		t.Fatalf("not reset: pos %s depth %d retained %d", lx.Pos(), lx.Depth(), lx.Retained())
	}
	if bag.Len() != 2 {
		t.Fatalf("diagnostics = %d, want 2", bag.Len())
	}

	r.got = nil
	lx.Write([]byte("<b>x</b>"))
	lx.End()
	if want := []string{`text "x" 0:3-0:4`, `close_tag "b" 0:0-0:3 0:4-0:8 self=false attrs=[] texts=["x"]`}; !slices.Equal(r.got, want) {
		t.Fatalf("second document: %q", r.got)
	}
}

func TestEnd_UnterminatedTagIsText(t *testing.T) {
	got := tokenize(`ok <a href="x`, event.SetOf(event.Text, event.OpenTagStart), Options{})
	want := []string{
		`text "ok " 0:0-0:3`,
		`open_tag_start "a" 0:3-0:0 0:0-0:0 self=false attrs=[] texts=[]`,
		`text "<a href=\"x" 0:3-0:13`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestEnd_SuspendedTagIsText(t *testing.T) {
	bag := diag.NewBag(0)
	opts := Options{Reporter: diag.BagReporter{Bag: bag}}
	got := tokenize(`<r><a b={<c>x`, event.SetOf(event.Text, event.CloseTag), opts, 5)
	want := []string{
		`text "x" 0:12-0:13`,
		`close_tag "c" 0:9-0:12 0:13-0:13 self=false attrs=[] texts=["x"]`,
		`text "<a b={<c>x" 0:3-0:13`,
		`close_tag "r" 0:0-0:3 0:13-0:13 self=false attrs=[] texts=["<a b={<c>x"]`,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	if want := []diag.Code{diag.LexUnclosedElement, diag.LexSuspendedTag, diag.LexUnclosedElement}; !slices.Equal(codes, want) {
		t.Fatalf("diagnostics = %v", codes)
	}
}

func TestSubscriptionChangeBetweenWrites(t *testing.T) {
	r := &recorder{set: event.SetOf(event.OpenTag)}
	lx := New(r, Options{})
	lx.Write([]byte("<a><b>"))
	r.set = event.SetOf(event.CloseTag)
	lx.Write([]byte("</b></a>"))
	lx.End()
	if n := names(r.got, event.OpenTag); !slices.Equal(n, []string{"a", "b"}) {
		t.Fatalf("open tags = %q", n)
	}
	if n := names(r.got, event.CloseTag); !slices.Equal(n, []string{"b", "a"}) {
		t.Fatalf("close tags = %q", n)
	}
}

func TestRetained_ReleasesCompletedTokens(t *testing.T) {
	lx := New(&recorder{set: event.All}, Options{})
	for range 1000 {
		lx.Write([]byte("<item key='v'>payload</item>"))
	}
	if lx.Retained() != 0 {
		t.Fatalf("retained %d bytes after complete tokens", lx.Retained())
	}
	lx.Write([]byte("<item attr='unfinished"))
	if lx.Retained() != len("<item attr='unfinished") {
		t.Fatalf("retained %d bytes for an open tag", lx.Retained())
	}
}
