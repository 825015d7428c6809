package diagfmt

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"saxwasm/internal/source"
)

// lineAt returns line number line (zero-based) of src without its newline.
func lineAt(src []byte, line uint32) ([]byte, bool) {
	for i := uint32(0); i < line; i++ {
		nl := bytes.IndexByte(src, '\n')
		if nl < 0 {
			return nil, false
		}
		src = src[nl+1:]
	}
	if nl := bytes.IndexByte(src, '\n'); nl >= 0 {
		src = src[:nl]
	}
	return bytes.TrimSuffix(src, []byte("\r")), true
}

// byteOffset converts a UTF-16 column within line to a byte offset,
// clamped to the line length.
func byteOffset(line []byte, character uint32) int {
	units := uint32(0)
	off := 0
	for off < len(line) && units < character {
		r, size := utf8.DecodeRune(line[off:])
		n := utf16.RuneLen(r)
		if n < 1 {
			n = 1
		}
		units += uint32(n)
		off += size
	}
	return off
}

// underline returns the source line for r and the byte span it covers on
// that line. Multi-line ranges are cut at the end of the first line.
func underline(src []byte, r source.Range) (line []byte, from, to int, ok bool) {
	line, ok = lineAt(src, r.Start.Line)
	if !ok {
		return nil, 0, 0, false
	}
	from = byteOffset(line, r.Start.Character)
	to = len(line)
	if r.End.Line == r.Start.Line {
		to = byteOffset(line, r.End.Character)
	}
	if to < from {
		to = from
	}
	return line, from, to, true
}
