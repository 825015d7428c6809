package driver

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeInput wraps r so the lexer always sees UTF-8. name is a WHATWG
// label ("windows-1251", "utf-16le", ...). "" and "auto" sniff a byte
// order mark and fall back to passing bytes through.
func decodeInput(r io.Reader, name string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	case "utf-8", "utf8":
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// CheckEncoding reports whether name is accepted by Tokenize.
func CheckEncoding(name string) error {
	_, err := decodeInput(strings.NewReader(""), name)
	return err
}
