package lexer

import "fmt"

// state: где остановился автомат между вызовами Write.
type state uint8

const (
	stText state = iota
	stTagOpen
	stTagName
	stAttrSpace
	stAttrName
	stAttrAfterName
	stAttrEq
	stAttrValueDQ
	stAttrValueSQ
	stAttrValueUnquoted
	stAttrValueUnquotedSlash
	stAttrValueBrace
	stAttrValueBraceLt
	stTagSlash
	stCloseTagName
	stCloseTagEnd
	stBang
	stBangDash
	stBangMarker
	stComment
	stCDATA
	stDoctype
	stDeclaration
	stPITarget
	stPIContentWS
	stPIContent
	stPIQuestion
)

var stateNames = [...]string{
	stText:                   "Text",
	stTagOpen:                "TagOpen",
	stTagName:                "TagName",
	stAttrSpace:              "AttrSpace",
	stAttrName:               "AttrName",
	stAttrAfterName:          "AttrAfterName",
	stAttrEq:                 "AttrEq",
	stAttrValueDQ:            "AttrValueDoubleQuoted",
	stAttrValueSQ:            "AttrValueSingleQuoted",
	stAttrValueUnquoted:      "AttrValueUnquoted",
	stAttrValueUnquotedSlash: "AttrValueUnquotedSlash",
	stAttrValueBrace:         "AttrValueBrace",
	stAttrValueBraceLt:       "AttrValueBraceLt",
	stTagSlash:               "TagSlash",
	stCloseTagName:           "CloseTagName",
	stCloseTagEnd:            "CloseTagEnd",
	stBang:                   "Bang",
	stBangDash:               "BangDash",
	stBangMarker:             "BangMarker",
	stComment:                "Comment",
	stCDATA:                  "CDATA",
	stDoctype:                "Doctype",
	stDeclaration:            "Declaration",
	stPITarget:               "PITarget",
	stPIContentWS:            "PIContentWS",
	stPIContent:              "PIContent",
	stPIQuestion:             "PIQuestion",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// inTag reports whether s is inside an open or close tag token.
func (s state) inTag() bool {
	return s >= stTagName && s <= stCloseTagEnd
}

// inBang reports whether s is inside <! markup that has not yet been
// classified as a comment, CDATA section or doctype.
func (s state) inBang() bool {
	return s == stBang || s == stBangDash || s == stBangMarker || s == stDeclaration
}
