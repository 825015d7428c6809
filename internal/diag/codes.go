package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInfo                Code = 1000
	LexUnmatchedCloseTag   Code = 1001
	LexEmptyCloseTag       Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedCDATA   Code = 1004
	LexUnterminatedDoctype Code = 1005
	LexUnterminatedPI      Code = 1006
	LexUnterminatedTag     Code = 1007
	LexUnclosedElement     Code = 1008
	LexImplicitClose       Code = 1009
	LexEmptyPITarget       Code = 1010
	LexUnterminatedDecl    Code = 1011
	LexSuspendedTag        Code = 1012

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexUnmatchedCloseTag:   "Close tag without matching open element",
		LexEmptyCloseTag:       "Empty close tag",
		LexUnterminatedComment: "Unterminated comment",
		LexUnterminatedCDATA:   "Unterminated CDATA section",
		LexUnterminatedDoctype: "Unterminated doctype",
		LexUnterminatedPI:      "Unterminated processing instruction",
		LexUnterminatedTag:     "Unterminated tag",
		LexUnclosedElement:     "Element not closed before end of input",
		LexImplicitClose:       "Element closed implicitly",
		LexEmptyPITarget:       "Processing instruction without target",
		LexUnterminatedDecl:    "Unterminated declaration",
		LexSuspendedTag:        "Tag inside brace expression left open",
		IOLoadFileError:        "Failed to load file",
		IODecodeError:          "Failed to decode input",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
