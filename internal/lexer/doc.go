// Package lexer implements the streaming markup tokenizer.
//
// The lexer is a byte-driven state machine. Its whole state (current state,
// marks into the accumulator, element stack, suspended tags) lives in the
// Lexer value, so a token cut by a Write boundary resumes exactly where it
// stopped. Offsets are absolute stream offsets; the accumulator drops bytes
// once no unfinished token refers to them.
//
// Malformed input is never an error. Unknown close tags and unterminated
// constructs come out as literal text (or as the construct they started)
// and are reported through Options.Reporter.
package lexer
