package lang

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// eof is returned by [reader.safePeek] when the cursor is past the input.
const eof rune = -1

// Position identifies a location in parser input.
type Position struct {
	Offset int `json:"offset" yaml:"offset"` // byte offset
	Line   int `json:"line"   yaml:"line"`   // 1-indexed
	Column int `json:"column" yaml:"column"` // 1-indexed, in characters
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// reader is a forward-only cursor over the complete parser input.
// It owns the cursor offset; nothing else mutates it.
type reader struct {
	input string
	pos   int
}

func newReader(input string) *reader {
	return &reader{input: input}
}

func (r *reader) atEOF() bool { return r.pos >= len(r.input) }

// peek returns the character at the cursor.
func (r *reader) peek() (rune, error) {
	if r.atEOF() {
		return 0, r.fail(ErrUnexpectedEndOfInput, "Unexpected end of input")
	}

	c, _ := utf8.DecodeRuneInString(r.input[r.pos:])

	return c, nil
}

// safePeek returns the character at the cursor, or eof.
func (r *reader) safePeek() rune {
	if r.atEOF() {
		return eof
	}

	c, _ := utf8.DecodeRuneInString(r.input[r.pos:])

	return c
}

// hasPrefix reports whether the unread input begins with s.
func (r *reader) hasPrefix(s string) bool {
	return len(r.input)-r.pos >= len(s) && r.input[r.pos:r.pos+len(s)] == s
}

// advance moves the cursor past one character.
func (r *reader) advance() {
	if r.atEOF() {
		return
	}

	_, size := utf8.DecodeRuneInString(r.input[r.pos:])
	r.pos += size
}

// consume advances past expected, or fails without moving.
func (r *reader) consume(expected rune) error {
	c, err := r.peek()
	if err != nil {
		return err
	}

	if c != expected {
		return r.fail(ErrExpectedCharacter, "Expected '%c'", expected)
	}

	r.advance()

	return nil
}

// match advances past the text matched by re at the cursor. The pattern
// must be anchored with ^. Nothing is consumed if there is no match.
func (r *reader) match(re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(r.input[r.pos:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}

	text := r.input[r.pos : r.pos+loc[1]]
	r.pos += loc[1]

	return text, true
}

// skipWhitespace advances past spaces, tabs, and line breaks.
func (r *reader) skipWhitespace() {
	for !r.atEOF() && isSpace(r.input[r.pos]) {
		r.pos++
	}
}

// position recomputes the 1-indexed line and column of the cursor by
// scanning all consumed input.
func (r *reader) position() Position {
	return positionAt(r.input, r.pos)
}

// fail builds a SyntaxError of the given kind at the cursor.
func (r *reader) fail(kind *Error, format string, args ...any) *SyntaxError {
	return failAt(r.input, r.pos, kind, format, args...)
}

func failAt(
	input string,
	offset int,
	kind *Error,
	format string,
	args ...any,
) *SyntaxError {
	pos := positionAt(input, offset)

	return &SyntaxError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

func positionAt(input string, offset int) Position {
	pos := Position{Offset: offset, Line: 1, Column: 1}

	for _, c := range input[:min(offset, len(input))] {
		if c == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}

	return pos
}

// Character classification

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isNameStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c rune) bool { return isNameStart(c) || isDigit(c) }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
