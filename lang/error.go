package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every [SyntaxError] unwraps to exactly one of the grammar sentinels, so
// callers can classify failures with [errors.Is].
var (
	ErrUnexpectedEndOfInput         = NewError("unexpected end of input")
	ErrExpectedCharacter            = NewError("expected character")
	ErrInvalidName                  = NewError("invalid name")
	ErrInvalidValue                 = NewError("invalid value")
	ErrInvalidNumber                = NewError("invalid number")
	ErrInvalidBoolean               = NewError("invalid boolean")
	ErrInvalidEscapeSequence        = NewError("invalid escape sequence")
	ErrInvalidHexEscape             = NewError("invalid hex escape sequence")
	ErrDuplicateKey                 = NewError("duplicate key")
	ErrInvalidReference             = NewError("invalid reference")
	ErrInvalidFunctionSyntax        = NewError("invalid function syntax")
	ErrInvalidConditionalExpression = NewError("invalid conditional expression")
	ErrUnexpectedToken              = NewError("unexpected token")

	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrNotExpression    = NewError("item is not an expression")
	ErrExprCompile      = NewError("expression compilation failed")
	ErrExprEvaluate     = NewError("expression evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
// Errors created with [Error.Wrap] or [Error.With] keep their sentinel's
// identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// It returns a new Error; the receiver is not modified.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError describes the first grammar violation found in parser input.
type SyntaxError struct {
	Kind    *Error // grammar sentinel, e.g. ErrDuplicateKey
	Message string
	Offset  int // byte offset of the cursor at failure
	Line    int // 1-indexed
	Column  int // 1-indexed
}

// Error formats the error as "<message> at line L, col C".
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, col %d", e.Message, e.Line, e.Column)
}

// Unwrap returns the grammar sentinel.
func (e *SyntaxError) Unwrap() error { return e.Kind }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	kind := ""
	if e.Kind != nil {
		kind = e.Kind.msg
	}

	return slog.GroupValue(
		slog.String("error", e.Message),
		slog.String("kind", kind),
		slog.Int("line", e.Line),
		slog.Int("col", e.Column),
	)
}

// Snippet renders the offending source line with a caret under the error
// column. It returns an empty string if the line is out of range for source.
func (e *SyntaxError) Snippet(source string) string {
	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}

	var buf strings.Builder

	num := strconv.Itoa(e.Line)

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(lines[e.Line-1])
	buf.WriteByte('\n')

	// 2 leading spaces + " | "
	pad := len(num) + 5
	if e.Column > 0 {
		pad += e.Column - 1
	}

	buf.WriteString(strings.Repeat(" ", pad))
	buf.WriteString("^\n")

	return buf.String()
}
