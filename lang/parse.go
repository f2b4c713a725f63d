package lang

import (
	"context"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/modulista/log"
)

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?`)
	paramPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// DefaultMaxDepth is the default maximum nesting depth of lists.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// Option configures parsing behavior.
type Option func(*options)

type options struct {
	maxDepth int
	logger   log.Logger
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithMaxDepth sets the maximum nesting depth of lists.
// A depth of zero or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Parse parses text into a value tree using default options.
func Parse(text string) (*Object, error) {
	return ParseString(context.Background(), text)
}

// ParseString parses s into a value tree.
//
// The input must be exactly one list, optionally surrounded by whitespace.
// Parsing stops at the first grammar violation and returns a *[SyntaxError];
// no partial tree is returned.
func ParseString(ctx context.Context, s string, opts ...Option) (*Object, error) {
	p := &parser{
		reader: newReader(s),
		opts:   makeOptions(opts...),
	}

	obj, err := p.parseDocument()
	if err != nil {
		p.opts.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	p.opts.logger.TraceContext(ctx, "parse complete",
		slog.Int("bytes", len(s)),
		slog.Int("items", obj.Len()))

	return obj, nil
}

// ParseReader reads all of r and parses it with [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Object, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseConditional parses a conditional in either of its textual forms:
//
//	cond ? a : b
//	{ condition: "cond" trueValue: "a" falseValue: "b" }
//
// Structured field values may be text, boolean, number, or a bare name.
// Unrecognized fields are ignored and missing fields are left empty.
func ParseConditional(text string) (Conditional, error) {
	p := &parser{reader: newReader(text), opts: makeOptions()}

	p.skipWhitespace()

	if p.safePeek() != '{' {
		return p.rawConditional(strings.TrimSpace(text), p.pos)
	}

	c, err := p.parseStructuredConditional()
	if err != nil {
		return Conditional{}, err
	}

	p.skipWhitespace()

	if !p.atEOF() {
		return Conditional{}, p.fail(ErrUnexpectedToken, "Unexpected token")
	}

	return c, nil
}

// parser implements the recursive-descent grammar over a reader.
type parser struct {
	*reader

	opts  options
	depth int
}

// parseDocument parses: ws List ws EOF.
func (p *parser) parseDocument() (*Object, error) {
	p.skipWhitespace()

	obj, err := p.parseList()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if !p.atEOF() {
		return nil, p.fail(ErrUnexpectedToken, "Unexpected token")
	}

	return obj, nil
}

// parseList parses: '{' (Name ':' Value)* '}'.
func (p *parser) parseList() (*Object, error) {
	pos := p.position()

	if err := p.consume('{'); err != nil {
		return nil, err
	}

	p.depth++
	defer func() { p.depth-- }()

	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		return nil, failAt(p.input, pos.Offset, ErrMaxDepthExceeded,
			"Maximum nesting depth %d exceeded", p.opts.maxDepth)
	}

	obj := NewObject()
	obj.Pos = pos

	p.skipWhitespace()

	for {
		c, err := p.peek()
		if err != nil {
			return nil, err
		}

		if c == '}' {
			break
		}

		start := p.pos

		name, value, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		if !obj.Add(name, value) {
			return nil, failAt(p.input, start, ErrDuplicateKey,
				"Duplicate key '%s'", name)
		}

		p.skipWhitespace()
	}

	p.advance() // '}'

	return obj, nil
}

// parseItem parses: Name ws ':' ws Value.
func (p *parser) parseItem() (string, *Value, error) {
	name, ok := p.match(namePattern)
	if !ok {
		return "", nil, p.fail(ErrInvalidName, "Invalid name")
	}

	p.skipWhitespace()

	if err := p.consume(':'); err != nil {
		return "", nil, err
	}

	p.skipWhitespace()

	value, err := p.parseValue()
	if err != nil {
		return "", nil, err
	}

	return name, value, nil
}

// parseValue dispatches on the first character of a value.
func (p *parser) parseValue() (*Value, error) {
	pos := p.position()

	c, err := p.peek()
	if err != nil {
		return nil, err
	}

	var v *Value

	switch {
	case c == '"':
		v, err = p.parseText()

	case c == '@':
		v, err = p.parseBoolean()

	case c == '{':
		var obj *Object

		obj, err = p.parseList()
		if err == nil {
			v = ObjectValue(obj)
		}

	case p.hasPrefix("//"):
		v = p.parseComment()

	case c == '-' || isDigit(c):
		v, err = p.parseNumber()

	case isNameStart(c):
		v, err = p.parseWord()

	default:
		return nil, p.fail(ErrInvalidValue, "Invalid value")
	}

	if err != nil {
		return nil, err
	}

	v.Pos = pos

	return v, nil
}

// parseText parses a double-quoted literal. \xHH is the only escape.
func (p *parser) parseText() (*Value, error) {
	s, err := p.scanText()
	if err != nil {
		return nil, err
	}

	return Text(s), nil
}

func (p *parser) scanText() (string, error) {
	if err := p.consume('"'); err != nil {
		return "", err
	}

	var b strings.Builder

	for {
		c, err := p.peek()
		if err != nil {
			return "", err
		}

		switch c {
		case '"':
			p.advance()

			return b.String(), nil

		case '\\':
			p.advance()

			x, err := p.peek()
			if err != nil {
				return "", err
			}

			if x != 'x' {
				return "", p.fail(ErrInvalidEscapeSequence, "Invalid escape sequence")
			}

			p.advance()

			if len(p.input)-p.pos < 2 ||
				!isHex(p.input[p.pos]) || !isHex(p.input[p.pos+1]) {
				return "", p.fail(ErrInvalidHexEscape, "Invalid hex escape sequence")
			}

			n, _ := strconv.ParseUint(p.input[p.pos:p.pos+2], 16, 8)
			b.WriteRune(rune(n))

			p.pos += 2

		default:
			b.WriteRune(c)
			p.advance()
		}
	}
}

// parseBoolean parses @1 or @0.
func (p *parser) parseBoolean() (*Value, error) {
	b, err := p.scanBoolean()
	if err != nil {
		return nil, err
	}

	return Boolean(b), nil
}

func (p *parser) scanBoolean() (bool, error) {
	if err := p.consume('@'); err != nil {
		return false, err
	}

	c, err := p.peek()
	if err != nil {
		return false, err
	}

	switch c {
	case '1':
		p.advance()

		return true, nil

	case '0':
		p.advance()

		return false, nil

	default:
		return false, p.fail(ErrInvalidBoolean, "Invalid boolean")
	}
}

// parseComment parses "//" followed by the rest of the logical segment.
// Only spaces and tabs are skipped before the segment is scanned, so an
// empty comment at the end of a line does not absorb the next line.
func (p *parser) parseComment() *Value {
	p.pos += len("//")

	for c := p.safePeek(); c == ' ' || c == '\t'; c = p.safePeek() {
		p.advance()
	}

	text, end := scanLogicalSegment(p.input, p.pos)
	p.pos = end

	return Comment(strings.TrimSpace(text))
}

// parseNumber parses a single numeric literal -?\d+(\.\d+)?.
func (p *parser) parseNumber() (*Value, error) {
	text, err := p.scanNumber()
	if err != nil {
		return nil, err
	}

	f, _ := strconv.ParseFloat(text, 64)

	return Number(f), nil
}

func (p *parser) scanNumber() (string, error) {
	start := p.pos

	text, ok := p.match(numberPattern)
	if !ok {
		return "", p.fail(ErrInvalidNumber, "Invalid number")
	}

	// "1invalid", "2name", "1." and "1.2.3" are malformed literals rather
	// than a number followed by something else.
	if c := p.safePeek(); c == '.' || isNameContinue(c) {
		return "", failAt(p.input, start, ErrInvalidNumber, "Invalid number")
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return "", failAt(p.input, start, ErrInvalidNumber, "Invalid number")
	}

	return text, nil
}

// parseWord resolves a value beginning with a name character into a
// function, conditional, or reference by looking ahead over the logical
// segment.
func (p *parser) parseWord() (*Value, error) {
	start := p.pos
	segment, end := scanLogicalSegment(p.input, start)

	switch {
	case strings.Contains(segment, "=>"):
		return p.parseFunction(segment, start, end)

	case strings.Contains(segment, "?"):
		c, err := p.rawConditional(strings.TrimSpace(segment), start)
		if err != nil {
			return nil, err
		}

		p.pos = end

		return &Value{Kind: KindConditional, Conditional: c}, nil

	default:
		return p.parseReference(end)
	}
}

// parseFunction parses "param => expression" from a scanned segment.
func (p *parser) parseFunction(segment string, start, end int) (*Value, error) {
	param, expression, _ := strings.Cut(segment, "=>")
	param = strings.TrimSpace(param)
	expression = strings.TrimSpace(expression)

	switch {
	case param == "":
		return nil, failAt(p.input, start, ErrInvalidFunctionSyntax,
			"Invalid function syntax: missing parameter")

	case !paramPattern.MatchString(param):
		return nil, failAt(p.input, start, ErrInvalidFunctionSyntax,
			"Invalid function syntax: parameter '%s' is not a name", param)

	case expression == "":
		return nil, failAt(p.input, start, ErrInvalidFunctionSyntax,
			"Invalid function syntax: missing expression")
	}

	p.pos = end

	return Func(param, expression), nil
}

// rawConditional validates "cond ? a : b" text: a '?' must precede the last
// ':', and none of the three parts may be empty.
func (p *parser) rawConditional(raw string, start int) (Conditional, error) {
	q := strings.Index(raw, "?")
	c := strings.LastIndex(raw, ":")

	if q < 0 || c < q ||
		strings.TrimSpace(raw[:q]) == "" ||
		strings.TrimSpace(raw[q+1:c]) == "" ||
		strings.TrimSpace(raw[c+1:]) == "" {
		return Conditional{}, failAt(p.input, start,
			ErrInvalidConditionalExpression, "Invalid conditional expression")
	}

	return Conditional{Raw: raw}, nil
}

// parseReference parses a single name. Anything but whitespace between the
// name and the end of the segment is an error.
func (p *parser) parseReference(end int) (*Value, error) {
	name, ok := p.match(namePattern)
	if !ok {
		return nil, p.fail(ErrInvalidReference, "Invalid reference")
	}

	if strings.TrimSpace(p.input[p.pos:end]) != "" {
		p.skipWhitespace()

		return nil, p.fail(ErrInvalidReference, "Invalid reference")
	}

	p.pos = end

	return Reference(name), nil
}

// parseStructuredConditional parses the object form of a conditional.
func (p *parser) parseStructuredConditional() (Conditional, error) {
	c := Conditional{Structured: true}

	if err := p.consume('{'); err != nil {
		return c, err
	}

	seen := make(map[string]bool, 3)

	for {
		p.skipWhitespace()

		next, err := p.peek()
		if err != nil {
			return c, err
		}

		if next == '}' {
			p.advance()

			return c, nil
		}

		start := p.pos

		name, ok := p.match(namePattern)
		if !ok {
			return c, p.fail(ErrInvalidName, "Invalid name")
		}

		if seen[name] {
			return c, failAt(p.input, start, ErrDuplicateKey,
				"Duplicate key '%s'", name)
		}

		seen[name] = true

		p.skipWhitespace()

		if err := p.consume(':'); err != nil {
			return c, err
		}

		p.skipWhitespace()

		field, err := p.parseConditionalField()
		if err != nil {
			return c, err
		}

		switch name {
		case "condition":
			c.Condition = field

		case "trueValue":
			c.TrueValue = field

		case "falseValue":
			c.FalseValue = field
		}
	}
}

// parseConditionalField parses one structured conditional field as text.
// Booleans keep their @1/@0 spelling and numbers their literal spelling.
func (p *parser) parseConditionalField() (string, error) {
	c, err := p.peek()
	if err != nil {
		return "", err
	}

	switch {
	case c == '"':
		return p.scanText()

	case c == '@':
		b, err := p.scanBoolean()
		if err != nil {
			return "", err
		}

		return formatBoolean(b), nil

	case c == '-' || isDigit(c):
		return p.scanNumber()

	case isNameStart(c):
		name, _ := p.match(namePattern)

		return name, nil

	default:
		return "", p.fail(ErrInvalidValue, "Invalid value")
	}
}
