package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/errors"
	"github.com/KimNorgaard/go-flg/internal/lexer"
	"github.com/KimNorgaard/go-flg/internal/token"
)

// DefaultMaxDepth bounds the number of simultaneously open tags.
const DefaultMaxDepth = 1000

// Option configures a Parser.
type Option func(*Parser)

// WithLogger makes the parser report tolerated anomalies at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithMaxDepth sets the maximum number of open tags. Non-positive values
// are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser holds the state of the parser.
type Parser struct {
	l        *lexer.Lexer
	logger   zerolog.Logger
	maxDepth int

	doc             *ast.Document
	stack           []string
	pendingOverride bool
	errors          errors.ParseErrors
}

// New creates a new parser.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Errors returns every malformed construct the parser skipped over. They
// never affect the resulting document.
func (p *Parser) Errors() errors.ParseErrors {
	return p.errors
}

// Warnings returns the messages of Errors.
func (p *Parser) Warnings() []string {
	return p.errors.Strings()
}

// Err returns the error, if any, that stopped the underlying reader.
func (p *Parser) Err() error {
	return p.l.Err()
}

// Parse consumes the whole input and returns the resulting document.
// Parse never fails on malformed content; see Warnings.
func (p *Parser) Parse() *ast.Document {
	p.doc = ast.New()
	p.stack = p.stack[:0]
	p.pendingOverride = false
	p.errors = nil

	for tok := p.l.NextToken(); tok.Type != token.EOF; tok = p.l.NextToken() {
		p.parseLine(tok)
	}

	for _, name := range p.stack {
		p.warn(token.Token{Line: -1, Name: name}, "tag never closed")
	}
	return p.doc
}

func (p *Parser) parseLine(tok token.Token) {
	switch tok.Type {
	case token.EMPTY, token.COMMENT:
		return

	case token.OVERRIDE:
		p.pendingOverride = true

	case token.ELEMENT:
		p.set(tok.Name, lexer.StripComment(tok.Value))

	case token.OPEN:
		// A tag carrying its value inline closes itself.
		if rest := lexer.StripComment(tok.Value); rest != "" {
			p.set(tok.Name, rest)
			return
		}
		if len(p.stack) >= p.maxDepth {
			p.warn(tok, fmt.Sprintf("more than %d open tags", p.maxDepth))
			return
		}
		p.stack = append(p.stack, tok.Name)

	case token.CLOSE:
		if len(p.stack) == 0 {
			p.warn(tok, "closing tag without open tag")
			return
		}
		top := p.stack[len(p.stack)-1]
		if ast.CanonicalName(top) != ast.CanonicalName(tok.Name) {
			p.warn(tok, "closing tag does not match "+top)
		}
		p.stack = p.stack[:len(p.stack)-1]

	case token.MALFORMED:
		p.warn(tok, "tag without '>'")

	case token.TEXT:
		if len(p.stack) == 0 {
			p.warn(tok, "text outside of any tag")
			return
		}
		// Only the last non-empty value line of a tag survives.
		if text := lexer.StripComment(tok.Literal); text != "" {
			p.set(p.stack[len(p.stack)-1], text)
		}
	}
}

func (p *Parser) set(name, text string) {
	p.doc.Set(name, ParseValue(text))
	if p.pendingOverride {
		p.doc.SetOverride(true)
		p.pendingOverride = false
	}
}

func (p *Parser) warn(tok token.Token, msg string) {
	text := tok.Literal
	if text == "" {
		text = tok.Name
	}
	line := tok.Line
	if line < 0 {
		line = 0
	}
	p.errors = append(p.errors, errors.ParseError{Message: msg, Line: line, Text: text})
	p.logger.Debug().
		Int("line", tok.Line).
		Str("text", text).
		Msg(msg)
}

// ParseValue parses the text of a value: an array, a lambda, or a
// primitive. It never fails; unrecognised text becomes a string.
func ParseValue(text string) ast.Value {
	text = strings.TrimSpace(text)

	if len(text) >= 2 && strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return parseArray(text[1 : len(text)-1])
	}
	if len(text) >= 2 && strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return ast.Lambda{Code: text[1 : len(text)-1]}
	}
	return ParsePrimitive(text)
}

func parseArray(inner string) ast.Value {
	// Blank brackets are an empty array rather than one empty string, so
	// that empty arrays survive a serialize and parse round trip.
	if strings.TrimSpace(inner) == "" {
		return ast.Array{}
	}
	parts := splitElements(inner)
	arr := make(ast.Array, 0, len(parts))
	for _, part := range parts {
		arr = append(arr, ParsePrimitive(part))
	}
	return arr
}

// splitElements splits s on commas that are not inside a double-quoted
// span. Backslash escapes are not recognised.
func splitElements(s string) []string {
	var parts []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// ParsePrimitive parses a quoted string, boolean, null, integer or float.
// Anything else is kept verbatim as a string.
func ParsePrimitive(text string) ast.Value {
	text = strings.TrimSpace(text)

	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return ast.String(text[1 : len(text)-1])
	}

	switch text {
	case "true":
		return ast.Bool(true)
	case "false":
		return ast.Bool(false)
	case "null", "Null":
		return ast.Null{}
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.Int(i)
	}
	if strings.Contains(text, ".") {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return ast.Float(f)
		}
	}
	return ast.String(text)
}
