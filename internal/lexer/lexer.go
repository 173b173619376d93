package lexer

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/KimNorgaard/go-flg/internal/token"
)

// Lexer splits FLG source into lines and classifies each one.
type Lexer struct {
	r    *bufio.Reader
	line int
	done bool
	err  error
}

// New creates and returns a new Lexer.
func New(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r)}
}

// NewString is a convenience wrapper around New for in-memory source.
func NewString(src string) *Lexer {
	return New(strings.NewReader(src))
}

// Err returns the first non-EOF error encountered while reading.
func (l *Lexer) Err() error {
	return l.err
}

// NextToken reads the next line and returns it as a token. Once the input
// is exhausted it returns an EOF token on every call.
func (l *Lexer) NextToken() token.Token {
	if l.done {
		return token.Token{Type: token.EOF, Line: l.line}
	}

	raw, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
		if !errors.Is(err, io.EOF) {
			l.err = err
		}
		if raw == "" {
			return token.Token{Type: token.EOF, Line: l.line}
		}
	}
	l.line++

	tok := Classify(raw)
	tok.Line = l.line
	return tok
}

// Classify trims a single source line and determines its token type.
// Classification is ordered: blank, comment, override marker, closing tag,
// self-closing element, opening tag, and finally plain text. A line that
// starts like a tag but has no usable name is MALFORMED.
func Classify(raw string) token.Token {
	lit := strings.TrimSpace(raw)
	tok := token.Token{Literal: lit}

	switch {
	case lit == "":
		tok.Type = token.EMPTY
	case strings.HasPrefix(lit, token.CommentMarker):
		tok.Type = token.COMMENT
	case strings.HasPrefix(lit, token.OverrideMarker):
		tok.Type = token.OVERRIDE
	case strings.HasPrefix(lit, token.CloseMarker):
		tok.Type = token.CLOSE
		tok.Name = token.OpenMarker + lit[len(token.CloseMarker):]
	case strings.HasPrefix(lit, token.OpenMarker):
		classifyTag(&tok)
	default:
		tok.Type = token.TEXT
	}
	return tok
}

func classifyTag(tok *token.Token) {
	lit := tok.Literal
	openEnd := strings.IndexByte(lit, '>')
	closeStart := strings.Index(lit[1:], token.CloseMarker)
	if closeStart >= 0 {
		closeStart++
	}

	// A tag without '>' before its closing marker has no usable name.
	if openEnd < 0 || (closeStart > 0 && openEnd > closeStart) {
		tok.Type = token.MALFORMED
		return
	}

	tok.Name = lit[:openEnd+1]
	if closeStart > 0 {
		tok.Type = token.ELEMENT
		tok.Value = lit[openEnd+1 : closeStart]
		return
	}
	tok.Type = token.OPEN
	tok.Value = lit[openEnd+1:]
}

// StripComment truncates s at the first '#' and trims the result. Quotes
// are not taken into account, so a '#' inside a quoted string also starts
// a comment.
func StripComment(s string) string {
	if i := strings.Index(s, token.CommentMarker); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
