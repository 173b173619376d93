// Package errors describes the malformed constructs a tolerant parse
// skips over.
package errors

import "fmt"

// ParseError represents a single line the parser could not place.
// It includes the position of the line.
type ParseError struct {
	Message string
	Line    int    // 1-based; 0 when the problem is not tied to a line
	Text    string // the offending line or tag name
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Message, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Text)
}

// ParseErrors is a slice of ParseError that implements the error interface.
// This allows reporting every problem found during parsing at once.
type ParseErrors []ParseError

func (p ParseErrors) Error() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return "flg: parsing error: " + p[0].Error()
	}
	return fmt.Sprintf("flg: parsing error: %s (and %d more)", p[0].Error(), len(p)-1)
}

// Strings returns the message of every error.
func (p ParseErrors) Strings() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Error()
	}
	return out
}
