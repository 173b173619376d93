package token

// Type is the type of a token. Every line of FLG source becomes exactly
// one token.
type Type string

// Token represents a single classified source line.
type Token struct {
	Type    Type
	Literal string // the trimmed line
	Name    string // tag name including brackets, for ELEMENT and OPEN
	Value   string // raw value text, for ELEMENT and OPEN
	Line    int
}

const (
	EOF Type = "EOF"

	EMPTY    Type = "EMPTY"    // blank line
	COMMENT  Type = "COMMENT"  // # a comment
	OVERRIDE Type = "OVERRIDE" // @Override

	ELEMENT Type = "ELEMENT" // <name>value</name>
	OPEN    Type = "OPEN"    // <name> or <name> value
	CLOSE   Type = "CLOSE"   // </name>

	MALFORMED Type = "MALFORMED" // <name with no usable '>'

	TEXT Type = "TEXT" // anything else, usually a value line
)

const (
	OverrideMarker = "@Override"
	CommentMarker  = "#"
	OpenMarker     = "<"
	CloseMarker    = "</"
)

// Skippable reports whether tokens of type t never carry content.
func (t Type) Skippable() bool {
	return t == EMPTY || t == COMMENT
}
