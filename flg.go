package flg

import (
	"bytes"
	"strings"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/internal/formatter"
	"github.com/KimNorgaard/go-flg/internal/lexer"
	"github.com/KimNorgaard/go-flg/internal/parser"
)

// Parse parses FLG text into a document. Parse never fails: malformed
// lines are skipped or kept as string values.
func Parse(text string) *ast.Document {
	return parser.New(lexer.NewString(text)).Parse()
}

// ParseValue parses the text of a single value line, such as `42`,
// `"text"`, `[1, 2]` or `{code}`.
func ParseValue(text string) ast.Value {
	return parser.ParseValue(text)
}

// Serialize returns the canonical FLG text for doc. It does not modify doc.
func Serialize(doc *ast.Document) string {
	var sb strings.Builder
	// Writes to a strings.Builder cannot fail.
	_ = formatter.New(&sb, nil).Format(doc)
	return sb.String()
}

// FormatValue renders v the way it appears on a value line.
func FormatValue(v ast.Value) string {
	return formatter.Value(v)
}

// Marshal returns the FLG encoding of v, transformed with the scheme
// selected by WithScheme. v may be an *ast.Document, a struct, or a map
// with string keys.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reverses the transform selected by WithScheme, parses the
// result and stores it in the value pointed to by v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}
