package formatter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/internal/token"
)

const (
	defaultIndent = 4
)

// Formatter writes an FLG document to an output stream in canonical form.
type Formatter struct {
	w      io.Writer
	indent string
}

// New returns a new formatter that writes to w. A nil indentSpaces selects
// the canonical four-space indent.
func New(w io.Writer, indentSpaces *int) *Formatter {
	spaces := defaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	var indentStr string
	if spaces > 0 {
		indentStr = strings.Repeat(" ", spaces)
	}
	return &Formatter{w: w, indent: indentStr}
}

// Format writes every entry of doc in insertion order. An empty document
// produces no output.
func (f *Formatter) Format(doc *ast.Document) error {
	for _, e := range doc.Entries() {
		if err := f.writeEntry(e, doc.Overridden()); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *Formatter) writeEntry(e ast.Entry, override bool) error {
	var sb strings.Builder
	if override {
		sb.WriteString(token.OverrideMarker + "\n")
	}
	name := ast.BareName(e.Name)
	sb.WriteString(token.OpenMarker + name + ">\n")
	sb.WriteString(f.indent)
	sb.WriteString(Value(e.Value))
	sb.WriteString("\n")
	sb.WriteString(token.CloseMarker + name + ">\n")
	sb.WriteString("\n")
	return f.write(sb.String())
}

// Value renders v the way it appears on a value line.
func Value(v ast.Value) string {
	switch n := v.(type) {
	case nil, ast.Null:
		return "null"
	case ast.Bool:
		return strconv.FormatBool(bool(n))
	case ast.Int:
		return strconv.FormatInt(int64(n), 10)
	case ast.Float:
		return formatFloat(float64(n))
	case ast.String:
		return `"` + string(n) + `"`
	case ast.Lambda:
		return "{" + n.Code + "}"
	case ast.Array:
		elements := make([]string, 0, len(n))
		for _, el := range n {
			elements = append(elements, Value(el))
		}
		return "[" + strings.Join(elements, ", ") + "]"
	default:
		panic(fmt.Sprintf("flg: unsupported value type for formatting: %T", n))
	}
}

// formatFloat returns the shortest representation of f that still reads
// back as a float, which requires a '.' in the text.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}
