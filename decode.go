package flg

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/codec"
	"github.com/KimNorgaard/go-flg/internal/lexer"
	"github.com/KimNorgaard/go-flg/internal/mapper"
	"github.com/KimNorgaard/go-flg/internal/parser"
)

var (
	astValueType = reflect.TypeOf((*ast.Value)(nil)).Elem()
	lambdaType   = reflect.TypeOf(ast.Lambda{})
)

// Decoder reads and decodes FLG documents from an input stream.
type Decoder struct {
	r        io.Reader
	opts     []Option
	warnings []string
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder may buffer data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the whole input, reverses the configured transform, parses
// the result and stores it in the value pointed to by v.
//
// v may be a **ast.Document or *ast.Document, a pointer to a struct, a
// pointer to a map with string keys, or a pointer to an empty interface
// (which receives a map[string]any).
//
// Malformed FLG content causes an error only with the Strict option; see
// Warnings. Other errors come from reading, from the transform, and from
// mapping onto v.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("flg: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}

	doc, err := d.parse(string(data), o)
	if err != nil {
		return err
	}
	return decodeDocument(doc, v)
}

// Warnings returns the parse anomalies found by the last call to Decode.
func (d *Decoder) Warnings() []string {
	return d.warnings
}

func (d *Decoder) parse(text string, o *options) (*ast.Document, error) {
	if o.scheme.TrimsInput() {
		text = strings.TrimSpace(text)
	}
	text, err := codec.Decode(text, o.scheme)
	if err != nil {
		return nil, fmt.Errorf("flg: %w", err)
	}

	p := parser.New(lexer.NewString(text),
		parser.WithLogger(o.logger),
		parser.WithMaxDepth(o.maxDepth),
	)
	doc := p.Parse()
	d.warnings = p.Warnings()
	if o.strict && len(p.Errors()) > 0 {
		return nil, p.Errors()
	}
	return doc, nil
}

func decodeDocument(doc *ast.Document, v any) error {
	switch out := v.(type) {
	case **ast.Document:
		if out == nil {
			return fmt.Errorf("flg: Unmarshal(nil %T)", v)
		}
		*out = doc
		return nil
	case *ast.Document:
		if out == nil {
			return fmt.Errorf("flg: Unmarshal(nil %T)", v)
		}
		*out = *doc
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("flg: Unmarshal(non-pointer %T or nil)", v)
	}
	rv = rv.Elem()

	switch rv.Kind() {
	case reflect.Struct:
		return mapStruct(doc, rv)
	case reflect.Map:
		return mapMap(doc, rv)
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("flg: cannot unmarshal document into non-empty interface %s", rv.Type())
		}
		m := make(map[string]any, doc.Len())
		if err := mapMap(doc, reflect.ValueOf(&m).Elem()); err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(m))
		return nil
	default:
		return fmt.Errorf("flg: cannot unmarshal document into Go value of type %s", rv.Type())
	}
}

func mapStruct(doc *ast.Document, rv reflect.Value) error {
	for _, e := range doc.Entries() {
		name := ast.BareName(e.Name)
		f, ok := mapper.Lookup(rv.Type(), name)
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanSet() {
			continue
		}
		if err := mapValue(e.Value, fv); err != nil {
			return fmt.Errorf("%w (entry %s)", err, e.Name)
		}
	}
	return nil
}

func mapMap(doc *ast.Document, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("flg: cannot unmarshal document into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	elemType := mapType.Elem()
	for _, e := range doc.Entries() {
		newVal := reflect.New(elemType).Elem()
		if err := mapValue(e.Value, newVal); err != nil {
			return fmt.Errorf("%w (entry %s)", err, e.Name)
		}
		rv.SetMapIndex(reflect.ValueOf(ast.BareName(e.Name)).Convert(mapType.Key()), newVal)
	}
	return nil
}

func mapValue(val ast.Value, rv reflect.Value) error { //nolint:gocyclo
	if val == nil {
		val = ast.Null{}
	}

	if rv.Type() == astValueType {
		rv.Set(reflect.ValueOf(&val).Elem())
		return nil
	}

	if _, isNull := val.(ast.Null); isNull {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	handled, err := tryTextUnmarshal(val, rv)
	if err != nil || handled {
		return err
	}

	if rv.Kind() == reflect.Interface {
		return mapInterface(val, rv)
	}

	switch node := val.(type) {
	case ast.String:
		if rv.Kind() != reflect.String {
			return typeError("string", rv)
		}
		rv.SetString(string(node))
		return nil
	case ast.Bool:
		if rv.Kind() != reflect.Bool {
			return typeError("bool", rv)
		}
		rv.SetBool(bool(node))
		return nil
	case ast.Int:
		return mapInt(node, rv)
	case ast.Float:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			if rv.OverflowFloat(float64(node)) {
				return fmt.Errorf("flg: float value %g overflows Go value of type %s", float64(node), rv.Type())
			}
			rv.SetFloat(float64(node))
			return nil
		}
		return typeError("float", rv)
	case ast.Lambda:
		switch {
		case rv.Type() == lambdaType:
			rv.Set(reflect.ValueOf(node))
			return nil
		case rv.Kind() == reflect.String:
			rv.SetString(node.Code)
			return nil
		}
		return typeError("lambda", rv)
	case ast.Array:
		switch rv.Kind() {
		case reflect.Slice:
			newSlice := reflect.MakeSlice(rv.Type(), len(node), len(node))
			for i, el := range node {
				if err := mapValue(el, newSlice.Index(i)); err != nil {
					return err
				}
			}
			rv.Set(newSlice)
			return nil
		case reflect.Array:
			if rv.Len() != len(node) {
				return fmt.Errorf("flg: cannot unmarshal array of length %d into Go array of length %d", len(node), rv.Len())
			}
			for i, el := range node {
				if err := mapValue(el, rv.Index(i)); err != nil {
					return err
				}
			}
			return nil
		}
		return typeError("array", rv)
	default:
		return fmt.Errorf("flg: cannot unmarshal %T", val)
	}
}

func mapInt(i ast.Int, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(int64(i)) {
			return fmt.Errorf("flg: integer value %d overflows Go value of type %s", int64(i), rv.Type())
		}
		rv.SetInt(int64(i))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("flg: integer value %d overflows Go value of type %s", int64(i), rv.Type())
		}
		rv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(i))
		return nil
	default:
		return typeError("integer", rv)
	}
}

// tryTextUnmarshal uses encoding.TextUnmarshaler for string values. It
// returns true if the unmarshaler was found and used.
func tryTextUnmarshal(val ast.Value, rv reflect.Value) (bool, error) {
	s, isString := val.(ast.String)
	if !isString || !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}
	u, ok := pv.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return false, nil
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return true, &UnmarshalerError{Type: pv.Type(), Err: err}
	}
	return true, nil
}

func mapInterface(val ast.Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("flg: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	var concrete any
	switch node := val.(type) {
	case ast.String:
		concrete = string(node)
	case ast.Bool:
		concrete = bool(node)
	case ast.Int:
		concrete = int64(node)
	case ast.Float:
		concrete = float64(node)
	case ast.Lambda:
		concrete = node
	case ast.Array:
		out := make([]any, len(node))
		for i, el := range node {
			if err := mapValue(el, reflect.ValueOf(&out[i]).Elem()); err != nil {
				return err
			}
		}
		concrete = out
	default:
		return nil
	}
	rv.Set(reflect.ValueOf(concrete))
	return nil
}

func typeError(what string, rv reflect.Value) error {
	return fmt.Errorf("flg: cannot unmarshal %s into Go value of type %s", what, rv.Type())
}
