package marshaler

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/internal/mapper"
)

var (
	documentType = reflect.TypeOf(ast.Document{})
	valueType    = reflect.TypeOf((*ast.Value)(nil)).Elem()

	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// TextMarshalerError wraps an error returned by a MarshalText method.
type TextMarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *TextMarshalerError) Error() string {
	return "error calling MarshalText for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *TextMarshalerError) Unwrap() error { return e.Err }

// Marshal converts a Go value into a document. v must be an
// *ast.Document, a struct, or a map with string keys.
func Marshal(v any) (*ast.Document, error) {
	m := &marshaler{}
	return m.document(reflect.ValueOf(v))
}

// Value converts a single Go value into an FLG value.
func Value(v any) (ast.Value, error) {
	m := &marshaler{}
	val, err := m.value(reflect.ValueOf(v), false)
	if err != nil {
		return nil, fmt.Errorf("flg: %w", err)
	}
	return val, nil
}

type marshaler struct{}

// isEmptyValue reports whether the value v is empty.
// It is equivalent to the `encoding/json` definition of empty:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func (m *marshaler) document(v reflect.Value) (*ast.Document, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, fmt.Errorf("flg: cannot marshal nil %s as a document", v.Type())
		}
		if v.Kind() == reflect.Pointer && v.Type().Elem() == documentType {
			return v.Interface().(*ast.Document), nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, fmt.Errorf("flg: cannot marshal nil as a document")
	}

	switch v.Kind() {
	case reflect.Struct:
		if v.Type() == documentType {
			doc := v.Interface().(ast.Document)
			return &doc, nil
		}
		return m.marshalStruct(v)
	case reflect.Map:
		return m.marshalMap(v)
	default:
		return nil, fmt.Errorf("flg: cannot marshal %s as a document", v.Type())
	}
}

func (m *marshaler) marshalStruct(v reflect.Value) (*ast.Document, error) {
	doc := ast.New()
	for _, f := range mapper.Fields(v.Type()) {
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			// A nil embedded pointer has no fields to contribute.
			continue
		}
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		val, err := m.value(fv, false)
		if err != nil {
			return nil, fmt.Errorf("flg: field %s: %w", f.Name, err)
		}
		doc.Set(f.Name, val)
	}
	return doc, nil
}

func (m *marshaler) marshalMap(v reflect.Value) (*ast.Document, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("flg: cannot marshal map with non-string key type %s", v.Type().Key())
	}
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	doc := ast.New()
	for _, k := range keys {
		val, err := m.value(v.MapIndex(k), false)
		if err != nil {
			return nil, fmt.Errorf("flg: key %s: %w", k.String(), err)
		}
		doc.Set(k.String(), val)
	}
	return doc, nil
}

func (m *marshaler) value(v reflect.Value, inArray bool) (ast.Value, error) {
	if !v.IsValid() {
		return ast.Null{}, nil
	}
	if v.Kind() != reflect.Pointer && v.CanInterface() && v.Type().Implements(valueType) {
		if v.Kind() == reflect.Interface && v.IsNil() {
			return ast.Null{}, nil
		}
		val := v.Interface().(ast.Value)
		if _, nested := val.(ast.Array); nested && inArray {
			return nil, fmt.Errorf("nested arrays are not supported")
		}
		return val, nil
	}
	if v.CanInterface() && v.Type().Implements(textMarshalerType) {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return ast.Null{}, nil
		}
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, &TextMarshalerError{Type: v.Type(), Err: err}
		}
		return ast.String(text), nil
	}

	// Follow pointers and interfaces to find the concrete value.
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ast.Null{}, nil
		}
		return m.value(v.Elem(), inArray)
	}

	switch v.Kind() {
	case reflect.String:
		return ast.String(v.String()), nil
	case reflect.Bool:
		return ast.Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val := v.Uint()
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("cannot marshal uint64 %d (overflows int64)", val)
		}
		return ast.Int(int64(val)), nil
	case reflect.Float32, reflect.Float64:
		return ast.Float(v.Float()), nil
	case reflect.Slice, reflect.Array:
		if inArray {
			return nil, fmt.Errorf("nested arrays are not supported")
		}
		if v.Kind() == reflect.Slice && v.IsNil() {
			return ast.Null{}, nil
		}
		arr := make(ast.Array, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			el, err := m.value(v.Index(i), true)
			if err != nil {
				return nil, err
			}
			arr = append(arr, el)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", v.Type())
	}
}
