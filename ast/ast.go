package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// Kind names the variant of a Value.
type Kind string

const (
	NullKind   Kind = "null"
	BoolKind   Kind = "bool"
	IntKind    Kind = "int"
	FloatKind  Kind = "float"
	StringKind Kind = "string"
	ArrayKind  Kind = "array"
	LambdaKind Kind = "lambda"
)

// Value is the base interface for every datum that can be stored in a
// Document. The set of implementations is closed: Null, Bool, Int, Float,
// String, Array and Lambda.
type Value interface {
	// Kind reports which variant the value is.
	Kind() Kind
	// String returns a human readable representation of the value.
	// Strings are returned without quotes.
	String() string
	valueNode()
}

// Null is the absence of a value.
type Null struct{}

func (Null) valueNode()     {}
func (Null) Kind() Kind     { return NullKind }
func (Null) String() string { return "null" }

// Bool represents a boolean literal.
type Bool bool

func (Bool) valueNode()       {}
func (Bool) Kind() Kind       { return BoolKind }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Int represents a 64-bit signed integer literal.
type Int int64

func (Int) valueNode()       {}
func (Int) Kind() Kind       { return IntKind }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float represents a 64-bit floating point literal.
type Float float64

func (Float) valueNode()       {}
func (Float) Kind() Kind       { return FloatKind }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// String represents a string literal. No escape processing is ever applied.
type String string

func (String) valueNode()       {}
func (String) Kind() Kind       { return StringKind }
func (s String) String() string { return string(s) }

// Array is an ordered sequence of values. Elements may have mixed kinds.
type Array []Value

func (Array) valueNode() {}
func (Array) Kind() Kind { return ArrayKind }
func (a Array) String() string {
	var out bytes.Buffer
	elements := make([]string, 0, len(a))
	for _, el := range a {
		if el == nil {
			el = Null{}
		}
		elements = append(elements, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

// Lambda holds raw, unevaluated code text.
type Lambda struct {
	Code string
}

func (Lambda) valueNode()       {}
func (Lambda) Kind() Kind       { return LambdaKind }
func (l Lambda) String() string { return "{" + l.Code + "}" }

// Equal reports whether a and b are structurally equal. Arrays compare
// element-wise in order. A nil Value is treated as Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Lambda:
		bv, ok := b.(Lambda)
		return ok && av.Code == bv.Code
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}
