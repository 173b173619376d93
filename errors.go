package flg

import (
	"errors"
	"reflect"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/internal/marshaler"
)

var (
	// ErrAbsent is returned by the typed accessors when a name is missing
	// or holds null.
	ErrAbsent = errors.New("flg: no such value")
	// ErrNotANumber is returned when a string cannot be read as a number.
	ErrNotANumber = errors.New("not a number")
	// ErrType is returned when a value has a kind that cannot be coerced.
	ErrType = errors.New("incompatible type")
)

// A CoercionError describes a value that could not be converted by a
// typed accessor.
type CoercionError struct {
	Name   string
	Kind   ast.Kind
	Target string
	Err    error
}

func (e *CoercionError) Error() string {
	return "flg: cannot coerce " + e.Name + " (" + string(e.Kind) + ") to " + e.Target + ": " + e.Err.Error()
}

func (e *CoercionError) Unwrap() error { return e.Err }

// A MarshalerError represents an error from calling a MarshalText method.
type MarshalerError = marshaler.TextMarshalerError

// An UnmarshalerError represents an error from calling an UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "flg: error calling UnmarshalText for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
