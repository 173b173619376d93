package flg

import (
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-flg/ast"
)

// lookup returns the value stored under name, treating null as absent.
func lookup(doc *ast.Document, name string) (ast.Value, error) {
	v, ok := doc.Get(name)
	if !ok {
		return nil, ErrAbsent
	}
	if _, isNull := v.(ast.Null); isNull {
		return nil, ErrAbsent
	}
	return v, nil
}

func coercionError(name string, v ast.Value, target string, err error) error {
	return &CoercionError{Name: ast.CanonicalName(name), Kind: v.Kind(), Target: target, Err: err}
}

// GetString returns the natural text of the value under name: strings
// unquoted, numbers and booleans as literals, arrays as `[a, b]` and
// lambdas as `{code}`.
func GetString(doc *ast.Document, name string) (string, error) {
	v, err := lookup(doc, name)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// GetInt returns the value under name as an integer. Floats are truncated
// and strings are parsed as base-10 integers.
func GetInt(doc *ast.Document, name string) (int64, error) {
	v, err := lookup(doc, name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case ast.Int:
		return int64(n), nil
	case ast.Float:
		return int64(n), nil
	case ast.String:
		i, perr := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		if perr != nil {
			return 0, coercionError(name, v, "int", ErrNotANumber)
		}
		return i, nil
	default:
		return 0, coercionError(name, v, "int", ErrType)
	}
}

// GetFloat returns the value under name as a float. Strings are parsed
// with strconv.ParseFloat.
func GetFloat(doc *ast.Document, name string) (float64, error) {
	v, err := lookup(doc, name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case ast.Float:
		return float64(n), nil
	case ast.Int:
		return float64(n), nil
	case ast.String:
		f, perr := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		if perr != nil {
			return 0, coercionError(name, v, "float", ErrNotANumber)
		}
		return f, nil
	default:
		return 0, coercionError(name, v, "float", ErrType)
	}
}

// GetBool returns the value under name as a boolean. A string is true
// only when it equals "true" ignoring case.
func GetBool(doc *ast.Document, name string) (bool, error) {
	v, err := lookup(doc, name)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case ast.Bool:
		return bool(b), nil
	case ast.String:
		return strings.EqualFold(string(b), "true"), nil
	default:
		return false, coercionError(name, v, "bool", ErrType)
	}
}

// GetArray returns the elements of the array under name.
func GetArray(doc *ast.Document, name string) (ast.Array, error) {
	v, err := lookup(doc, name)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, coercionError(name, v, "array", ErrType)
	}
	return arr, nil
}

// GetLambda returns the code of the lambda under name.
func GetLambda(doc *ast.Document, name string) (string, error) {
	v, err := lookup(doc, name)
	if err != nil {
		return "", err
	}
	l, ok := v.(ast.Lambda)
	if !ok {
		return "", coercionError(name, v, "lambda", ErrType)
	}
	return l.Code, nil
}
