// Package codec implements the reversible text transforms used to store
// serialized FLG documents on disk: hex, binary text, Base32, Base64 and a
// Caesar-style letter rotation.
//
// The transforms operate on text and know nothing about documents. No
// header identifies the transform that produced a file; callers must
// know which Scheme was used to write it.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when encoded input cannot be decoded.
var ErrMalformed = errors.New("malformed input")

// Kind identifies a transform.
type Kind int

const (
	KindRaw Kind = iota
	KindHex
	KindBinary
	KindBase32
	KindBase64
	KindRot
)

var kindNames = map[Kind]string{
	KindRaw:    "raw",
	KindHex:    "hex",
	KindBinary: "binary",
	KindBase32: "base32",
	KindBase64: "base64",
	KindRot:    "rot",
}

// Scheme selects a transform and its parameter. The zero value is Raw.
type Scheme struct {
	Kind  Kind
	Shift int // rotation amount, only used by KindRot
}

var (
	Raw    = Scheme{Kind: KindRaw}
	Hex    = Scheme{Kind: KindHex}
	Binary = Scheme{Kind: KindBinary}
	Base32 = Scheme{Kind: KindBase32}
	Base64 = Scheme{Kind: KindBase64}
	Rot12  = Rot(12)
)

// Rot returns a rotation scheme shifting letters by shift positions.
func Rot(shift int) Scheme {
	return Scheme{Kind: KindRot, Shift: shift}
}

// String returns the scheme name as accepted by ParseScheme.
func (s Scheme) String() string {
	if s.Kind == KindRot {
		return "rot" + strconv.Itoa(s.Shift)
	}
	if name, ok := kindNames[s.Kind]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(s.Kind)) + ")"
}

// ParseScheme parses a scheme name: raw, hex, bin, binary, base32, base64,
// rotN or rot:N (for example rot12 or rot:3).
func ParseScheme(name string) (Scheme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "raw", "flg":
		return Raw, nil
	case "hex":
		return Hex, nil
	case "bin", "binary":
		return Binary, nil
	case "base32", "b32":
		return Base32, nil
	case "base64", "b64":
		return Base64, nil
	}
	if rest, ok := strings.CutPrefix(n, "rot"); ok {
		rest = strings.TrimPrefix(rest, ":")
		shift, err := strconv.Atoi(rest)
		if err != nil {
			return Raw, fmt.Errorf("codec: invalid rotation %q: %w", name, err)
		}
		return Rot(shift), nil
	}
	return Raw, fmt.Errorf("codec: unknown scheme %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Set implements pflag.Value so a Scheme can be bound to a flag.
func (s *Scheme) Set(value string) error {
	return s.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.
func (s *Scheme) Type() string {
	return "scheme"
}

// TrimsInput reports whether the encoded form of s is insensitive to
// surrounding whitespace, which editors and shells tend to add.
func (s Scheme) TrimsInput() bool {
	switch s.Kind {
	case KindHex, KindBinary, KindBase32, KindBase64:
		return true
	}
	return false
}

// Inverse returns the scheme that undoes s when used with Encode. Only
// rotation has a distinct inverse; every other scheme is returned as is.
func (s Scheme) Inverse() Scheme {
	if s.Kind == KindRot {
		return Rot(InverseShift(s.Shift))
	}
	return s
}

// Encode transforms text with s.
func Encode(text string, s Scheme) string {
	switch s.Kind {
	case KindHex:
		return EncodeHex([]byte(text))
	case KindBinary:
		return EncodeBinary([]byte(text))
	case KindBase32:
		return EncodeBase32([]byte(text))
	case KindBase64:
		return EncodeBase64([]byte(text))
	case KindRot:
		return Rotate(text, s.Shift)
	default:
		return text
	}
}

// Decode reverses Encode. Rotation is undone with InverseShift.
func Decode(text string, s Scheme) (string, error) {
	var (
		b   []byte
		err error
	)
	switch s.Kind {
	case KindHex:
		b, err = DecodeHex(text)
	case KindBinary:
		b, err = DecodeBinary(text)
	case KindBase32:
		b = DecodeBase32(text)
	case KindBase64:
		b, err = DecodeBase64(text)
	case KindRot:
		return Rotate(text, InverseShift(s.Shift)), nil
	default:
		return text, nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func malformed(scheme string, err error) error {
	return fmt.Errorf("codec: %s: %w: %w", scheme, ErrMalformed, err)
}
