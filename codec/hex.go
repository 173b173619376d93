package codec

import (
	"encoding/hex"
	"strings"
)

// EncodeHex renders every byte as two uppercase hex digits.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// DecodeHex is the inverse of EncodeHex. Digits are accepted in either case.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, malformed("hex", err)
	}
	return b, nil
}
