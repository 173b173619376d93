package codec

import (
	"strconv"
	"strings"
)

// EncodeBinary renders every byte as eight '0'/'1' characters, most
// significant bit first, with no separators.
func EncodeBinary(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 8)
	for _, c := range b {
		for bit := 7; bit >= 0; bit-- {
			if c&(1<<bit) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// DecodeBinary converts consecutive 8-character chunks back to bytes. A
// trailing chunk shorter than eight characters is dropped.
func DecodeBinary(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/8)
	for i := 0; i+8 <= len(s); i += 8 {
		v, err := strconv.ParseUint(s[i:i+8], 2, 8)
		if err != nil {
			return nil, malformed("binary", err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
