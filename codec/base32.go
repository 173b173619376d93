package codec

import (
	"encoding/base32"
	"strings"
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var base32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeBase32 encodes b with the standard alphabet and no padding. The
// final partial group is zero-filled.
func EncodeBase32(b []byte) string {
	return base32Encoding.EncodeToString(b)
}

// DecodeBase32 decodes s, ignoring characters outside the alphabet (in
// either case) and any trailing bits that do not complete a byte. It never
// fails.
func DecodeBase32(s string) []byte {
	clean := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if strings.ContainsRune(base32Alphabet, r) {
			return r
		}
		return -1
	}, s)

	// Groups of 1, 3 or 6 characters end with a character that carries no
	// complete byte; dropping it yields the same output.
	switch len(clean) % 8 {
	case 1, 3, 6:
		clean = clean[:len(clean)-1]
	}

	dst := make([]byte, base32Encoding.DecodedLen(len(clean)))
	n, _ := base32Encoding.Decode(dst, []byte(clean))
	return dst[:n]
}
