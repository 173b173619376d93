package codec

// Rotate shifts every ASCII letter by shift positions within its own
// case. Other characters pass through unchanged. Negative shifts rotate
// backwards.
func Rotate(text string, shift int) string {
	shift = normalizeShift(shift)
	if shift == 0 {
		return text
	}
	// Letters are single bytes, so multi-byte sequences and invalid
	// UTF-8 pass through untouched.
	b := []byte(text)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = 'a' + (c-'a'+byte(shift))%26
		case c >= 'A' && c <= 'Z':
			b[i] = 'A' + (c-'A'+byte(shift))%26
		}
	}
	return string(b)
}

// InverseShift returns the shift that undoes a rotation by shift. Rotation
// is only self-inverse for 13 (and 0); Rot12 in particular is undone by 14.
func InverseShift(shift int) int {
	return (26 - normalizeShift(shift)) % 26
}

func normalizeShift(shift int) int {
	return ((shift % 26) + 26) % 26
}
