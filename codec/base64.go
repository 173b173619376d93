package codec

import "encoding/base64"

// EncodeBase64 encodes b with the standard alphabet and '=' padding.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 is the inverse of EncodeBase64.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, malformed("base64", err)
	}
	return b, nil
}
