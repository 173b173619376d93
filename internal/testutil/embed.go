package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"testing"

	"github.com/KimNorgaard/go-flg/codec"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// profileFiles names the stored copy of profile.flg for each scheme.
var profileFiles = map[codec.Kind]string{
	codec.KindRaw:    "profile.flg",
	codec.KindHex:    "profile.hex",
	codec.KindBinary: "profile.bin",
	codec.KindBase32: "profile.b32",
	codec.KindBase64: "profile.b64",
	codec.KindRot:    "profile.rot12",
}

// Profile returns the sample profile document as stored with scheme s.
// Only Rot12 is available among the rotations.
func Profile(tb testing.TB, s codec.Scheme) []byte {
	tb.Helper()
	name, ok := profileFiles[s.Kind]
	if !ok || (s.Kind == codec.KindRot && s.Shift != 12) {
		tb.Fatalf("no profile fixture for scheme %s", s)
	}
	data, err := ReadTestData(name)
	if err != nil {
		tb.Fatal(err)
	}
	return data
}
