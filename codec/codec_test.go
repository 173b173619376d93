package codec_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-flg/codec"
)

const sample = "<x>\n    1\n</x>\n\n"

func TestEncode_Vectors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		scheme   codec.Scheme
		expected string
	}{
		{"Raw", "abc", codec.Raw, "abc"},
		{"Hex", "<x>", codec.Hex, "3C783E"},
		{"Hex newline", "\n", codec.Hex, "0A"},
		{"Binary", "A\n", codec.Binary, "0100000100001010"},
		{"Base32 one byte", "f", codec.Base32, "MY"},
		{"Base32 six bytes", "foobar", codec.Base32, "MZXW6YTBOI"},
		{"Base32 five bytes", "fooba", codec.Base32, "MZXW6YTB"},
		{"Base64", "foobar", codec.Base64, "Zm9vYmFy"},
		{"Base64 padded", "fo", codec.Base64, "Zm8="},
		{"Rot12", "Hello, World!", codec.Rot12, "Tqxxa, Iadxp!"},
		{"Rot13", "abcXYZ", codec.Rot(13), "nopKLM"},
		{"Rot26 is identity", "abc", codec.Rot(26), "abc"},
		{"Negative rotation", "abc", codec.Rot(-1), "zab"},
		{"Non-ASCII passes through", "åb", codec.Rot(1), "åc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, codec.Encode(tt.input, tt.scheme))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	schemes := []codec.Scheme{
		codec.Raw, codec.Hex, codec.Binary, codec.Base32, codec.Base64,
		codec.Rot12, codec.Rot(0), codec.Rot(1), codec.Rot(13), codec.Rot(25), codec.Rot(27), codec.Rot(-5),
	}
	inputs := []string{"", sample, "@Override\n<name>\n    \"Ünïcode ✓\"\n</name>\n\n", "f", "fo", "foo", "foob", "fooba"}

	for _, s := range schemes {
		for _, in := range inputs {
			t.Run(s.String(), func(t *testing.T) {
				decoded, err := codec.Decode(codec.Encode(in, s), s)
				require.NoError(t, err)
				require.Equal(t, in, decoded)
			})
		}
	}
}

func TestRotation(t *testing.T) {
	t.Run("Rot12 is not self-inverse", func(t *testing.T) {
		twice := codec.Rotate(codec.Rotate(sample, 12), 12)
		require.NotEqual(t, sample, twice)
	})

	t.Run("Rot12 decodes with 14", func(t *testing.T) {
		require.Equal(t, 14, codec.InverseShift(12))
		require.Equal(t, sample, codec.Rotate(codec.Encode(sample, codec.Rot12), 14))
		require.Equal(t, codec.Rot(14), codec.Rot12.Inverse())
	})

	t.Run("Inverse shifts", func(t *testing.T) {
		require.Equal(t, 0, codec.InverseShift(0))
		require.Equal(t, 0, codec.InverseShift(26))
		require.Equal(t, 13, codec.InverseShift(13))
		require.Equal(t, 1, codec.InverseShift(25))
		require.Equal(t, 5, codec.InverseShift(-5))
	})

	t.Run("Encode with the inverse decodes", func(t *testing.T) {
		for p := -30; p <= 30; p++ {
			encoded := codec.Encode(sample, codec.Rot(p))
			require.Equal(t, sample, codec.Encode(encoded, codec.Rot(codec.InverseShift(p))), "shift %d", p)
		}
	})
}

func TestDecode_Permissive(t *testing.T) {
	t.Run("Hex accepts lower case", func(t *testing.T) {
		out, err := codec.Decode("3c783e", codec.Hex)
		require.NoError(t, err)
		require.Equal(t, "<x>", out)
	})

	t.Run("Binary drops trailing fragment", func(t *testing.T) {
		out, err := codec.Decode("01000001010", codec.Binary)
		require.NoError(t, err)
		require.Equal(t, "A", out)
	})

	t.Run("Base32 ignores foreign characters and case", func(t *testing.T) {
		out, err := codec.Decode("mzxw 6ytb-oi====\n", codec.Base32)
		require.NoError(t, err)
		require.Equal(t, "foobar", out)
	})

	t.Run("Base32 drops incomplete trailing bits", func(t *testing.T) {
		for _, in := range []string{"M", "MZX", "MZXW6Y"} {
			out, err := codec.Decode(in, codec.Base32)
			require.NoError(t, err)
			expected := map[string]string{"M": "", "MZX": "f", "MZXW6Y": "foo"}[in]
			require.Equal(t, expected, out, in)
		}
	})
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		scheme codec.Scheme
	}{
		{"Hex odd length", "3C7", codec.Hex},
		{"Hex invalid digit", "ZZ", codec.Hex},
		{"Binary invalid digit", "0100000200000000", codec.Binary},
		{"Base64 invalid", "Zm9v*", codec.Base64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.input, tt.scheme)
			require.ErrorIs(t, err, codec.ErrMalformed)
			require.Contains(t, err.Error(), "codec: ")
		})
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected codec.Scheme
	}{
		{"", codec.Raw},
		{"raw", codec.Raw},
		{"HEX", codec.Hex},
		{"bin", codec.Binary},
		{"binary", codec.Binary},
		{"base32", codec.Base32},
		{"b64", codec.Base64},
		{"rot12", codec.Rot12},
		{"rot:3", codec.Rot(3)},
		{"rot-2", codec.Rot(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := codec.ParseScheme(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, s)

			again, err := codec.ParseScheme(s.String())
			require.NoError(t, err)
			require.Equal(t, s, again)
		})
	}

	for _, bad := range []string{"gzip", "rot", "rotx"} {
		_, err := codec.ParseScheme(bad)
		require.Error(t, err, bad)
	}
}

func TestScheme_YAML(t *testing.T) {
	var cfg struct {
		Scheme codec.Scheme `yaml:"scheme"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("scheme: rot:7\n"), &cfg))
	require.Equal(t, codec.Rot(7), cfg.Scheme)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "scheme: rot7\n", string(out))

	require.Error(t, yaml.Unmarshal([]byte("scheme: zip\n"), &cfg))
}

func TestScheme_Flag(t *testing.T) {
	var s codec.Scheme
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&s, "scheme", "transform")
	require.NoError(t, fs.Parse([]string{"--scheme", "base64"}))
	require.Equal(t, codec.Base64, s)
	require.Equal(t, "scheme", fs.Lookup("scheme").Value.Type())
	require.Error(t, fs.Parse([]string{"--scheme=zip"}))

	require.True(t, s.TrimsInput())
	require.False(t, codec.Rot12.TrimsInput())
}
