package flg_test

import (
	"bytes"
	"errors"
	"net/netip"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/codec"
	flgerrors "github.com/KimNorgaard/go-flg/errors"
)

func TestUnmarshal(t *testing.T) {
	t.Run("Into Document", func(t *testing.T) {
		var doc *ast.Document
		err := flg.Unmarshal([]byte(scenario), &doc)
		require.NoError(t, err)
		require.Equal(t, []string{"<name>", "<age>"}, doc.Keys())

		var byValue ast.Document
		err = flg.Unmarshal([]byte(scenario), &byValue)
		require.NoError(t, err)
		require.True(t, doc.Equal(&byValue))
	})

	t.Run("Into struct", func(t *testing.T) {
		type person struct {
			Name    string
			Age     int `flg:"age"`
			Height  float64
			Admin   *bool
			Tags    []string
			Greet   ast.Lambda
			Manager *string
			Skipped string `flg:"-"`
		}
		input := `
<name>"Alice"</name>
<age>30</age>
<height>1.68</height>
<admin>true</admin>
<tags>["ops", "dev"]</tags>
<greet>{return 1}</greet>
<manager>null</manager>
<skipped>"no"</skipped>
<unknown>1</unknown>
`
		var p person
		err := flg.Unmarshal([]byte(input), &p)
		require.NoError(t, err)
		require.Equal(t, "Alice", p.Name)
		require.Equal(t, 30, p.Age)
		require.Equal(t, 1.68, p.Height)
		require.NotNil(t, p.Admin)
		require.True(t, *p.Admin)
		require.Equal(t, []string{"ops", "dev"}, p.Tags)
		require.Equal(t, ast.Lambda{Code: "return 1"}, p.Greet)
		require.Nil(t, p.Manager)
		require.Empty(t, p.Skipped)
	})

	t.Run("Into map", func(t *testing.T) {
		var m map[string]int
		err := flg.Unmarshal([]byte("<a>1</a>\n<b>2</b>\n"), &m)
		require.NoError(t, err)
		require.Equal(t, map[string]int{"a": 1, "b": 2}, m)
	})

	t.Run("Into map of values", func(t *testing.T) {
		var m map[string]ast.Value
		err := flg.Unmarshal([]byte("<a>1</a>\n<b>[true]</b>\n"), &m)
		require.NoError(t, err)
		require.Equal(t, map[string]ast.Value{
			"a": ast.Int(1),
			"b": ast.Array{ast.Bool(true)},
		}, m)
	})

	t.Run("Into interface", func(t *testing.T) {
		var v any
		input := "<s>\"x\"</s>\n<i>1</i>\n<f>1.5</f>\n<b>false</b>\n<n>null</n>\n<a>[1, \"y\"]</a>\n<l>{c}</l>\n"
		err := flg.Unmarshal([]byte(input), &v)
		require.NoError(t, err)
		require.Equal(t, map[string]any{
			"s": "x",
			"i": int64(1),
			"f": 1.5,
			"b": false,
			"n": nil,
			"a": []any{int64(1), "y"},
			"l": ast.Lambda{Code: "c"},
		}, v)
	})

	t.Run("Numeric widening", func(t *testing.T) {
		var s struct {
			F float32
			U uint8
		}
		err := flg.Unmarshal([]byte("<F>2</F>\n<U>200</U>\n"), &s)
		require.NoError(t, err)
		require.Equal(t, float32(2), s.F)
		require.Equal(t, uint8(200), s.U)
	})

	t.Run("Lambda into string", func(t *testing.T) {
		var s struct{ Code string }
		err := flg.Unmarshal([]byte("<Code>{x + 1}</Code>\n"), &s)
		require.NoError(t, err)
		require.Equal(t, "x + 1", s.Code)
	})

	t.Run("Fixed size arrays", func(t *testing.T) {
		var s struct{ Pair [2]int }
		err := flg.Unmarshal([]byte("<Pair>[1, 2]</Pair>\n"), &s)
		require.NoError(t, err)
		require.Equal(t, [2]int{1, 2}, s.Pair)

		var short struct{ Pair [3]int }
		err = flg.Unmarshal([]byte("<Pair>[1, 2]</Pair>\n"), &short)
		require.ErrorContains(t, err, "cannot unmarshal array of length 2 into Go array of length 3")
	})

	t.Run("Null resets to zero value", func(t *testing.T) {
		s := struct{ N int }{N: 5}
		err := flg.Unmarshal([]byte("<N>null</N>\n"), &s)
		require.NoError(t, err)
		require.Zero(t, s.N)
	})
}

func TestUnmarshal_TextUnmarshaler(t *testing.T) {
	type server struct {
		Addr netip.Addr
		Peer *netip.Addr
	}

	var s server
	err := flg.Unmarshal([]byte("<Addr>\"10.0.0.1\"</Addr>\n<Peer>\"::1\"</Peer>\n"), &s)
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("10.0.0.1"), s.Addr)
	require.NotNil(t, s.Peer)
	require.Equal(t, netip.MustParseAddr("::1"), *s.Peer)

	err = flg.Unmarshal([]byte("<Addr>\"not an address\"</Addr>\n"), &s)
	var uErr *flg.UnmarshalerError
	require.ErrorAs(t, err, &uErr)
	require.Contains(t, err.Error(), "error calling UnmarshalText for type *netip.Addr")
}

func TestDecoder(t *testing.T) {
	t.Run("Warnings", func(t *testing.T) {
		input := "stray\n</x>\n<a>\n    1\n</b>\n<open>\n"
		dec := flg.NewDecoder(strings.NewReader(input))

		var doc *ast.Document
		require.NoError(t, dec.Decode(&doc))
		require.Equal(t, []string{"<a>"}, doc.Keys())
		require.Len(t, dec.Warnings(), 4)
		require.Equal(t, "line 1: text outside of any tag: stray", dec.Warnings()[0])
	})

	t.Run("Logger receives anomalies", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

		var doc *ast.Document
		err := flg.Unmarshal([]byte("</x>\n"), &doc, flg.WithLogger(logger))
		require.NoError(t, err)
		require.Contains(t, buf.String(), `"message":"closing tag without open tag"`)
		require.Contains(t, buf.String(), `"line":1`)
	})

	t.Run("MaxDepth", func(t *testing.T) {
		dec := flg.NewDecoder(strings.NewReader("<a>\n<b>\n    1\n</b>\n</a>\n"), flg.MaxDepth(1))
		var doc *ast.Document
		require.NoError(t, dec.Decode(&doc))
		require.Equal(t, []string{"<a>"}, doc.Keys())
		require.NotEmpty(t, dec.Warnings())
	})

	t.Run("Read error", func(t *testing.T) {
		readErr := errors.New("disk on fire")
		dec := flg.NewDecoder(iotest.ErrReader(readErr))
		var doc *ast.Document
		require.ErrorIs(t, dec.Decode(&doc), readErr)
	})

	t.Run("Nil reader", func(t *testing.T) {
		var doc *ast.Document
		require.Error(t, flg.NewDecoder(nil).Decode(&doc))
	})

	t.Run("Malformed transform input", func(t *testing.T) {
		var doc *ast.Document
		err := flg.Unmarshal([]byte("XYZ"), &doc, flg.WithScheme(codec.Hex))
		require.ErrorIs(t, err, codec.ErrMalformed)
		require.True(t, strings.HasPrefix(err.Error(), "flg: codec: hex"))
	})

	t.Run("Surrounding whitespace is ignored by encodings", func(t *testing.T) {
		data := "\n  " + codec.Encode("<a>1</a>\n", codec.Base64) + "  \n"
		var doc *ast.Document
		require.NoError(t, flg.Unmarshal([]byte(data), &doc, flg.WithScheme(codec.Base64)))
		v, _ := doc.Get("a")
		require.Equal(t, ast.Int(1), v)
	})
}

func TestDecoder_Strict(t *testing.T) {
	var doc *ast.Document
	require.NoError(t, flg.Unmarshal([]byte(scenario), &doc, flg.Strict()))

	err := flg.Unmarshal([]byte("stray\n<a>1</a>\n<b>\n"), &doc, flg.Strict())
	var parseErrs flgerrors.ParseErrors
	require.ErrorAs(t, err, &parseErrs)
	require.Len(t, parseErrs, 2)
	require.Equal(t, 1, parseErrs[0].Line)
	require.EqualError(t, err, "flg: parsing error: line 1: text outside of any tag: stray (and 1 more)")
}
