package flg

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-flg/codec"
	"github.com/KimNorgaard/go-flg/internal/formatter"
	"github.com/KimNorgaard/go-flg/internal/marshaler"
)

// Encoder writes FLG documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the FLG encoding of v to the stream.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}

	doc, err := marshaler.Marshal(v)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := formatter.New(&sb, o.indent).Format(doc); err != nil {
		return fmt.Errorf("flg: %w", err)
	}

	_, err = io.WriteString(e.w, codec.Encode(sb.String(), o.scheme))
	return err
}
