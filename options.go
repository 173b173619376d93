package flg

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-flg/codec"
	"github.com/KimNorgaard/go-flg/internal/parser"
)

// Option configures encoding and decoding.
type Option func(*options) error

type options struct {
	indent   *int
	scheme   codec.Scheme
	logger   zerolog.Logger
	maxDepth int
	strict   bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		logger:   zerolog.Nop(),
		maxDepth: parser.DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Indent sets the number of spaces before each value line. The canonical
// form uses four. n must not be negative.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("flg: indent must be a non-negative integer")
		}
		o.indent = &n
		return nil
	}
}

// WithScheme selects the on-disk transform applied after serializing and
// reversed before parsing. The default is codec.Raw.
func WithScheme(s codec.Scheme) Option {
	return func(o *options) error {
		o.scheme = s
		return nil
	}
}

// WithLogger sets the logger used to report tolerated parse anomalies.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// MaxDepth sets how many tags may be open at once while parsing.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("flg: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// Strict makes decoding fail with an errors.ParseErrors value when the
// input contains lines the parser would otherwise skip.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}
