package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/codec"
	"github.com/KimNorgaard/go-flg/file"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgFile  string
	logLevel string
	scheme   codec.Scheme

	cfg    *config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "flg",
		Short: "Inspect, edit and convert FLG documents",
		Long: `flg works with FLG documents: tag-delimited text files of named values.

Documents may be stored raw or with a reversible transform (hex, binary,
base32, base64 or a letter rotation such as rot12), selected with --scheme.
Commands that take a FILE read standard input when it is omitted or "-".

Examples:
  flg fmt settings.flg
  flg get settings.flg name
  flg set settings.flg retries 3
  flg convert --to base64 settings.flg > settings.b64`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "YAML config file (scheme, indent, log_level)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.Var(&a.scheme, "scheme", "transform of stored documents: raw, hex, binary, base32, base64, rotN")

	rootCmd.AddCommand(
		newFmtCmd(a),
		newCheckCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newDeleteCmd(a),
		newKeysCmd(a),
		newEncodeCmd(),
		newDecodeCmd(),
		newConvertCmd(a),
		newExportCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the config file and lets explicitly set flags override it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = a.scheme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	a.cfg = cfg
	a.logger = zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger().Level(level)
	return nil
}

// options returns the encoding options for scheme.
func (a *app) options(scheme codec.Scheme) []flg.Option {
	return []flg.Option{
		flg.WithScheme(scheme),
		flg.WithLogger(a.logger),
		flg.Indent(*a.cfg.Indent),
	}
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

// readInput returns the raw content of path, or of standard input.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if isStdio(path) {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readDocument decodes the document at path with scheme and returns the
// parser warnings alongside it.
func (a *app) readDocument(cmd *cobra.Command, path string, scheme codec.Scheme, extra ...flg.Option) (*ast.Document, []string, error) {
	var r io.Reader
	if isStdio(path) {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}

	dec := flg.NewDecoder(r, append(a.options(scheme), extra...)...)
	var doc *ast.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, err
	}
	return doc, dec.Warnings(), nil
}

// writeDocument encodes doc with scheme to path, or to standard output.
func (a *app) writeDocument(cmd *cobra.Command, path string, doc *ast.Document, scheme codec.Scheme) error {
	if isStdio(path) {
		return flg.NewEncoder(cmd.OutOrStdout(), a.options(scheme)...).Encode(doc)
	}
	return file.Save(path, doc, scheme, a.options(scheme)...)
}

func fileArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
