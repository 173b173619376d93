package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/file"
)

func newGetCmd(a *app) *cobra.Command {
	var literal bool

	cmd := &cobra.Command{
		Use:   "get FILE NAME",
		Short: "Print the value stored under NAME",
		Long: `Print the value stored under NAME.

Strings are printed without quotes. With --literal the value is printed
the way it appears in the document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, args[0], a.cfg.Scheme)
			if err != nil {
				return err
			}
			name := args[1]
			v, ok := doc.Get(name)
			if !ok {
				return fmt.Errorf("%s: %w", ast.CanonicalName(name), flg.ErrAbsent)
			}
			if literal {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), flg.FormatValue(v))
				return err
			}
			s, err := flg.GetString(doc, name)
			if errors.Is(err, flg.ErrAbsent) {
				s = "null"
			} else if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
	cmd.Flags().BoolVarP(&literal, "literal", "l", false, "print the value in FLG syntax")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var override bool

	cmd := &cobra.Command{
		Use:   "set FILE NAME VALUE",
		Short: "Store VALUE under NAME, creating FILE if needed",
		Long: `Store VALUE under NAME.

VALUE uses FLG value syntax: "quoted text", 42, 1.5, true, null,
[1, "two"] or {code}. Unquoted text that is none of these is stored as a
string.`,
		Example: `  flg set app.flg name '"Alice"'
  flg set app.flg ports '[80, 443]'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := a.loadOrCreate(path)
			if err != nil {
				return err
			}
			doc.Set(args[1], flg.ParseValue(args[2]))
			if override {
				doc.SetOverride(true)
			}
			return file.Save(path, doc, a.cfg.Scheme, a.options(a.cfg.Scheme)...)
		},
	}
	cmd.Flags().BoolVar(&override, "override", false, "set the document override flag")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete FILE NAME",
		Aliases: []string{"rm"},
		Short:   "Remove NAME from the document",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := file.Load(path, a.cfg.Scheme, a.options(a.cfg.Scheme)...)
			if err != nil {
				return err
			}
			if !doc.Has(args[1]) {
				return fmt.Errorf("%s: %w", ast.CanonicalName(args[1]), flg.ErrAbsent)
			}
			doc.Delete(args[1])
			return file.Save(path, doc, a.cfg.Scheme, a.options(a.cfg.Scheme)...)
		},
	}
}

func newKeysCmd(a *app) *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "keys [FILE]",
		Short: "List entry names in document order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, fileArg(args, 0), a.cfg.Scheme)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range doc.Keys() {
				if bare {
					k = ast.BareName(k)
				}
				fmt.Fprintln(out, k)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&bare, "bare", false, "print names without angle brackets")
	return cmd
}

// loadOrCreate loads path, or returns an empty document if it does not exist.
func (a *app) loadOrCreate(path string) (*ast.Document, error) {
	doc, err := file.Load(path, a.cfg.Scheme, a.options(a.cfg.Scheme)...)
	if errors.Is(err, os.ErrNotExist) {
		a.logger.Info().Str("path", path).Msg("creating new document")
		return ast.New(), nil
	}
	return doc, err
}
