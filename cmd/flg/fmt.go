package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-flg"
)

func newFmtCmd(a *app) *cobra.Command {
	var write, strict bool

	cmd := &cobra.Command{
		Use:   "fmt [FILE]",
		Short: "Rewrite a document in canonical form",
		Long: `Parse a document and print it in canonical form.

With --write the file is replaced instead. Lines that cannot be placed
are dropped; run "flg check" first to list them, or pass --strict to
refuse formatting such a document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fileArg(args, 0)
			if write && isStdio(path) {
				return fmt.Errorf("--write needs a FILE")
			}
			var extra []flg.Option
			if strict {
				extra = append(extra, flg.Strict())
			}
			doc, _, err := a.readDocument(cmd, path, a.cfg.Scheme, extra...)
			if err != nil {
				return err
			}
			if !write {
				path = ""
			}
			return a.writeDocument(cmd, path, doc, a.cfg.Scheme)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to FILE")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of dropping lines that cannot be placed")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Report lines the parser skipped",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, warnings, err := a.readDocument(cmd, fileArg(args, 0), a.cfg.Scheme)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintln(out, w)
			}
			if len(warnings) > 0 {
				return fmt.Errorf("%d problem(s) found", len(warnings))
			}
			fmt.Fprintf(out, "ok: %d entries\n", doc.Len())
			return nil
		},
	}
}
