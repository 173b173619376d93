package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/file"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Print a document every time its file changes",
		Long: `Load FILE, print it in canonical form, and print it again after every
change until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := file.NewHolder(args[0], a.cfg.Scheme, a.logger, a.options(a.cfg.Scheme)...)
			if err != nil {
				return err
			}
			defer h.Stop()

			out := cmd.OutOrStdout()
			updates := make(chan *ast.Document, 1)
			h.OnChange(func(doc *ast.Document) {
				// Drop a stale pending update in favour of the newest one.
				select {
				case <-updates:
				default:
				}
				updates <- doc
			})

			fmt.Fprint(out, flg.Serialize(h.Get()))
			if err := h.Watch(); err != nil {
				return err
			}

			ctx := cmd.Context()
			for {
				select {
				case doc := <-updates:
					fmt.Fprintf(out, "# %s changed\n", h.Path())
					fmt.Fprint(out, flg.Serialize(doc))
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}
