package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-flg/codec"
)

func newEncodeCmd() *cobra.Command {
	to := codec.Base64

	cmd := &cobra.Command{
		Use:   "encode [FILE]",
		Short: "Apply a transform to raw text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, fileArg(args, 0))
			if err != nil {
				return err
			}
			out := codec.Encode(string(data), to)
			if to.TrimsInput() {
				// Encoded output is a single token; end it like a text line.
				out += "\n"
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().Var(&to, "to", "transform to apply")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	from := codec.Base64

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Reverse a transform, printing the raw text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, fileArg(args, 0))
			if err != nil {
				return err
			}
			text := string(data)
			if from.TrimsInput() {
				text = strings.TrimSpace(text)
			}
			out, err := codec.Decode(text, from)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().Var(&from, "from", "transform to reverse")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		from, to codec.Scheme
		output   string
	)

	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Re-store a document with another transform",
		Long: `Read a document stored with --from and write it in canonical form
stored with --to. --from defaults to the global --scheme.`,
		Example: `  flg convert --to hex settings.flg -o settings.hex
  flg convert --from hex --to raw settings.hex`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("from") {
				from = a.cfg.Scheme
			}
			doc, _, err := a.readDocument(cmd, fileArg(args, 0), from)
			if err != nil {
				return err
			}
			a.logger.Debug().
				Str("from", from.String()).
				Str("to", to.String()).
				Int("entries", doc.Len()).
				Msg("converting document")
			return a.writeDocument(cmd, output, doc, to)
		},
	}
	cmd.Flags().Var(&from, "from", "transform the input is stored with")
	cmd.Flags().Var(&to, "to", "transform to store the output with")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	return cmd
}
