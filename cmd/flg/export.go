package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
)

// lambdaTag marks lambda code in exported YAML.
const lambdaTag = "!lambda"

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Print a document as YAML",
		Long: `Print a document as a YAML mapping in document order.

Lambdas are tagged !lambda. A set override flag is noted in a comment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, fileArg(args, 0), a.cfg.Scheme)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(yamlDocument(doc)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func yamlDocument(doc *ast.Document) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if doc.Overridden() {
		root.HeadComment = "@Override"
	}
	for _, e := range doc.Entries() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ast.BareName(e.Name)}
		root.Content = append(root.Content, key, yamlValue(e.Value))
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func yamlValue(v ast.Value) *yaml.Node {
	switch n := v.(type) {
	case ast.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(n))}
	case ast.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: n.String()}
	case ast.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: flg.FormatValue(n)}
	case ast.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(n)}
	case ast.Lambda:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: lambdaTag, Value: n.Code}
	case ast.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, el := range n {
			seq.Content = append(seq.Content, yamlValue(el))
		}
		return seq
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
