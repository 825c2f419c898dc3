package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dagangwood163/cppclean/cpp/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a C++ file and dump its top-level declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			builder := parser.NewAstBuilder(data, filename)
			var nodes []parser.Node
			var parseErrs []error
			for {
				node, err := builder.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					parseErrs = append(parseErrs, err)
					continue
				}
				nodes = append(nodes, node)
			}

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(nodes); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				for _, node := range nodes {
					printTree(os.Stdout, node, 0)
				}
			default:
				return fmt.Errorf("unknown format: %s (expected json or tree)", outputFormat)
			}

			for _, err := range parseErrs {
				fmt.Fprintln(os.Stderr, err)
			}
			return errors.Join(parseErrs...)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")

	return cmd
}

func printTree(w io.Writer, node parser.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *parser.Class:
		fmt.Fprintf(w, "%s%s\n", indent, n.String())
		for _, member := range n.Body {
			printTree(w, member, depth+1)
		}
	case *parser.Struct:
		fmt.Fprintf(w, "%s%s\n", indent, n.String())
		for _, member := range n.Body {
			printTree(w, member, depth+1)
		}
	case *parser.Function:
		fmt.Fprintf(w, "%s%s %s\n", indent, n.Kind(), signature(n))
	case *parser.Method:
		fmt.Fprintf(w, "%s%s %s\n", indent, n.Kind(), n.String())
	default:
		fmt.Fprintf(w, "%s%s\n", indent, node)
	}
}

func signature(f *parser.Function) string {
	var sb strings.Builder
	if f.ReturnType != nil {
		sb.WriteString(f.ReturnType.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	if mods := f.Modifiers.String(); mods != "" {
		sb.WriteString(" [")
		sb.WriteString(mods)
		sb.WriteByte(']')
	}
	return sb.String()
}
