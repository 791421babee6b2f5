package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/esparse/js/parser"
)

func newTraverseCmd() *cobra.Command {
	var prune []string

	cmd := &cobra.Command{
		Use:   "traverse <file>",
		Short: "Print node types in preorder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			skip := make(map[string]bool, len(prune))
			for _, t := range prune {
				skip[t] = true
			}

			out := cmd.OutOrStdout()
			depth := map[parser.Node]int{}
			_, err = parser.Traverse(source, func(n parser.Node) bool {
				d := depth[n]
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", d), n.Type())
				if skip[n.Type().String()] {
					return false
				}
				for _, c := range parser.Children(n) {
					depth[c] = d + 1
				}
				return true
			})
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&prune, "prune", nil, "node types whose children are not visited")

	return cmd
}
