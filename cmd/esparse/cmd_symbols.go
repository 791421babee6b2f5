package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/esparse/js/codebase"
)

func newSymbolsCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "symbols <dir>",
		Short: "List functions and top-level variables, optionally filtered by a fuzzy query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb := codebase.New(args[0])
			if err := cb.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			for _, s := range cb.SearchSymbols(query) {
				fmt.Fprintf(out, "%s:%d:%d\t%s\t%s\t%s\n",
					s.Path, s.Start.Line, s.Start.Column+1, s.Kind, s.QualifiedName(), s.Detail)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "fuzzy filter on qualified names")

	return cmd
}
