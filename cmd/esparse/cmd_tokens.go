package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/esparse/format"
	"github.com/dhamidi/esparse/js/parser"
)

func newTokensCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a JavaScript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			tokens, err := parser.Tokenize(source, parser.WithRange())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := format.MarshalTokens(tokens)
				if err != nil {
					return fmt.Errorf("encode tokens: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			for _, t := range tokens {
				fmt.Fprintf(out, "%d:%d\t%s\t%s\n", t.LineNumber, t.Start-t.LineStart, t.Kind, t.Raw)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print tokens as a JSON array")

	return cmd
}
