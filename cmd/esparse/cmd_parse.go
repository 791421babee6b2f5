package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/esparse/format"
	"github.com/dhamidi/esparse/js/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var validate bool
	var opts parser.Options

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a JavaScript file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			if validate && outputFormat != "json" {
				return fmt.Errorf("--validate requires --format json")
			}
			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			prog, err := parser.Parse(source, opts.Apply()...)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			if validate {
				data, err := format.MarshalProgram(prog)
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				if err := format.ValidateJSON(data); err != nil {
					return fmt.Errorf("schema: %w", err)
				}
			}

			if err := encoder.Encode(prog); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, cbor, tree)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check the JSON output against the AST schema")
	cmd.Flags().BoolVar(&opts.Range, "range", false, "attach source offset ranges")
	cmd.Flags().BoolVar(&opts.Loc, "loc", false, "attach line and column locations")
	cmd.Flags().StringVar(&opts.Source, "source", "", "source name recorded in locations")
	cmd.Flags().BoolVar(&opts.Comment, "comments", false, "collect comments")
	cmd.Flags().BoolVar(&opts.Tokens, "tokens", false, "collect tokens")
	cmd.Flags().BoolVar(&opts.CommentPrefix, "comment-prefix", false, "record the text before each comment (needs --range and --comments)")

	return cmd
}
