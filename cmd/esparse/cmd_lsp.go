package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/esparse/js/parser"
	"github.com/dhamidi/esparse/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(parser.Version)
			return server.RunStdio()
		},
	}
}
