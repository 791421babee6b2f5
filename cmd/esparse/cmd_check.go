package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/esparse/js/codebase"
)

func newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Report parse errors in JavaScript files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				root = args[0]
			}

			cb := codebase.New(root)
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return fmt.Errorf("stat %s: %w", arg, err)
				}
				if info.IsDir() {
					err = cb.ScanDir(arg)
				} else {
					err = cb.ScanFile(arg)
				}
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			failed := cb.Errors()
			for _, f := range failed {
				reportFile(out, f)
			}
			fmt.Fprintf(out, "%d files, %d with errors\n", len(cb.Files()), len(failed))

			if !watch {
				if len(failed) > 0 {
					return fmt.Errorf("%d files failed to parse", len(failed))
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return cb.Watch(ctx, func(path string, info *codebase.FileInfo) {
				if info == nil {
					fmt.Fprintf(out, "%s: removed\n", path)
					return
				}
				reportFile(out, info)
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and re-check files as they change")

	return cmd
}

func reportFile(out io.Writer, f *codebase.FileInfo) {
	if perr := f.ParseError(); perr != nil {
		fmt.Fprintf(out, "%s:%d:%d: %s\n", f.Path, perr.Line, perr.Column+1, perr.Description)
		return
	}
	if f.ParseErr != nil {
		fmt.Fprintf(out, "%s: %s\n", f.Path, f.ParseErr)
		return
	}
	fmt.Fprintf(out, "%s: ok\n", f.Path)
}
