package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newResolveCmd(opts *options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "resolve FILE",
		Short: "Print the program with every identifier annotated with its type",
		Long: `resolve analyzes FILE and, if it is free of errors, prints it back with
every identifier used in an expression followed by the type of its
declaration, and every call by the signature of its callee:

  z(int) = p(Point).x(int);
  f(int,bool->void)(z(int), true);

If analysis fails the diagnostics are printed and nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.config().AnalyzeFile(args[0])
			if err != nil {
				return err
			}
			if err := res.Diags.Print(cmd.ErrOrStderr()); err != nil {
				return err
			}
			if !res.OK() {
				return exitCodeError{
					code:     1,
					err:      fmt.Errorf("%s: name analysis failed", args[0]),
					reported: true,
				}
			}

			if outPath == "" {
				return res.Unparse(cmd.OutOrStdout())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := res.Unparse(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			opts.logger.Debug("wrote unparsed program", "file", args[0], "out", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the annotated program to this file instead of stdout")
	return cmd
}
