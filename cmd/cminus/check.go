package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hassan/cminus/internal/driver"
)

func newCheckCmd(opts *options) *cobra.Command {
	var showSymbols bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse and resolve C-- files, reporting every diagnostic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()

			failed := 0
			for _, path := range args {
				ok, err := checkFile(cfg, path, showSymbols, cmd.OutOrStdout(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				if !ok {
					failed++
				}
			}

			if failed > 0 {
				return exitCodeError{
					code:     1,
					err:      fmt.Errorf("%d of %d files failed", failed, len(args)),
					reported: true,
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSymbols, "symbols", false, "list the global symbols of every file that resolves cleanly")
	return cmd
}

// checkFile analyzes one file, printing diagnostics to errOut and progress
// to out. The error is non-nil only if the file cannot be read.
func checkFile(cfg driver.Config, path string, showSymbols bool, out, errOut io.Writer) (bool, error) {
	res, err := cfg.AnalyzeFile(path)
	if err != nil {
		return false, err
	}

	if err := res.Diags.Print(errOut); err != nil {
		return false, err
	}
	if res.Resolved() {
		fmt.Fprintf(out, "✓ %s: parsing successful\n", path)
	}
	if res.OK() {
		fmt.Fprintf(out, "✓ %s: name analysis successful\n", path)
		if showSymbols {
			for _, key := range res.Globals.Keys() {
				sym, _ := res.Globals.Lookup(key)
				fmt.Fprintf(out, "  %s\n", sym.Describe())
			}
		}
	}
	return res.OK(), nil
}
