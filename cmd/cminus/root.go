package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hassan/cminus/internal/driver"
	"github.com/hassan/cminus/internal/parser"
)

// options holds the persistent flags shared by every command.
type options struct {
	legacyDot bool
	maxDepth  int
	verbose   bool

	logger *slog.Logger
}

func (o *options) config() driver.Config {
	return driver.Config{
		MaxDepth:  o.maxDepth,
		LegacyDot: o.legacyDot,
		Logger:    o.logger,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cminus",
		Short: "C-- front end: parsing and name analysis",
		Long: `cminus parses C-- programs and resolves every identifier to its
declaration.

Commands:
  check    Report syntax and name errors
  resolve  Print the program with every identifier annotated with its type
  watch    Re-check a file every time it changes
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.maxDepth < 0 {
				return errors.New("--max-depth must not be negative")
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.legacyDot, "legacy-dot", false, "re-derive intermediate struct types of a.b.c from the tags in scope")
	flags.IntVar(&opts.maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting of blocks and expressions")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newCheckCmd(opts),
		newResolveCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// exitCodeError carries the process exit status of a failed command.
// reported is set when the failure has already been printed as
// diagnostics.
type exitCodeError struct {
	code     int
	err      error
	reported bool
}

func (e exitCodeError) Error() string {
	if e.err == nil {
		return "command failed"
	}
	return e.err.Error()
}

func (e exitCodeError) ExitCode() int {
	if e.code <= 0 {
		return 1
	}
	return e.code
}

func isReported(err error) bool {
	var e exitCodeError
	return errors.As(err, &e) && e.reported
}
