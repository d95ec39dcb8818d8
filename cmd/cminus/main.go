// Command cminus runs the C-- front end: parsing and name analysis.
//
// Usage:
//
//	cminus check FILE...         report every diagnostic
//	cminus resolve FILE [-o OUT] print the program annotated with types
//	cminus watch FILE            re-check FILE whenever it changes
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitCode := 1
		if withCode, ok := err.(interface{ ExitCode() int }); ok {
			exitCode = withCode.ExitCode()
		}
		if !isReported(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(exitCode)
	}
}
