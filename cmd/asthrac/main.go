/*
Asthrac is the Asthra compiler core's developer-facing driver.

Usage:

	asthrac check [flags] [files...]
	asthrac check --repl

The "check" subcommand runs source files through the full parse/analyze/
lower pipeline and reports diagnostics. With --repl it instead starts an
interactive, line-edited session that feeds each line through the lexer and
prints the resulting tokens, for inspecting lexer behavior one snippet at a
time during development.

The flags to "check" are:

	-c, --config FILE
		Load project configuration from FILE. Defaults to "asthra.toml" in
		the current directory; a missing file falls back to built-in
		defaults rather than erroring.

	--target TRIPLE
		Override the configured backend target triple.

	--parallel
		Analyze files of the package concurrently after the mandatory
		serialized declaration-collection pass.

	--json
		Print diagnostics as the stable JSON schema instead of
		human-readable text.

	--repl
		Start an interactive lexer REPL instead of checking files.
*/
package main

import (
	"fmt"
	"os"

	"github.com/asthra-lang/asthrac/internal/version"
)

const (
	// ExitSuccess indicates every file checked cleanly (or, for --version,
	// that printing it succeeded).
	ExitSuccess = iota

	// ExitCheckError indicates a checked file produced an error diagnostic,
	// or the REPL/check pipeline hit an I/O failure.
	ExitCheckError

	// ExitUsageError indicates a problem with the command line itself.
	ExitUsageError
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: asthrac check [flags] [files...]")
		return ExitUsageError
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:])
	case "-v", "--version":
		fmt.Printf("asthrac %s\n", version.Current)
		return ExitSuccess
	case "-h", "--help":
		fmt.Println("usage: asthrac check [flags] [files...]")
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\nDo asthrac -h for help.\n", args[0])
		return ExitUsageError
	}
}
