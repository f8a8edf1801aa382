package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/lex"
	"github.com/asthra-lang/asthrac/internal/source"
)

// runREPL starts an interactive, line-edited session that feeds each entered
// line through the lexer and prints the resulting tokens, for inspecting
// lexer behavior on snippets one statement at a time during development —
// the same readline-backed interactive-loop shape as the teacher's
// internal/input.InteractiveCommandReader, adapted from reading player
// commands to echoing a token stream.
func runREPL() int {
	rl, err := readline.NewEx(&readline.Config{Prompt: "asthra> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "asthrac: create readline: %s\n", err)
		return ExitUsageError
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "asthrac: %s\n", err)
			return ExitCheckError
		}
		if line == "" {
			continue
		}
		printTokens(line)
	}
}

// printTokens lexes one REPL line in isolation (a fresh, throwaway Source
// Manager per line — the REPL never needs cross-line position tracking)
// and prints each token's kind and lexeme.
func printTokens(line string) {
	mgr := source.New()
	fid := mgr.AddVirtual("<repl>", []byte(line))
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	lexer := lex.New(mgr, fid, diags)

	for {
		tok := lexer.Next()
		if tok.Kind == lex.EOF {
			return
		}
		if tok.Kind == lex.Error {
			fmt.Printf("  error: %s\n", tok.Message)
			continue
		}
		fmt.Printf("  %-12s %q\n", tok.Kind, tok.Lexeme)
	}
}
