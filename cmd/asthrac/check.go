package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/asthra-lang/asthrac/internal/compile"
	"github.com/asthra-lang/asthrac/internal/config"
)

func runCheck(args []string) int {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "asthra.toml", "Project configuration file to load.")
	target := fs.String("target", "", "Override the configured backend target triple.")
	jsonOut := fs.Bool("json", false, "Print diagnostics as JSON instead of human-readable text.")
	parallel := fs.Bool("parallel", false, "Analyze files of a package concurrently after declaration collection.")
	repl := fs.Bool("repl", false, "Start an interactive lexer REPL instead of checking files.")
	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}

	if *repl {
		return runREPL()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asthrac: %s\n", err)
		return ExitUsageError
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "asthrac check: no files given\nDo asthrac check -h for help.")
		return ExitUsageError
	}

	opts := compile.Options{
		Target:           cfg.Target,
		OptLevel:         cfg.OptLevel,
		DisabledWarnings: cfg.DisabledCategories(),
		Coverage:         cfg.Coverage,
		ParallelFiles:    cfg.ParallelFiles || *parallel,
		Logger:           newWriterLogger(os.Stderr),
	}
	if *target != "" {
		opts.Target = *target
	}

	res, err := compile.Compile(context.Background(), files, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asthrac: %s\n", err)
		return ExitCheckError
	}

	if *jsonOut {
		out, err := res.Engine.ExportJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "asthrac: %s\n", err)
			return ExitCheckError
		}
		fmt.Println(string(out))
	} else {
		res.Engine.RenderHuman(os.Stdout)
	}

	if res.Module == nil {
		return ExitCheckError
	}
	return ExitSuccess
}
