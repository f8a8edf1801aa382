// Package compile implements spec.md §6's driver-to-core interface: the
// single compile() entry point that reads a compilation unit's source
// files, runs parsing, semantic analysis, and IR lowering over them, and
// returns either a lowered Module or the diagnostics that explain why not.
package compile

import (
	"context"
	"runtime"

	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/ir"
	"github.com/asthra-lang/asthrac/internal/parser"
	"github.com/asthra-lang/asthrac/internal/sema"
	"github.com/asthra-lang/asthrac/internal/source"
)

// WarningCategory names one of the diagnostic categories a caller may
// enable warnings for (spec.md §6: "list of enabled warning categories").
type WarningCategory = diag.Category

// Logger is the small, targeted logging interface the core accepts
// optionally (SPEC_FULL.md §10.2): the core is a library and never writes
// to stdout/stderr on its own, so a caller that wants progress output
// supplies one of these rather than the core reaching for a global logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// noopLogger discards everything; it is Options.Logger's default so
// callers that don't care about logging never need to check it for nil.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}

// Options configures one compile() call (spec.md §6).
type Options struct {
	// Target is the backend target triple. The core never inspects it; it
	// is carried through to the core-to-backend hand-off untouched.
	Target string

	// OptLevel is passed through to the backend unexamined, exactly as
	// spec.md §6 specifies ("ignored by the core").
	OptLevel int

	// DisabledWarnings lists diagnostic categories to drop entirely; an
	// empty slice keeps every warning (no implicit filtering — only an
	// explicit opt-in reduces them).
	DisabledWarnings []WarningCategory

	// Coverage requests coverage instrumentation metadata on the lowered
	// module. The core only threads the flag through to Result; actual
	// instrumentation is a backend concern (spec.md §1 Non-goals).
	Coverage bool

	// ParallelFiles enables per-file concurrent semantic analysis after
	// the mandatory serialized declaration-collection pass (spec.md §5;
	// SPEC_FULL.md §12).
	ParallelFiles bool

	// InstanceCache seeds the generic-monomorphization cache with a prior
	// compile's persisted result (SPEC_FULL.md §12), letting a second
	// compile of the same package reuse earlier instantiations.
	InstanceCache ir.InstanceCache

	// Logger receives progress messages during the compile. Defaults to a
	// no-op when left nil (SPEC_FULL.md §10.2); cmd/asthrac supplies a
	// writer-backed implementation.
	Logger Logger
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return noopLogger{}
	}
	return o.Logger
}

// Result is compile()'s successful or partial outcome: Module is present
// only when Diagnostics carries no error (spec.md §6: "on any error
// diagnostic, ir is absent").
type Result struct {
	Module      *ir.Module
	Diagnostics []diag.Diagnostic
	Coverage    bool

	// Instances is the generic-instantiation cache this compile produced,
	// present even on a failed compile so a caller can persist it and feed
	// it back in as the next compile's Options.InstanceCache.
	Instances ir.InstanceCache

	// Engine is the diagnostic engine the compile ran with, retained so a
	// caller (internal/langserver, cmd/asthrac) can render Diagnostics to
	// spec.md §6's stable JSON schema via Engine.ExportJSON, which needs
	// the Source Manager bound to Engine to resolve spans to file/line/col.
	Engine *diag.Engine
}

// Compile reads every path in sources, expecting them to share one
// `package` declaration (spec.md §6: "a compilation unit is a directory of
// files sharing the same package declaration"), and runs the full
// parse/analyze/lower pipeline over them. ctx is checked for cancellation
// before each source file is loaded, before lowering begins, and (under
// Options.ParallelFiles) between the declarations of a file being checked
// by a worker (spec.md §5; SPEC_FULL.md §12); a cancellation returns
// whatever diagnostics have been recorded so far, with no Module.
func Compile(ctx context.Context, sources []string, opts Options) (*Result, error) {
	log := opts.logger()
	mgr := source.New()
	disabled := make(map[diag.Category]bool, len(opts.DisabledWarnings))
	for _, c := range opts.DisabledWarnings {
		disabled[c] = true
	}
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{DisabledCategories: disabled})

	unit := ast.NewUnit()
	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			log.Warnf("compile: cancelled before loading %s", path)
			return partialResult(diags, opts, nil), nil
		}
		log.Debugf("compile: loading %s", path)
		fid, err := mgr.Load(path)
		if err != nil {
			return nil, err
		}
		p := parser.New(mgr, fid, diags, unit.Arena)
		unit.AddFile(p.ParseFile())
	}

	semaResult := analyze(ctx, unit, diags, opts)
	cache := toInstanceCache(semaResult.Instances)

	if diags.HasErrors() {
		log.Infof("compile: %d error diagnostic(s), no module produced", diags.Count())
		return partialResult(diags, opts, cache), nil
	}

	if err := ctx.Err(); err != nil {
		log.Warnf("compile: cancelled before lowering")
		return partialResult(diags, opts, cache), nil
	}

	log.Debugf("compile: lowering to IR")
	mod, err := ir.Lower(unit)
	if err != nil {
		return nil, err
	}
	return &Result{Module: mod, Diagnostics: diags.Sorted(), Coverage: opts.Coverage, Instances: cache, Engine: diags}, nil
}

// VirtualSource is one in-memory file to compile, keyed by a display
// path rather than a path on disk — the shape internal/langserver needs
// since a compile request arrives as file contents over HTTP, not as
// paths the server process can read (spec.md §6's "sources" as a set of
// file paths assumes a local filesystem; a remote caller has no such
// thing, so this is the in-memory analog source.Manager.AddVirtual
// already supports).
type VirtualSource struct {
	Path string
	Data []byte
}

// CompileVirtual is Compile for in-memory sources instead of paths on
// disk, used by internal/langserver.
func CompileVirtual(ctx context.Context, sources []VirtualSource, opts Options) (*Result, error) {
	mgr := source.New()
	disabled := make(map[diag.Category]bool, len(opts.DisabledWarnings))
	for _, c := range opts.DisabledWarnings {
		disabled[c] = true
	}
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{DisabledCategories: disabled})

	unit := ast.NewUnit()
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return partialResult(diags, opts, nil), nil
		}
		fid := mgr.AddVirtual(src.Path, src.Data)
		p := parser.New(mgr, fid, diags, unit.Arena)
		unit.AddFile(p.ParseFile())
	}

	semaResult := analyze(ctx, unit, diags, opts)
	cache := toInstanceCache(semaResult.Instances)

	if diags.HasErrors() {
		return partialResult(diags, opts, cache), nil
	}
	if err := ctx.Err(); err != nil {
		return partialResult(diags, opts, cache), nil
	}

	mod, err := ir.Lower(unit)
	if err != nil {
		return nil, err
	}
	return &Result{Module: mod, Diagnostics: diags.Sorted(), Coverage: opts.Coverage, Instances: cache, Engine: diags}, nil
}

// analyze runs semantic analysis per opts.ParallelFiles, seeding the
// generic-instantiation cache from a prior compile when one was supplied.
func analyze(ctx context.Context, unit *ast.Unit, diags *diag.Engine, opts Options) *sema.Result {
	seed := fromInstanceCache(opts.InstanceCache)
	if opts.ParallelFiles && len(unit.Files) > 1 {
		return sema.AnalyzeParallel(ctx, unit, diags, defaultWorkers(), seed)
	}
	return sema.AnalyzeSeeded(unit, diags, seed)
}

// defaultWorkers picks the bounded worker-pool size for ParallelFiles: the
// number of available CPUs, since file-checking is CPU-bound work guarded
// by a single mutex (internal/sema.AnalyzeParallel) rather than I/O-bound
// work that would benefit from oversubscription.
func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

func partialResult(diags *diag.Engine, opts Options, cache ir.InstanceCache) *Result {
	return &Result{Diagnostics: diags.Sorted(), Coverage: opts.Coverage, Instances: cache, Engine: diags}
}
