package sema

import (
	"context"
	"sync"

	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
	"github.com/asthra-lang/asthrac/internal/types"
)

// Analyzer runs the two-pass semantic analysis of spec.md §4.4/§4.6 over one
// compilation unit: declaration collection, then resolution and checking.
// It is created fresh per unit; all of its mutable state belongs to that
// unit's compilation context (spec.md §5 — no cross-unit sharing). Its
// methods are not safe for concurrent use: AnalyzeParallel checks files
// one at a time under a single mutex.
type Analyzer struct {
	unit    *ast.Unit
	table   *Table
	diags   *diag.Engine
	pkgScope ScopeID

	// declSymbols records, for every top-level Decl and every impl method,
	// the package-scope symbol it declared.
	declSymbols map[ast.Node]types.SymbolID

	// genericParamScope maps a scope to its own generic type parameters by
	// name, so "T" inside a generic function resolves to a types.Generic
	// rather than an undefined-symbol error.
	genericParamScope map[ScopeID]map[string]*types.Type

	// sigScope records, per function/method/extern declaration, the scope
	// its signature was resolved in (pkgScope, or a ScopeGenericParams
	// child of it): the check pass reuses the same scope so a generic
	// parameter resolves to the identical *types.Type object.
	sigScope map[ast.Node]ScopeID

	// resolvedIdents is the side table spec.md §9 requires instead of
	// storing a back-reference directly on Identifier nodes: NodeID of the
	// identifier -> the Symbol it resolved to.
	resolvedIdents map[ast.NodeID]*Symbol

	// instances is the generic-monomorphization cache (spec.md §4.5):
	// repeat references to the same (symbol, type-args) pair reuse the
	// first recorded instantiation rather than re-specializing.
	instances map[types.InstanceKey]bool

	currentFn *ast.FunctionDecl

	// inUnsafe is true while checking the body of an UnsafeStmt, lifting the
	// restriction on pointer dereference and extern calls (spec.md §4.6).
	inUnsafe bool
}

// Result is everything downstream of analysis needs: the symbol table,
// the identifier resolutions, and (when diags carries no error) readiness
// for IR lowering.
type Result struct {
	Table          *Table
	ResolvedIdents map[ast.NodeID]*Symbol

	// Instances is the generic-monomorphization cache accumulated during
	// this analysis, keyed by the symbol instantiated and its concrete
	// type arguments. internal/compile persists it across compiles of the
	// same package (SPEC_FULL.md §12).
	Instances map[types.InstanceKey]bool
}

func newAnalyzer(unit *ast.Unit, diags *diag.Engine, seed map[types.InstanceKey]bool) *Analyzer {
	if seed == nil {
		seed = map[types.InstanceKey]bool{}
	}
	a := &Analyzer{
		unit:              unit,
		table:             NewTable(diags),
		diags:             diags,
		declSymbols:       map[ast.Node]types.SymbolID{},
		genericParamScope: map[ScopeID]map[string]*types.Type{},
		sigScope:          map[ast.Node]ScopeID{},
		resolvedIdents:    map[ast.NodeID]*Symbol{},
		instances:         seed,
	}
	a.pkgScope = a.table.NewScope(NoScope, ScopePackage)
	return a
}

// Analyze runs declaration collection then resolution/checking over unit,
// reporting into diags. Returns a Result usable by internal/ir regardless
// of whether errors were found; the caller checks diags.HasErrors() before
// treating the Result as safe to lower (spec.md §6: "on any error
// diagnostic, ir is absent").
func Analyze(unit *ast.Unit, diags *diag.Engine) *Result {
	return AnalyzeSeeded(unit, diags, nil)
}

// AnalyzeSeeded is Analyze, but starts the generic-instantiation cache from
// a prior compile's persisted result instead of empty (SPEC_FULL.md §12).
func AnalyzeSeeded(unit *ast.Unit, diags *diag.Engine, seed map[types.InstanceKey]bool) *Result {
	a := newAnalyzer(unit, diags, seed)
	a.collectDecls()
	a.checkImports()
	for _, f := range unit.Files {
		for _, d := range f.Decls {
			a.checkDecl(d)
		}
	}
	return &Result{Table: a.table, ResolvedIdents: a.resolvedIdents, Instances: a.instances}
}

// AnalyzeParallel runs the same two-pass analysis as Analyze, but checks
// files through a bounded worker pool once declaration collection (which
// every file's checking depends on) has completed serially. workers caps
// the number of files in flight at once; values less than 1 are treated
// as 1.
//
// checkDecl mutates Analyzer-wide state (the resolved-identifier table,
// the generic-instantiation cache, per-node scope records) that isn't
// safe for concurrent writers, so each file's checking still runs under a
// single mutex — the concurrency this adds is in the scheduling (files
// queue and start as workers free up, and diag.Engine itself is
// safe for concurrent Report calls), not in the symbol-table writes
// themselves. Making those genuinely lock-free is future work; this is
// the conservative, correctness-first version of spec.md §5's per-file
// parallel analysis.
func AnalyzeParallel(ctx context.Context, unit *ast.Unit, diags *diag.Engine, workers int, seed map[types.InstanceKey]bool) *Result {
	if workers < 1 {
		workers = 1
	}
	a := newAnalyzer(unit, diags, seed)

	a.collectDecls()
	a.checkImports()

	var checkMu sync.Mutex
	files := make(chan *ast.File, len(unit.Files))
	for _, f := range unit.Files {
		files <- f
	}
	close(files)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range files {
				if ctx.Err() != nil {
					return
				}
				checkMu.Lock()
				for _, d := range f.Decls {
					if ctx.Err() != nil {
						break
					}
					a.checkDecl(d)
				}
				checkMu.Unlock()
			}
		}()
	}
	wg.Wait()

	return &Result{Table: a.table, ResolvedIdents: a.resolvedIdents, Instances: a.instances}
}

func (a *Analyzer) errorf(span source.Span, code diag.Code, msg string) {
	a.diags.Report(diag.Diagnostic{
		Code:     code,
		Severity: diag.Error,
		Message:  msg,
		Primary:  span,
		Metadata: diag.Metadata{Category: code.Category()},
	})
}

func (a *Analyzer) warnf(span source.Span, code diag.Code, msg string) {
	a.diags.Report(diag.Diagnostic{
		Code:     code,
		Severity: diag.Warning,
		Message:  msg,
		Primary:  span,
		Metadata: diag.Metadata{Category: code.Category()},
	})
}

// undefinedSymbol reports CodeUndefinedSymbol with a ranked suggestion drawn
// from every name visible at scopeID (spec.md §4.8).
func (a *Analyzer) undefinedSymbol(name string, span source.Span, scopeID ScopeID) {
	d := diag.Diagnostic{
		Code:     diag.CodeUndefinedSymbol,
		Severity: diag.Error,
		Message:  "undefined symbol " + name,
		Primary:  span,
		Metadata: diag.Metadata{Category: diag.CodeUndefinedSymbol.Category()},
	}
	candidates := a.table.NamesInScope(scopeID)
	if sug, ok := diag.SimilarSymbol(name, candidates, span); ok {
		d.Suggestions = append(d.Suggestions, sug)
		d.Metadata.SimilarSymbols = []string{sug.Replacement}
	}
	a.diags.Report(d)
}
