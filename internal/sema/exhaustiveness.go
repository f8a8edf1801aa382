package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
	"github.com/asthra-lang/asthrac/internal/types"
)

// checkMatch type-checks a match statement's scrutinee and arms, then
// enforces spec.md §4.6's exhaustiveness rule: every enum variant (or, for
// a bool scrutinee, both true and false) must be covered by some arm,
// possibly via a bare wildcard.
func (a *Analyzer) checkMatch(st *ast.MatchStmt, scope ScopeID, retType *types.Type) {
	scrutType := a.inferExpr(st.Scrutinee, scope)

	hasWildcard := false
	coveredVariants := map[string]bool{}
	coveredBools := map[bool]bool{}

	for i := range st.Arms {
		arm := &st.Arms[i]
		armScope := a.table.NewScope(scope, ScopeBlock)
		a.bindPattern(arm.Pattern, scrutType, armScope)

		armIsCatchAll := false
		switch p := arm.Pattern.(type) {
		case *ast.WildcardPattern:
			armIsCatchAll = true
		case *ast.IdentPattern:
			armIsCatchAll = true
		case *ast.EnumVariantPattern:
			coveredVariants[p.VariantName] = true
		case *ast.LiteralPattern:
			if lit, ok := p.Value.(*ast.Literal); ok && lit.LitKind == ast.LitBool {
				coveredBools[lit.Bool] = true
			}
		}

		if arm.Guard != nil {
			gt := a.inferExpr(arm.Guard, armScope)
			a.requireBool(arm.Guard.Span(), gt)
			// A guarded arm can't by itself prove exhaustiveness even if its
			// pattern would otherwise cover a case, since the guard may be
			// false at runtime.
			armIsCatchAll = false
		}
		if armIsCatchAll {
			hasWildcard = true
		}

		switch body := arm.Body.(type) {
		case *ast.BlockStmt:
			a.checkBlock(body, armScope, retType)
		default:
			a.checkStmt(body, armScope, retType)
		}
	}

	if hasWildcard || scrutType.IsError() {
		return
	}

	switch scrutType.Kind() {
	case types.KindBool:
		var missing []string
		if !coveredBools[true] {
			missing = append(missing, "true")
		}
		if !coveredBools[false] {
			missing = append(missing, "false")
		}
		if len(missing) > 0 {
			a.reportNonExhaustive(st.Span(), missing)
		}
	case types.KindEnum:
		sym := a.table.Symbol(scrutType.Symbol())
		if sym == nil {
			return
		}
		decl, ok := sym.Node.(*ast.EnumDecl)
		if !ok {
			return
		}
		var missing []string
		for _, v := range decl.Variants {
			if !coveredVariants[v.Name] {
				missing = append(missing, v.Name)
			}
		}
		if len(missing) > 0 {
			a.reportNonExhaustive(st.Span(), missing)
		}
	}
}

func (a *Analyzer) reportNonExhaustive(span source.Span, missing []string) {
	d := diag.Diagnostic{
		Code:     diag.CodeNonExhaustivePatterns,
		Severity: diag.Error,
		Message:  "match is not exhaustive",
		Primary:  span,
		Metadata: diag.Metadata{Category: diag.CodeNonExhaustivePatterns.Category(), MissingVariants: missing},
	}
	a.diags.Report(d)
}

// bindPattern introduces the local bindings a pattern carries into armScope
// and, for EnumVariantPattern/TuplePattern/StructPattern, recurses into
// payload/field sub-patterns with their narrowed types where staticlly
// derivable.
func (a *Analyzer) bindPattern(p ast.Pattern, scrutType *types.Type, scope ScopeID) {
	switch pat := p.(type) {
	case *ast.IdentPattern:
		id := a.table.Declare(scope, pat.Name, SymLocal, pat.Span(), false, nil)
		a.table.Symbol(id).Type = scrutType
	case *ast.TuplePattern:
		elems := scrutType.Elems()
		for i, sub := range pat.Elems {
			var et *types.Type = types.ErrorType()
			if i < len(elems) {
				et = elems[i]
			}
			a.bindPattern(sub, et, scope)
		}
	case *ast.EnumVariantPattern:
		for _, sub := range pat.Payload {
			a.bindPattern(sub, types.ErrorType(), scope)
		}
	case *ast.StructPattern:
		for _, fp := range pat.Fields {
			a.bindPattern(fp.Pattern, types.ErrorType(), scope)
		}
	}
}
