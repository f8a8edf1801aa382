package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
	"github.com/asthra-lang/asthrac/internal/types"
)

// checkStmt resolves and validates one statement (spec.md §4.6), within
// scope, propagating retType so ReturnStmt can check its value against the
// enclosing function's declared return type.
func (a *Analyzer) checkStmt(s ast.Stmt, scope ScopeID, retType *types.Type) {
	switch st := s.(type) {
	case *ast.LetStmt:
		a.checkLet(st, scope)
	case *ast.AssignStmt:
		a.checkAssign(st, scope)
	case *ast.ReturnStmt:
		if st.Value == nil {
			if !retType.IsError() && retType.Kind() != types.KindVoid {
				a.errorf(st.Span(), diag.CodeTypeMismatch, "missing return value; function returns "+retType.String())
			}
			return
		}
		vt := a.inferExpr(st.Value, scope)
		vt = a.coerceLiteral(st.Value, vt, retType)
		if !vt.IsError() && !retType.IsError() && !types.Unify(retType, vt, types.NewSubstitution()) {
			a.errorf(st.Value.Span(), diag.CodeTypeMismatch, "returned "+vt.String()+", expected "+retType.String())
		}
	case *ast.IfStmt:
		ct := a.inferExpr(st.Cond, scope)
		a.requireBool(st.Cond.Span(), ct)
		a.checkBlock(st.Then, scope, retType)
		if st.Else != nil {
			a.checkStmt(st.Else, scope, retType)
		}
	case *ast.MatchStmt:
		a.checkMatch(st, scope, retType)
	case *ast.ForStmt:
		it := a.inferExpr(st.Iterable, scope)
		elemT := types.ErrorType()
		switch it.Kind() {
		case types.KindSlice, types.KindArray:
			elemT = it.Elem()
		}
		bodyScope := a.table.NewScope(scope, ScopeBlock)
		bid := a.table.Declare(bodyScope, st.Binding, SymLocal, st.Span(), false, nil)
		a.table.Symbol(bid).Type = elemT
		for _, inner := range st.Body.Stmts {
			a.checkStmt(inner, bodyScope, retType)
		}
	case *ast.WhileStmt:
		ct := a.inferExpr(st.Cond, scope)
		a.requireBool(st.Cond.Span(), ct)
		a.checkBlock(st.Body, scope, retType)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Label resolution against enclosing loop labels is not modeled in
		// this frontier: labels are accepted syntactically and left
		// unchecked, matching the parser's own best-effort posture.
	case *ast.BlockStmt:
		a.checkBlock(st, scope, retType)
	case *ast.UnsafeStmt:
		prev := a.inUnsafe
		a.inUnsafe = true
		a.checkBlock(st.Body, scope, retType)
		a.inUnsafe = prev
	case *ast.SpawnStmt:
		if st.Call != nil {
			a.inferExpr(st.Call, scope)
		}
	case *ast.ExprStmt:
		a.inferExpr(st.X, scope)
	}
}

func (a *Analyzer) requireBool(span source.Span, t *types.Type) {
	if t.IsError() || t.IsNever() {
		return
	}
	if t.Kind() != types.KindBool {
		a.errorf(span, diag.CodeTypeMismatch, "condition must be bool, found "+t.String())
	}
}

func (a *Analyzer) checkLet(st *ast.LetStmt, scope ScopeID) {
	var declared *types.Type
	if st.Type != nil {
		declared = a.resolveType(st.Type, scope)
	}
	var valType *types.Type
	if st.Value != nil {
		valType = a.inferExpr(st.Value, scope)
	}
	if declared != nil && valType != nil {
		valType = a.coerceLiteral(st.Value, valType, declared)
	}
	finalType := declared
	if finalType == nil {
		finalType = valType
	}
	if finalType == nil {
		finalType = types.ErrorType()
	}
	if declared != nil && valType != nil && !declared.IsError() && !valType.IsError() &&
		!types.Unify(declared, valType, types.NewSubstitution()) {
		a.errorf(st.Value.Span(), diag.CodeTypeMismatch,
			"let \""+st.Name+"\" declared as "+declared.String()+" but initializer has type "+valType.String())
	}
	id := a.table.Declare(scope, st.Name, SymLocal, st.Span(), false, nil)
	sym := a.table.Symbol(id)
	sym.Type = finalType
	sym.Mutable = st.Mutable
}

// checkAssign enforces spec.md §4.6's immutability rule: the target must
// ultimately be rooted at a "mut" local, whether assigned directly or
// through a field-access chain.
func (a *Analyzer) checkAssign(st *ast.AssignStmt, scope ScopeID) {
	valType := a.inferExpr(st.Value, scope)
	targetType := a.inferExpr(st.Target, scope)
	valType = a.coerceLiteral(st.Value, valType, targetType)
	if st.Op == nil {
		if !valType.IsError() && !targetType.IsError() && !types.Unify(targetType, valType, types.NewSubstitution()) {
			a.errorf(st.Value.Span(), diag.CodeTypeMismatch,
				"cannot assign "+valType.String()+" to "+targetType.String())
		}
	}
	root := rootIdentifier(st.Target)
	if root == nil {
		return
	}
	sym, ok := a.table.Lookup(scope, root.Name, SymLocal)
	if !ok {
		return
	}
	if !sym.Mutable {
		d := diag.Diagnostic{
			Code:     diag.CodeAssignmentToImmutable,
			Severity: diag.Error,
			Message:  "cannot assign to immutable binding \"" + root.Name + "\"",
			Primary:  st.Target.Span(),
			Metadata: diag.Metadata{Category: diag.CodeAssignmentToImmutable.Category()},
		}
		d.Suggestions = append(d.Suggestions, diag.GrammarCompliance(sym.Span, "let mut "+root.Name, "bind with \"mut\" to allow assignment"))
		a.diags.Report(d)
	}
}

// rootIdentifier walks a field/index chain down to the Identifier it is
// rooted at, or nil if the target isn't rooted at a bare name (e.g. it's a
// dereference of a pointer expression).
func rootIdentifier(e ast.Expr) *ast.Identifier {
	for {
		switch x := e.(type) {
		case *ast.Identifier:
			return x
		case *ast.FieldExpr:
			e = x.Receiver
		case *ast.IndexExpr:
			e = x.Receiver
		default:
			return nil
		}
	}
}
