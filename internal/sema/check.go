package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/types"
)

// checkDecl is pass two's entry per top-level declaration (spec.md §4.6):
// resolve its body (if any), writing resolved types into every expression
// node and validating the node-specific invariants.
func (a *Analyzer) checkDecl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		a.checkFunction(decl)
	case *ast.ExternDecl:
		a.checkExtern(decl)
	case *ast.StructDecl:
		// Field types are resolved here (resolveSignature does not cover
		// struct fields), so an undefined field type is reported by this
		// resolveType call; nothing further is validated.
		for i := range decl.Fields {
			a.resolveType(decl.Fields[i].Type, a.pkgScope)
		}
	case *ast.EnumDecl:
		for _, v := range decl.Variants {
			for _, pt := range v.PayloadType {
				a.resolveType(pt, a.pkgScope)
			}
		}
	case *ast.ImplBlock:
		for _, m := range decl.Methods {
			a.checkFunction(m)
		}
	case *ast.ConstDecl:
		a.checkConst(decl)
	}
}

func (a *Analyzer) checkExtern(decl *ast.ExternDecl) {
	for _, p := range decl.Params {
		pt := a.resolveType(p.Type, a.pkgScope)
		if pt.Kind() != types.KindPointer {
			continue
		}
		hasOwnership := ast.Has(decl.Annotations, "transfer_full") ||
			ast.Has(decl.Annotations, "transfer_none") ||
			ast.Has(decl.Annotations, "borrowed")
		if !hasOwnership {
			a.errorf(p.Span, diag.CodeFFIAnnotationMismatch,
				"extern parameter \""+p.Name+"\" is a pointer and requires an ownership annotation: transfer_full, transfer_none, or borrowed")
		}
	}
}

func (a *Analyzer) checkConst(decl *ast.ConstDecl) {
	sym := a.table.Symbol(a.declSymbols[decl])
	valType := a.inferExpr(decl.Value, a.pkgScope)
	valType = a.coerceLiteral(decl.Value, valType, sym.Type)
	if !valType.IsError() && !sym.Type.IsError() && !types.Unify(sym.Type, valType, types.NewSubstitution()) {
		a.errorf(decl.Value.Span(), diag.CodeTypeMismatch,
			"const \""+decl.Name+"\" declared as "+sym.Type.String()+" but initializer has type "+valType.String())
	}
}

// checkFunction resolves and validates fn's body, if it has one (an
// ExternDecl never does; this path is FunctionDecl/method only).
func (a *Analyzer) checkFunction(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}
	prevFn := a.currentFn
	a.currentFn = fn
	defer func() { a.currentFn = prevFn }()

	// sigScope's zero value coincides with pkgScope's ID (the package scope
	// is always the first scope created, in Analyze), so a fn with no
	// recorded signature scope still resolves against pkgScope correctly.
	scope := a.sigScope[fn]
	fnScope := a.table.NewScope(scope, ScopeFunction)
	for _, p := range fn.Params {
		if p.Name == "self" {
			continue
		}
		pid := a.table.Declare(fnScope, p.Name, SymLocal, p.Span, false, nil)
		psym := a.table.Symbol(pid)
		psym.Mutable = p.Mutable
		psym.Type = a.resolveType(p.Type, scope)
	}
	retType := a.resolveType(fn.ReturnType, scope)

	a.checkBlock(fn.Body, fnScope, retType)

	if ast.Has(fn.Annotations, "constant_time") {
		a.checkConstantTime(fn, fnScope)
	}
}

func (a *Analyzer) checkBlock(b *ast.BlockStmt, parentScope ScopeID, retType *types.Type) ScopeID {
	scope := a.table.NewScope(parentScope, ScopeBlock)
	for _, s := range b.Stmts {
		a.checkStmt(s, scope, retType)
	}
	return scope
}
