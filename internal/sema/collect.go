package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/types"
)

// collectDecls is pass one (spec.md §4.4): walk every file of the unit,
// inserting top-level symbols into the package scope without resolving any
// reference. Order across files does not matter for this pass; duplicate
// names are caught by Table.Declare.
func (a *Analyzer) collectDecls() {
	for _, f := range a.unit.Files {
		for _, d := range f.Decls {
			a.collectOne(d)
		}
	}
	// Function signatures and const types reference other top-level names,
	// so they're resolved in a second sweep once every top-level name exists
	// in pkgScope. Struct field and enum payload types are resolved later,
	// by checkDecl.
	for _, f := range a.unit.Files {
		for _, d := range f.Decls {
			a.resolveSignature(d)
		}
	}
}

func (a *Analyzer) collectOne(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		id := a.table.Declare(a.pkgScope, decl.Name, SymFunction, decl.Span(), decl.Visibility, decl)
		a.declSymbols[decl] = id
	case *ast.ExternDecl:
		id := a.table.Declare(a.pkgScope, decl.Name, SymFunction, decl.Span(), true, decl)
		a.declSymbols[decl] = id
	case *ast.StructDecl:
		id := a.table.Declare(a.pkgScope, decl.Name, SymType, decl.Span(), decl.Visibility, decl)
		a.declSymbols[decl] = id
	case *ast.EnumDecl:
		id := a.table.Declare(a.pkgScope, decl.Name, SymType, decl.Span(), decl.Visibility, decl)
		a.declSymbols[decl] = id
		for i := range decl.Variants {
			v := &decl.Variants[i]
			vid := a.table.Declare(a.pkgScope, decl.Name+"."+v.Name, SymVariant, v.Span, decl.Visibility, decl)
			_ = vid
		}
	case *ast.ConstDecl:
		id := a.table.Declare(a.pkgScope, decl.Name, SymConst, decl.Span(), decl.Visibility, decl)
		a.declSymbols[decl] = id
	case *ast.ImplBlock:
		// Methods are declared at package scope under the qualified name
		// "TypeName.method", which is how method-call resolution
		// (inferMethodCall) finds them. A second method of the same name on
		// the same type, in the same or another impl block, is reported as
		// a DuplicateSymbol here.
		for _, m := range decl.Methods {
			mid := a.table.Declare(a.pkgScope, decl.TypeName+"."+m.Name, SymFunction, m.Span(), m.Visibility, m)
			a.declSymbols[m] = mid
		}
	case *ast.PackageDecl, *ast.ImportDecl:
		// no symbol of their own; imports are checked separately (imports.go)
	}
}

// resolveSignature fills in the *types.Type of every symbol whose
// declaration carries a type (function signatures, const types): it cannot
// run during collectOne because a signature may reference a struct/enum
// declared later in the same file.
func (a *Analyzer) resolveSignature(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		a.resolveFuncSignature(decl, a.declSymbols[decl], decl.Generics, decl.Params, decl.ReturnType)
	case *ast.ExternDecl:
		a.resolveFuncSignature(nil, a.declSymbols[decl], nil, decl.Params, decl.ReturnType)
	case *ast.ConstDecl:
		sym := a.table.Symbol(a.declSymbols[decl])
		sym.Type = a.resolveType(decl.Type, a.pkgScope)
	case *ast.ImplBlock:
		for _, m := range decl.Methods {
			a.resolveFuncSignature(m, a.declSymbols[m], m.Generics, m.Params, m.ReturnType)
		}
	}
}

func (a *Analyzer) resolveFuncSignature(fn *ast.FunctionDecl, symID types.SymbolID, generics []ast.GenericParam, params []ast.Param, ret ast.TypeExpr) {
	sym := a.table.Symbol(symID)
	scope := a.pkgScope
	if len(generics) > 0 {
		scope = a.table.NewScope(a.pkgScope, ScopeGenericParams)
		gm := map[string]*types.Type{}
		for _, g := range generics {
			gm[g.Name] = types.Generic(0, g.Name, nil)
		}
		a.genericParamScope[scope] = gm
	}
	if fn != nil {
		a.sigScope[fn] = scope
	}
	paramTypes := make([]*types.Type, 0, len(params))
	for _, p := range params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		paramTypes = append(paramTypes, a.resolveType(p.Type, scope))
	}
	retType := a.resolveType(ret, scope)
	sym.Type = types.Function(paramTypes, retType, "")
}
