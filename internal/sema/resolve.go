package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/types"
)

// primitiveTypes maps every spec.md §3 primitive name to its constructed
// Type. Built once; every Analyzer shares the same pointers so Type.Equal's
// structural comparison is all that's ever needed (no interning required
// beyond these).
var primitiveTypes = buildPrimitiveTypes()

func buildPrimitiveTypes() map[string]*types.Type {
	m := map[string]*types.Type{
		"void":   types.Void(),
		"bool":   types.Bool(),
		"char":   types.Char(),
		"string": types.String(),
		"f32":    types.Float(types.W32),
		"f64":    types.Float(types.W64),
	}
	for _, w := range []types.Width{types.W8, types.W16, types.W32, types.W64, types.W128} {
		m[signedName(w)] = types.Int(w, true)
		m[unsignedName(w)] = types.Int(w, false)
	}
	m["isize"] = types.Int(types.WSize, true)
	m["usize"] = types.Int(types.WSize, false)
	return m
}

func signedName(w types.Width) string {
	switch w {
	case types.W8:
		return "i8"
	case types.W16:
		return "i16"
	case types.W32:
		return "i32"
	case types.W64:
		return "i64"
	case types.W128:
		return "i128"
	default:
		return "i?"
	}
}

func unsignedName(w types.Width) string {
	switch w {
	case types.W8:
		return "u8"
	case types.W16:
		return "u16"
	case types.W32:
		return "u32"
	case types.W64:
		return "u64"
	case types.W128:
		return "u128"
	default:
		return "u?"
	}
}

// resolveType turns a syntactic TypeExpr into a semantic types.Type,
// resolving named types against scopeID's symbol table (spec.md §4.5).
// An unresolvable name reports UndefinedSymbol and returns the Error type
// so the caller's checks don't cascade (spec.md §4.6).
func (a *Analyzer) resolveType(te ast.TypeExpr, scopeID ScopeID) *types.Type {
	if te == nil {
		return types.Void()
	}
	switch t := te.(type) {
	case *ast.NamedType:
		return a.resolveNamedType(t, scopeID, nil)
	case *ast.GenericAppType:
		named, ok := t.Base.(*ast.NamedType)
		if !ok {
			a.errorf(t.Span(), diag.CodeUnexpectedToken, "generic arguments applied to a non-named type")
			return types.ErrorType()
		}
		args := make([]*types.Type, len(t.Args))
		for i, at := range t.Args {
			args[i] = a.resolveType(at, scopeID)
		}
		return a.resolveNamedType(named, scopeID, args)
	case *ast.PointerType:
		return types.Pointer(a.resolveType(t.Elem, scopeID), t.Mutable)
	case *ast.SliceType:
		return types.Slice(a.resolveType(t.Elem, scopeID))
	case *ast.ArrayType:
		var length int64
		if lit, ok := t.Length.(*ast.Literal); ok && lit.LitKind == ast.LitInt {
			length = lit.Int
		}
		return types.Array(a.resolveType(t.Elem, scopeID), length)
	case *ast.FunctionType:
		params := make([]*types.Type, len(t.Params))
		for i, pt := range t.Params {
			params[i] = a.resolveType(pt, scopeID)
		}
		return types.Function(params, a.resolveType(t.Return, scopeID), "")
	case *ast.TupleType:
		elems := make([]*types.Type, len(t.Elems))
		for i, et := range t.Elems {
			elems[i] = a.resolveType(et, scopeID)
		}
		return types.Tuple(elems)
	case *ast.NeverType:
		return types.Never()
	case *ast.VoidType:
		return types.Void()
	default:
		return types.ErrorType()
	}
}

func (a *Analyzer) resolveNamedType(t *ast.NamedType, scopeID ScopeID, typeArgs []*types.Type) *types.Type {
	name := t.Path[len(t.Path)-1]
	if typeArgs == nil {
		if prim, ok := primitiveTypes[name]; ok {
			return prim
		}
	}
	if gp, ok := a.genericParamScope[scopeID][name]; ok {
		return gp
	}
	sym, ok := a.table.Lookup(scopeID, name, SymType)
	if !ok {
		a.undefinedSymbol(name, t.Span(), scopeID)
		return types.ErrorType()
	}
	switch d := sym.Node.(type) {
	case *ast.StructDecl:
		return types.Struct(sym.ID, name, typeArgs)
	case *ast.EnumDecl:
		return types.Enum(sym.ID, name, typeArgs)
	default:
		_ = d
		return sym.Type
	}
}
