package ir

import (
	"strconv"
	"strings"

	"github.com/asthra-lang/asthrac/internal/ast"
)

// typeExprString renders a declaration-site type annotation back to text,
// used for Param/Local/ReturnType's printable type (spec.md §6 only
// requires "a concrete type", not a particular serialization), so ir can
// stay independent of internal/sema's resolved *types.Type machinery and
// depend only on internal/ast plus internal/types for expression typing.
func typeExprString(te ast.TypeExpr) string {
	if te == nil {
		return "void"
	}
	switch t := te.(type) {
	case *ast.NamedType:
		return strings.Join(t.Path, "::")
	case *ast.GenericAppType:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = typeExprString(a)
		}
		return typeExprString(t.Base) + "<" + strings.Join(parts, ", ") + ">"
	case *ast.PointerType:
		if t.Mutable {
			return "*mut " + typeExprString(t.Elem)
		}
		return "*const " + typeExprString(t.Elem)
	case *ast.SliceType:
		return "[]" + typeExprString(t.Elem)
	case *ast.ArrayType:
		if t.Void {
			return "[void]" + typeExprString(t.Elem)
		}
		if lit, ok := t.Length.(*ast.Literal); ok && lit.LitKind == ast.LitInt {
			return "[" + strconv.FormatInt(lit.Int, 10) + "]" + typeExprString(t.Elem)
		}
		return "[]" + typeExprString(t.Elem)
	case *ast.FunctionType:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = typeExprString(p)
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + typeExprString(t.Return)
	case *ast.TupleType:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = typeExprString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.NeverType:
		return "never"
	case *ast.VoidType:
		return "void"
	default:
		return "?"
	}
}
