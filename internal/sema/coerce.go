package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/types"
)

// coerceLiteral implements spec.md §4.5's untyped-integer-literal coercion:
// when got is an untyped integer literal's type and want is a concrete
// integer type, the literal's value is range-checked against want and, if it
// fits, want is written back into e's resolved-type slot and returned. Any
// other got/want pairing is left to the caller's own Unify check.
func (a *Analyzer) coerceLiteral(e ast.Expr, got, want *types.Type) *types.Type {
	if got == nil || want == nil || got.IsError() || want.IsError() {
		return got
	}
	if !got.IsUntypedInt() || !want.IsInteger() {
		return got
	}
	lit, ok := e.(*ast.Literal)
	if !ok {
		return got
	}
	if !fitsInt(lit, want) {
		a.errorf(e.Span(), diag.CodeTypeMismatch,
			"integer literal does not fit in "+want.String())
		return got
	}
	e.SetResolvedType(want)
	return want
}

// fitsInt reports whether lit's value is representable in want's width and
// signedness. W64, W128, and WSize are treated as always-fitting: int64
// already covers every literal this lexer can produce (BigInt handles the
// rest and never fits), so there is no narrower bound left to enforce.
func fitsInt(lit *ast.Literal, want *types.Type) bool {
	if lit.BigInt != "" {
		return false
	}
	v := lit.Int
	if v < 0 && !want.Signed() {
		return false
	}
	switch want.Width() {
	case types.W8:
		if want.Signed() {
			return v >= -1<<7 && v <= 1<<7-1
		}
		return v <= 1<<8-1
	case types.W16:
		if want.Signed() {
			return v >= -1<<15 && v <= 1<<15-1
		}
		return v <= 1<<16-1
	case types.W32:
		if want.Signed() {
			return v >= -1<<31 && v <= 1<<31-1
		}
		return v <= 1<<32-1
	default: // W64, W128, WSize
		return true
	}
}
