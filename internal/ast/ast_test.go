package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/source"
	"github.com/asthra-lang/asthrac/internal/types"
)

func span(mgr *source.Manager, id source.FileID, start, end int) source.Span {
	return source.Span{
		Start: source.Position{File: id, Offset: start},
		End:   source.Position{File: id, Offset: end},
	}
}

// TestArenaAllocatesDistinctIncreasingIDs checks the monotonic NodeID
// invariant every later pass relies on to order nodes without a separate
// traversal index (spec.md §8).
func TestArenaAllocatesDistinctIncreasingIDs(t *testing.T) {
	mgr := source.New()
	id := mgr.AddVirtual("u.asthra", []byte("pub fn main(none) -> void { return; }"))
	arena := ast.NewArena()

	lit := ast.NewLiteral(arena, span(mgr, id, 0, 1), ast.LitInt)
	ident := ast.NewIdentifier(arena, span(mgr, id, 2, 3), "x")

	require.NotEqual(t, lit.ID(), ident.ID())
	assert.Less(t, int(lit.ID()), int(ident.ID()))
}

// TestExprResolvedTypeRoundTrips exercises the per-expression resolved-type
// slot spec.md §9 requires: unset before analysis, readable after.
func TestExprResolvedTypeRoundTrips(t *testing.T) {
	mgr := source.New()
	id := mgr.AddVirtual("u.asthra", []byte("1"))
	arena := ast.NewArena()

	lit := ast.NewLiteral(arena, span(mgr, id, 0, 1), ast.LitInt)
	var e ast.Expr = lit

	assert.Nil(t, e.ResolvedType())
	i32 := types.Int(types.W32, true)
	e.SetResolvedType(i32)
	assert.True(t, e.ResolvedType().Equal(i32))
}

// TestFunctionDeclExplicitEmptyMarkers checks that a function with no
// parameters and a struct literal with no fields both round-trip their
// explicit "(none)" / "{ none }" markers rather than collapsing to the
// absence of a marker (spec.md §3: mandatory explicit syntax).
func TestFunctionDeclExplicitEmptyMarkers(t *testing.T) {
	mgr := source.New()
	id := mgr.AddVirtual("u.asthra", []byte("pub fn main(none) -> void { }"))
	arena := ast.NewArena()

	body := ast.NewBlockStmt(arena, span(mgr, id, 0, 1), nil)
	fn := ast.NewFunctionDecl(arena, span(mgr, id, 0, 1), "main", true, nil, nil, ast.NewVoidType(arena, span(mgr, id, 0, 1)), body, nil, "")

	assert.Equal(t, ast.DeclFunction, fn.DeclKind())
	assert.Empty(t, fn.Params)
	assert.True(t, fn.Visibility)

	empty := ast.NewStructLitExpr(arena, span(mgr, id, 0, 1), "Widget", nil, true)
	assert.True(t, empty.Empty)
	assert.Equal(t, ast.ExprStructLit, empty.ExprKind())
}

// TestUnitSharesOneArenaAcrossFiles checks the compilation-unit invariant
// (spec.md Glossary): several files of the same package allocate NodeIDs
// from one shared counter, so cross-file references stay unambiguous.
func TestUnitSharesOneArenaAcrossFiles(t *testing.T) {
	mgr := source.New()
	idA := mgr.AddVirtual("a.asthra", []byte("package widgets;"))
	idB := mgr.AddVirtual("b.asthra", []byte("package widgets;"))

	unit := ast.NewUnit()
	pkgA := ast.NewPackageDecl(unit.Arena, span(mgr, idA, 0, 7), "widgets")
	pkgB := ast.NewPackageDecl(unit.Arena, span(mgr, idB, 0, 7), "widgets")
	unit.AddFile(ast.NewFile(idA, pkgA, nil, nil))
	unit.AddFile(ast.NewFile(idB, pkgB, nil, nil))

	require.Len(t, unit.Files, 2)
	assert.NotEqual(t, pkgA.ID(), pkgB.ID())
}
