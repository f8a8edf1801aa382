package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Engine) {
	t.Helper()
	mgr := source.New()
	fid := mgr.AddVirtual("test.asthra", []byte(src))
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	arena := ast.NewArena()
	p := New(mgr, fid, diags, arena)
	return p.ParseFile(), diags
}

func TestParseMinimalFunction(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub fn main(none) -> void {
	return;
}
`)
	assert.False(diags.HasErrors())
	require.Len(t, f.Decls, 1)
	fn, ok := f.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal("main", fn.Name)
	assert.True(fn.Visibility)
	assert.Empty(fn.Params)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseRejectsImplicitEmptyParameterList(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub fn main() -> void {
	return;
}
`)
	assert.True(diags.HasErrors())
	found := false
	for _, d := range diags.All() {
		if d.Code == diag.CodeMissingParameterList {
			found = true
		}
	}
	assert.True(found, "expected a CodeMissingParameterList diagnostic")
}

func TestParseRejectsImplicitVisibility(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

fn helper(none) -> void {
	return;
}
`)
	found := false
	for _, d := range diags.All() {
		if d.Code == diag.CodeMissingVisibility {
			found = true
		}
	}
	assert.True(found, "expected a CodeMissingVisibility diagnostic")
}

func TestParseStructRequiresExplicitEmptyMarker(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub struct Empty {}
`)
	found := false
	for _, d := range diags.All() {
		if d.Code == diag.CodeMissingStructContent {
			found = true
		}
	}
	assert.True(found, "expected a CodeMissingStructContent diagnostic")
}

func TestParseStructWithExplicitNoneMarker(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub struct Empty { none }
`)
	assert.False(diags.HasErrors())
	s, ok := f.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.True(s.Empty)
	assert.Empty(s.Fields)
}

func TestParseStructWithFields(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub struct Point {
	pub x: i32,
	pub y: i32,
}
`)
	assert.False(diags.HasErrors())
	s, ok := f.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.False(s.Empty)
	require.Len(t, s.Fields, 2)
	assert.Equal("x", s.Fields[0].Name)
	assert.Equal("y", s.Fields[1].Name)
}

func TestParseEnumRequiresExplicitVariantPayloadMarker(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub enum Status {
	Ok,
	Err,
}
`)
	found := false
	for _, d := range diags.All() {
		if d.Code == diag.CodeMissingVariantArguments {
			found = true
		}
	}
	assert.True(found, "expected a CodeMissingVariantArguments diagnostic")
}

func TestParseEnumWithExplicitPayloadMarkers(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub enum Result {
	Ok(i32),
	Err(void),
}
`)
	assert.False(diags.HasErrors())
	e, ok := f.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, e.Variants, 2)
	assert.True(e.Variants[0].HasPayload)
	require.Len(t, e.Variants[0].PayloadType, 1)
	assert.True(e.Variants[1].HasPayload)
	assert.Empty(e.Variants[1].PayloadType)
}

func TestParseArrayLiteralRequiresExplicitVoidMarker(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub fn main(none) -> void {
	let xs: []i32 = [];
	return;
}
`)
	assert.True(diags.HasErrors())
}

func TestParseArrayLiteralWithExplicitVoidMarker(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub fn main(none) -> void {
	let xs: []i32 = [void];
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestParseAnnotationRequiresExplicitArguments(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

#[human_review]
pub fn main(none) -> void {
	return;
}
`)
	found := false
	for _, d := range diags.All() {
		if d.Code == diag.CodeMissingVariantArguments {
			found = true
		}
	}
	assert.True(found, "expected an annotation-arguments diagnostic")
}

func TestParseAnnotationWithVoidArguments(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

#[human_review(void)]
pub fn main(none) -> void {
	return;
}
`)
	assert.False(diags.HasErrors())
	fn, ok := f.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Len(t, fn.Annotations, 1)
	assert.Equal("human_review", fn.Annotations[0].Name)
}

func TestParseIfElseChain(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub fn classify(n: i32) -> i32 {
	if n < 0 {
		return 0;
	} else if n == 0 {
		return 1;
	} else {
		return 2;
	}
}
`)
	assert.False(diags.HasErrors())
	fn := f.Decls[0].(*ast.FunctionDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(elseIf.Else)
}

func TestParseBinaryPrecedence(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub const x: i32 = 1 + 2 * 3;
`)
	assert.False(diags.HasErrors())
	c, ok := f.Decls[0].(*ast.ConstDecl)
	require.True(t, ok)
	bin, ok := c.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(ast.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(ast.OpMul, rhs.Op)
}

func TestParseMatchWithGuard(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub fn describe(n: i32) -> i32 {
	match n {
		0 => return 0,
		x if x > 0 => return 1,
		_ => return -1,
	}
}
`)
	assert.False(diags.HasErrors())
	fn := f.Decls[0].(*ast.FunctionDecl)
	m, ok := fn.Body.Stmts[0].(*ast.MatchStmt)
	require.True(t, ok)
	require.Len(t, m.Arms, 3)
	assert.NotNil(m.Arms[1].Guard)
	assert.Nil(m.Arms[0].Guard)
}

func TestParseGenericFunctionCallWithTypeArgs(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub fn main(none) -> void {
	let v: Vec<i32> = Vec::<i32>::new(void);
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestParseAssociatedFunctionCallWithoutGenericArgs(t *testing.T) {
	assert := assert.New(t)
	_, diags := parseSource(t, `package main;

pub fn main(none) -> void {
	let v: Vec<i32> = Vec::new(void);
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestParseStructLiteralSuppressedInIfCondition(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub fn main(none) -> void {
	if ready {
		return;
	}
	return;
}
`)
	assert.False(diags.HasErrors())
	fn := f.Decls[0].(*ast.FunctionDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	_, isIdent := ifStmt.Cond.(*ast.Identifier)
	assert.True(isIdent, "condition must parse as a bare identifier, not a struct literal")
}

func TestParseImportWithAlias(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

import "collections/vec" as vec;

pub fn main(none) -> void {
	return;
}
`)
	assert.False(diags.HasErrors())
	require.Len(t, f.Imports, 1)
	assert.Equal("collections/vec", f.Imports[0].Path)
	assert.Equal("vec", f.Imports[0].Alias)
}

func TestParseExternDecl(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

extern "C" fn puts(s: *const u8) -> i32;
`)
	assert.False(diags.HasErrors())
	ext, ok := f.Decls[0].(*ast.ExternDecl)
	require.True(t, ok)
	assert.Equal("puts", ext.Name)
	assert.Equal("C", ext.ABI)
	require.Len(t, ext.Params, 1)
}

func TestParseImplBlock(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub struct Counter { pub n: i32 }

impl Counter {
	pub fn increment(mut self) -> void {
		return;
	}
}
`)
	assert.False(diags.HasErrors())
	require.Len(t, f.Decls, 2)
	impl, ok := f.Decls[1].(*ast.ImplBlock)
	require.True(t, ok)
	assert.Equal("Counter", impl.TypeName)
	require.Len(t, impl.Methods, 1)
	assert.Equal("increment", impl.Methods[0].Name)
}

func TestParseUnitSharesArenaAcrossFiles(t *testing.T) {
	assert := assert.New(t)
	mgr := source.New()
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	arena := ast.NewArena()

	f1id := mgr.AddVirtual("a.asthra", []byte("package main;\npub const a: i32 = 1;\n"))
	f2id := mgr.AddVirtual("b.asthra", []byte("package main;\npub const b: i32 = 2;\n"))

	p1 := New(mgr, f1id, diags, arena)
	file1 := p1.ParseFile()
	p2 := New(mgr, f2id, diags, arena)
	file2 := p2.ParseFile()

	unit := ast.NewUnit()
	unit.Arena = arena
	unit.AddFile(file1)
	unit.AddFile(file2)

	assert.False(diags.HasErrors())
	require.Len(t, unit.Files, 2)
	assert.Same(arena, unit.Arena)
}

func TestParseResyncAfterMalformedDecl(t *testing.T) {
	assert := assert.New(t)
	f, diags := parseSource(t, `package main;

pub fn broken( -> void {
	return;
}

pub fn ok(none) -> void {
	return;
}
`)
	assert.True(diags.HasErrors())
	var names []string
	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok {
			names = append(names, fn.Name)
		}
	}
	assert.Contains(names, "ok")
}
