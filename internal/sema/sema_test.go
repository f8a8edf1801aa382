package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/parser"
	"github.com/asthra-lang/asthrac/internal/source"
)

func analyzeSource(t *testing.T, src string) (*Result, *diag.Engine) {
	t.Helper()
	mgr := source.New()
	fid := mgr.AddVirtual("test.asthra", []byte(src))
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	unit := ast.NewUnit()
	p := parser.New(mgr, fid, diags, unit.Arena)
	unit.AddFile(p.ParseFile())
	res := Analyze(unit, diags)
	return res, diags
}

func TestAnalyzeMinimalProgram(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn main(none) -> void {
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestAnalyzeUndefinedVariableSuggestsSimilarName(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn main(none) -> void {
	let count: i32 = 0;
	let total: i32 = coutn;
	return;
}
`)
	require.True(t, diags.HasErrors())
	found := false
	for _, d := range diags.All() {
		if d.Code == diag.CodeUndefinedSymbol {
			found = true
			require.NotEmpty(t, d.Suggestions)
			assert.Equal("count", d.Suggestions[0].Replacement)
		}
	}
	assert.True(found, "expected an undefined-symbol diagnostic")
}

func TestAnalyzeNonExhaustiveMatchReportsMissingVariants(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub enum Status {
	Ok(void),
	Err(void),
	Pending(void)
}

pub fn classify(s: Status) -> i32 {
	match s {
		Status.Ok => { return 0; }
	}
	return 1;
}
`)
	require.True(t, diags.HasErrors())
	var found *diag.Diagnostic
	for i := range diags.All() {
		d := &diags.All()[i]
		if d.Code == diag.CodeNonExhaustivePatterns {
			found = d
		}
	}
	require.NotNil(t, found)
	assert.ElementsMatch([]string{"Err", "Pending"}, found.Metadata.MissingVariants)
}

func TestAnalyzeMandatoryExplicitSyntaxViolations(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

fn helper() -> void {
	return;
}
`)
	require.True(t, diags.HasErrors())
	var codes []diag.Code
	for _, d := range diags.All() {
		codes = append(codes, d.Code)
	}
	assert.Contains(codes, diag.CodeMissingVisibility)
	assert.Contains(codes, diag.CodeMissingParameterList)
}

func TestAnalyzeImmutabilityViolationSuggestsMut(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn main(none) -> void {
	let count: i32 = 0;
	count = 1;
	return;
}
`)
	require.True(t, diags.HasErrors())
	var found *diag.Diagnostic
	for i := range diags.All() {
		d := &diags.All()[i]
		if d.Code == diag.CodeAssignmentToImmutable {
			found = d
		}
	}
	require.NotNil(t, found)
	require.NotEmpty(t, found.Suggestions)
	assert.Contains(found.Suggestions[0].Replacement, "mut")
}

func TestAnalyzeForbiddenInternalImport(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;
import "internal/secrets" as secrets;

pub fn main(none) -> void {
	return;
}
`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.All() {
		if d.Code == diag.CodeForbiddenInternalImport {
			found = true
		}
	}
	assert.True(found)
}

func TestAnalyzeDuplicateSymbolInSameScope(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn helper(none) -> void {
	return;
}

pub fn helper(none) -> void {
	return;
}
`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.All() {
		if d.Code == diag.CodeDuplicateSymbol {
			found = true
		}
	}
	assert.True(found)
}

func TestAnalyzeShadowingInNestedBlock(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn main(none) -> void {
	let x: i32 = 1;
	if true {
		let x: i32 = 2;
	}
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestAnalyzeConstantTimeViolationOnParamBranch(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

#[constant_time(void)]
pub fn compare(secret: i32) -> bool {
	if secret > 0 {
		return true;
	}
	return false;
}
`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.All() {
		if d.Code == diag.CodeConstantTimeViolation {
			found = true
		}
	}
	assert.True(found)
}

func TestAnalyzeFFIAnnotationMismatch(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

extern "C" fn free_buffer(buf: *mut i32) -> void;
`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.All() {
		if d.Code == diag.CodeFFIAnnotationMismatch {
			found = true
		}
	}
	assert.True(found)
}

func TestAnalyzeUnsafeDerefRequiresUnsafeBlock(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn readPtr(p: *const i32) -> i32 {
	return *p;
}
`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.All() {
		if d.Code == diag.CodeUnsafeRequired {
			found = true
		}
	}
	assert.True(found)
}

func TestAnalyzeIntegerLiteralCoercesToDeclaredLetType(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn main(none) -> void {
	let a: i64 = 5;
	let b: u8 = 0;
	let c: usize = 9;
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestAnalyzeIntegerLiteralCoercesToDeclaredReturnType(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn zero(none) -> u32 {
	return 0;
}
`)
	assert.False(diags.HasErrors())
}

func TestAnalyzeIntegerLiteralCoercesToDeclaredConstType(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub const limit: i64 = 1;
`)
	assert.False(diags.HasErrors())
}

func TestAnalyzeIntegerLiteralCoercesAtCallArgument(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn takesU8(v: u8) -> void {
	return;
}

pub fn main(none) -> void {
	takesU8(200);
	return;
}
`)
	assert.False(diags.HasErrors())
}

func TestAnalyzeOutOfRangeIntegerLiteralReportsTypeMismatch(t *testing.T) {
	assert := assert.New(t)
	_, diags := analyzeSource(t, `package main;

pub fn main(none) -> void {
	let b: u8 = 300;
	return;
}
`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.All() {
		if d.Code == diag.CodeTypeMismatch {
			found = true
		}
	}
	assert.True(found)
}
