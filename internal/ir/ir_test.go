package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/ir"
	"github.com/asthra-lang/asthrac/internal/parser"
	"github.com/asthra-lang/asthrac/internal/sema"
	"github.com/asthra-lang/asthrac/internal/source"
)

func lowerSource(t *testing.T, src string) *ir.Module {
	t.Helper()
	mgr := source.New()
	fid := mgr.AddVirtual("test.asthra", []byte(src))
	diags := diag.NewEngine(mgr, diag.SuppressionPolicy{})
	unit := ast.NewUnit()
	p := parser.New(mgr, fid, diags, unit.Arena)
	unit.AddFile(p.ParseFile())
	sema.Analyze(unit, diags)
	require.False(t, diags.HasErrors(), "fixture must analyze cleanly")

	mod, err := ir.Lower(unit)
	require.NoError(t, err)
	return mod
}

func TestLowerMinimalFunctionReturnsVoid(t *testing.T) {
	assert := assert.New(t)
	mod := lowerSource(t, `package main;

pub fn main(none) -> void {
	return;
}
`)
	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal("main", fn.Name)
	require.NotEmpty(t, fn.Blocks)
	entry := fn.Blocks[fn.Entry]
	assert.Equal(ir.TermReturnVoid, entry.Term.Kind)
}

func TestLowerFoldsConstantArithmetic(t *testing.T) {
	require := require.New(t)
	mod := lowerSource(t, `package main;

pub fn compute(none) -> i32 {
	let x: i32 = 2 + 3;
	return x;
}
`)
	fn := mod.Functions[0]
	entry := fn.Blocks[fn.Entry]
	var foundConst bool
	for _, in := range entry.Instrs {
		if in.Op == ir.OpConstInt && in.IntVal == 5 {
			foundConst = true
		}
	}
	require.True(foundConst, "expected the literal 2+3 to fold to a single constant 5")
}

func TestLowerIfProducesBranchingBlocks(t *testing.T) {
	require := require.New(t)
	mod := lowerSource(t, `package main;

pub fn pick(flag: bool) -> i32 {
	if flag {
		return 1;
	} else {
		return 2;
	}
}
`)
	fn := mod.Functions[0]
	require.Greater(len(fn.Blocks), 2, "if/else should produce more than two blocks")
	entry := fn.Blocks[fn.Entry]
	require.Equal(ir.TermCondJump, entry.Term.Kind)
}

func TestLowerWhileLoopHasHeaderAndExit(t *testing.T) {
	require := require.New(t)
	mod := lowerSource(t, `package main;

pub fn countdown(none) -> void {
	let mut n: i32 = 3;
	while n > 0 {
		n = n - 1;
	}
	return;
}
`)
	fn := mod.Functions[0]
	var sawCondJump bool
	for _, blk := range fn.Blocks {
		if blk.Term.Kind == ir.TermCondJump {
			sawCondJump = true
		}
	}
	require.True(sawCondJump, "while loop should lower to at least one conditional branch")
}

func TestLowerMatchDispatchesOnEnumTag(t *testing.T) {
	require := require.New(t)
	mod := lowerSource(t, `package main;

pub enum Status {
	Ok(void),
	Err(void)
}

pub fn classify(s: Status) -> i32 {
	match s {
		Status.Ok => { return 0; }
		_ => { return 1; }
	}
}
`)
	fn := mod.Functions[0]
	var sawTagLoad bool
	for _, blk := range fn.Blocks {
		for _, in := range blk.Instrs {
			if in.Op == ir.OpFieldLoad && in.Field == "__tag" {
				sawTagLoad = true
			}
		}
	}
	require.True(sawTagLoad, "matching an enum variant should load its tag")
}

func TestLowerDeduplicatesStringLiterals(t *testing.T) {
	assert := assert.New(t)
	mod := lowerSource(t, `package main;

pub fn greet(none) -> string {
	let a: string = "hi";
	let b: string = "hi";
	return a;
}
`)
	assert.Len(mod.Strings.Values, 1)
	assert.Equal("hi", mod.Strings.Values[0])
}

func TestLowerImplMethodGetsQualifiedName(t *testing.T) {
	require := require.New(t)
	mod := lowerSource(t, `package main;

pub struct Counter {
	value: i32
}

impl Counter {
	pub fn get(self) -> i32 {
		return self.value;
	}
}
`)
	require.Len(mod.Functions, 1)
	require.Equal("Counter.get", mod.Functions[0].Name)
}

func TestEncodeDecodeModuleRoundTrips(t *testing.T) {
	require := require.New(t)
	mod := lowerSource(t, `package main;

pub fn main(none) -> void {
	return;
}
`)
	data := ir.EncodeModule(mod)
	require.NotEmpty(data)
	decoded, err := ir.DecodeModule(data)
	require.NoError(err)
	require.Len(decoded.Functions, 1)
	require.Equal("main", decoded.Functions[0].Name)
}
