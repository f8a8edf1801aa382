package ir

import "github.com/asthra-lang/asthrac/internal/ast"

// foldConst implements spec.md §4.7's "simple constant sub-expressions are
// folded": a shallow fold over a BinaryExpr/UnaryExpr whose operand(s) are
// themselves Literal nodes. It deliberately does not chase constants
// through identifiers bound by "let" (that would require the kind of
// reaching-definitions analysis a backend optimizer performs, not a
// frontend lowering pass) — only literal-to-literal arithmetic collapses
// here, emitted as a single OpConst* instruction instead of the original
// OpBinary/OpUnary.
func foldConst(b *builder, e ast.Expr) (ValueID, bool) {
	switch x := e.(type) {
	case *ast.BinaryExpr:
		l, lok := x.Left.(*ast.Literal)
		r, rok := x.Right.(*ast.Literal)
		if !lok || !rok {
			return 0, false
		}
		return foldBinaryLiterals(b, x, l, r)
	case *ast.UnaryExpr:
		operand, ok := x.Operand.(*ast.Literal)
		if !ok {
			return 0, false
		}
		return foldUnaryLiteral(b, x, operand)
	}
	return 0, false
}

func foldBinaryLiterals(b *builder, x *ast.BinaryExpr, l, r *ast.Literal) (ValueID, bool) {
	typ := resolvedTypeString(x)
	switch {
	case l.LitKind == ast.LitInt && r.LitKind == ast.LitInt:
		var v int64
		switch x.Op {
		case ast.OpAdd:
			v = l.Int + r.Int
		case ast.OpSub:
			v = l.Int - r.Int
		case ast.OpMul:
			v = l.Int * r.Int
		case ast.OpDiv:
			if r.Int == 0 {
				return 0, false
			}
			v = l.Int / r.Int
		case ast.OpMod:
			if r.Int == 0 {
				return 0, false
			}
			v = l.Int % r.Int
		case ast.OpBitOr:
			v = l.Int | r.Int
		case ast.OpBitAnd:
			v = l.Int & r.Int
		case ast.OpBitXor:
			v = l.Int ^ r.Int
		case ast.OpShl:
			v = l.Int << uint(r.Int)
		case ast.OpShr:
			v = l.Int >> uint(r.Int)
		case ast.OpEq:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Int == r.Int, Type: "bool"}), true
		case ast.OpNotEq:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Int != r.Int, Type: "bool"}), true
		case ast.OpLt:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Int < r.Int, Type: "bool"}), true
		case ast.OpLtEq:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Int <= r.Int, Type: "bool"}), true
		case ast.OpGt:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Int > r.Int, Type: "bool"}), true
		case ast.OpGtEq:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Int >= r.Int, Type: "bool"}), true
		default:
			return 0, false
		}
		return b.emit(Instr{Op: OpConstInt, IntVal: v, Type: typ}), true

	case l.LitKind == ast.LitBool && r.LitKind == ast.LitBool:
		switch x.Op {
		case ast.OpAnd:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Bool && r.Bool, Type: "bool"}), true
		case ast.OpOr:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Bool || r.Bool, Type: "bool"}), true
		case ast.OpEq:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Bool == r.Bool, Type: "bool"}), true
		case ast.OpNotEq:
			return b.emit(Instr{Op: OpConstBool, BoolVal: l.Bool != r.Bool, Type: "bool"}), true
		}
	}
	return 0, false
}

func foldUnaryLiteral(b *builder, x *ast.UnaryExpr, operand *ast.Literal) (ValueID, bool) {
	switch x.Op {
	case ast.OpNeg:
		switch operand.LitKind {
		case ast.LitInt:
			return b.emit(Instr{Op: OpConstInt, IntVal: -operand.Int, Type: resolvedTypeString(x)}), true
		case ast.LitFloat:
			return b.emit(Instr{Op: OpConstFloat, FloatVal: -operand.Float, Type: resolvedTypeString(x)}), true
		}
	case ast.OpNot:
		if operand.LitKind == ast.LitBool {
			return b.emit(Instr{Op: OpConstBool, BoolVal: !operand.Bool, Type: "bool"}), true
		}
	case ast.OpBitNot:
		if operand.LitKind == ast.LitInt {
			return b.emit(Instr{Op: OpConstInt, IntVal: ^operand.Int, Type: resolvedTypeString(x)}), true
		}
	}
	return 0, false
}
