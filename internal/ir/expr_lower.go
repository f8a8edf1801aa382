package ir

import "github.com/asthra-lang/asthrac/internal/ast"

// lowerExpr lowers e into zero or more instructions appended to b's current
// block and returns the ValueID holding its result. Constant
// sub-expressions are folded inline (spec.md §4.7) before any instruction
// is emitted for them.
func lowerExpr(b *builder, e ast.Expr) ValueID {
	if v, ok := foldConst(b, e); ok {
		return v
	}

	typ := resolvedTypeString(e)
	switch x := e.(type) {
	case *ast.Literal:
		return lowerLiteral(b, x)

	case *ast.Identifier:
		return b.emit(Instr{Op: OpLoadLocal, Local: x.Name, Type: typ})

	case *ast.PathExpr:
		// A bare "Enum.Variant" unit-payload reference: construct the
		// variant value directly since there is no underlying local to load.
		name := x.Segments[len(x.Segments)-1]
		return b.emit(Instr{Op: OpMakeEnum, Callee: x.Segments[0], Field: name, Type: typ})

	case *ast.FieldExpr:
		recv := lowerExpr(b, x.Receiver)
		return b.emit(Instr{Op: OpFieldLoad, Field: x.Field, Args: []ValueID{recv}, Type: typ})

	case *ast.IndexExpr:
		recv := lowerExpr(b, x.Receiver)
		idx := lowerExpr(b, x.Index)
		return b.emit(Instr{Op: OpIndexLoad, Args: []ValueID{recv, idx}, Type: typ})

	case *ast.CallExpr:
		args := make([]ValueID, len(x.Args))
		for i, a := range x.Args {
			args[i] = lowerExpr(b, a)
		}
		callee := calleeName(x.Callee)
		return b.emit(Instr{Op: OpCall, Callee: callee, Args: args, Type: typ})

	case *ast.MethodCallExpr:
		recv := lowerExpr(b, x.Receiver)
		args := make([]ValueID, 0, len(x.Args)+1)
		args = append(args, recv)
		for _, a := range x.Args {
			args = append(args, lowerExpr(b, a))
		}
		return b.emit(Instr{Op: OpMethodCall, Callee: x.Method, Args: args, Type: typ})

	case *ast.BinaryExpr:
		l := lowerExpr(b, x.Left)
		r := lowerExpr(b, x.Right)
		return b.emit(Instr{Op: OpBinary, BinOp: binOpName(x.Op), Args: []ValueID{l, r}, Type: typ})

	case *ast.UnaryExpr:
		v := lowerExpr(b, x.Operand)
		return b.emit(Instr{Op: OpUnary, UnOp: unOpName(x.Op), Args: []ValueID{v}, Type: typ})

	case *ast.CastExpr:
		v := lowerExpr(b, x.Operand)
		return b.emit(Instr{Op: OpCast, Args: []ValueID{v}, Type: typeExprString(x.Target)})

	case *ast.StructLitExpr:
		names := make([]string, len(x.Fields))
		args := make([]ValueID, len(x.Fields))
		for i, f := range x.Fields {
			names[i] = f.Name
			args[i] = lowerExpr(b, f.Value)
		}
		return b.emit(Instr{Op: OpMakeStruct, Callee: x.TypeName, Fields: names, Args: args, Type: typ})

	case *ast.ArrayLitExpr:
		args := make([]ValueID, len(x.Elems))
		for i, el := range x.Elems {
			args[i] = lowerExpr(b, el)
		}
		return b.emit(Instr{Op: OpMakeArray, Args: args, Type: typ})

	case *ast.TupleLitExpr:
		args := make([]ValueID, len(x.Elems))
		for i, el := range x.Elems {
			args[i] = lowerExpr(b, el)
		}
		return b.emit(Instr{Op: OpMakeTuple, Args: args, Type: typ})

	case *ast.RangeExpr:
		start := lowerExpr(b, x.Start)
		end := lowerExpr(b, x.End)
		return b.emit(Instr{Op: OpCall, Callee: "__range", Args: []ValueID{start, end}, Type: typ})

	case *ast.AwaitExpr:
		v := lowerExpr(b, x.Operand)
		return b.emit(Instr{Op: OpCall, Callee: "__await", Args: []ValueID{v}, Type: typ})

	case *ast.ReceiveExpr:
		ch := lowerExpr(b, x.Channel)
		return b.emit(Instr{Op: OpCall, Callee: "__recv", Args: []ValueID{ch}, Type: typ})

	case *ast.SelectExpr:
		chans := make([]ValueID, len(x.Arms))
		for i, arm := range x.Arms {
			chans[i] = lowerExpr(b, arm.Channel)
		}
		ready := b.emit(Instr{Op: OpCall, Callee: "__select", Args: chans, Type: "i32"})
		if len(x.Arms) == 0 {
			return ready
		}
		return lowerExpr(b, x.Arms[0].Body)

	case *ast.GenericExpr:
		return lowerExpr(b, x.Callee)

	case *ast.ErrorExpr:
		// An already-reported, inert subtree (spec.md §4.6) — lowering it
		// would be unreachable in a clean compile, since Lower only runs
		// once the analyzer found no error diagnostics; emit a placeholder
		// so an accidental call can't panic.
		return b.emit(Instr{Op: OpConstInt, IntVal: 0, Type: typ})
	}
	return b.emit(Instr{Op: OpConstInt, IntVal: 0, Type: typ})
}

func lowerLiteral(b *builder, lit *ast.Literal) ValueID {
	switch lit.LitKind {
	case ast.LitInt:
		return b.emit(Instr{Op: OpConstInt, IntVal: lit.Int, Type: resolvedTypeString(lit)})
	case ast.LitFloat:
		return b.emit(Instr{Op: OpConstFloat, FloatVal: lit.Float, Type: resolvedTypeString(lit)})
	case ast.LitBool:
		return b.emit(Instr{Op: OpConstBool, BoolVal: lit.Bool, Type: "bool"})
	case ast.LitChar:
		return b.emit(Instr{Op: OpConstChar, IntVal: int64(lit.Char), Type: "char"})
	case ast.LitString:
		return b.emit(Instr{Op: OpConstString, StringID: b.pool.Intern(lit.Str), Type: "string"})
	}
	return b.emit(Instr{Op: OpConstInt, IntVal: 0})
}

func calleeName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Identifier:
		return x.Name
	case *ast.FieldExpr:
		return calleeName(x.Receiver) + "." + x.Field
	default:
		return "?"
	}
}
