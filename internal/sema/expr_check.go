package sema

import (
	"github.com/asthra-lang/asthrac/internal/ast"
	"github.com/asthra-lang/asthrac/internal/diag"
	"github.com/asthra-lang/asthrac/internal/types"
)

var defaultFloatType = types.Float(types.W64)

// inferExpr resolves e's semantic type, writes it back into e's resolved-
// type slot (spec.md §9), and returns it. On any error within e's subtree,
// the slot is set to the opaque Error type, which unifies with anything and
// suppresses cascading diagnostics from callers (spec.md §4.6).
func (a *Analyzer) inferExpr(e ast.Expr, scope ScopeID) *types.Type {
	t := a.inferExprUncached(e, scope)
	e.SetResolvedType(t)
	return t
}

func (a *Analyzer) inferExprUncached(e ast.Expr, scope ScopeID) *types.Type {
	switch x := e.(type) {
	case *ast.Literal:
		switch x.LitKind {
		case ast.LitInt:
			return types.UntypedInt()
		case ast.LitFloat:
			return defaultFloatType
		case ast.LitBool:
			return types.Bool()
		case ast.LitChar:
			return types.Char()
		case ast.LitString:
			return types.String()
		}
		return types.ErrorType()

	case *ast.Identifier:
		sym, ok := a.table.Lookup(scope, x.Name, SymLocal, SymConst, SymFunction)
		if !ok {
			a.undefinedSymbol(x.Name, x.Span(), scope)
			return types.ErrorType()
		}
		a.resolvedIdents[x.ID()] = sym
		if sym.Type == nil {
			return types.ErrorType()
		}
		return sym.Type

	case *ast.PathExpr:
		return a.inferPath(x, scope)

	case *ast.FieldExpr:
		return a.inferField(x, scope)

	case *ast.IndexExpr:
		recv := a.inferExpr(x.Receiver, scope)
		idx := a.inferExpr(x.Index, scope)
		if !idx.IsError() && !idx.IsInteger() {
			a.errorf(x.Index.Span(), diag.CodeTypeMismatch, "index must be an integer, found "+idx.String())
		}
		switch recv.Kind() {
		case types.KindSlice, types.KindArray:
			return recv.Elem()
		case types.KindError:
			return types.ErrorType()
		default:
			a.errorf(x.Receiver.Span(), diag.CodeNotIndexable, recv.String()+" cannot be indexed")
			return types.ErrorType()
		}

	case *ast.CallExpr:
		return a.inferCall(x, scope)

	case *ast.MethodCallExpr:
		return a.inferMethodCall(x, scope)

	case *ast.BinaryExpr:
		return a.inferBinary(x, scope)

	case *ast.UnaryExpr:
		return a.inferUnary(x, scope)

	case *ast.CastExpr:
		a.inferExpr(x.Operand, scope)
		return a.resolveType(x.Target, scope)

	case *ast.StructLitExpr:
		return a.inferStructLit(x, scope)

	case *ast.ArrayLitExpr:
		if x.Void || len(x.Elems) == 0 {
			return types.Slice(types.Void())
		}
		elemT := a.inferExpr(x.Elems[0], scope)
		for _, el := range x.Elems[1:] {
			et := a.inferExpr(el, scope)
			et = a.coerceLiteral(el, et, elemT)
			if !et.IsError() && !elemT.IsError() && !types.Unify(elemT, et, types.NewSubstitution()) {
				a.errorf(el.Span(), diag.CodeTypeMismatch, "array element type "+et.String()+" differs from "+elemT.String())
			}
		}
		return types.Slice(elemT)

	case *ast.TupleLitExpr:
		elems := make([]*types.Type, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = a.inferExpr(el, scope)
		}
		return types.Tuple(elems)

	case *ast.RangeExpr:
		st := a.inferExpr(x.Start, scope)
		en := a.inferExpr(x.End, scope)
		if !st.IsError() && !st.IsInteger() {
			a.errorf(x.Start.Span(), diag.CodeTypeMismatch, "range bound must be an integer")
		}
		if !en.IsError() && !en.IsInteger() {
			a.errorf(x.End.Span(), diag.CodeTypeMismatch, "range bound must be an integer")
		}
		return st

	case *ast.AwaitExpr:
		return a.inferExpr(x.Operand, scope)

	case *ast.ReceiveExpr:
		ch := a.inferExpr(x.Channel, scope)
		if ch.Kind() == types.KindStruct && len(ch.TypeArgs()) == 1 {
			return ch.TypeArgs()[0]
		}
		return types.ErrorType()

	case *ast.SelectExpr:
		var common *types.Type
		for _, arm := range x.Arms {
			a.inferExpr(arm.Channel, scope)
			bt := a.inferExpr(arm.Body, scope)
			if common == nil {
				common = bt
			}
		}
		if common == nil {
			return types.Void()
		}
		return common

	case *ast.GenericExpr:
		base := a.inferExpr(x.Callee, scope)
		args := make([]*types.Type, len(x.TypeArgs))
		for i, at := range x.TypeArgs {
			args[i] = a.resolveType(at, scope)
		}
		if base.Kind() == types.KindFunction && base.Symbol() != 0 {
			a.instances[types.KeyForInstance(base.Symbol(), args)] = true
		}
		return base

	case *ast.ErrorExpr:
		return types.ErrorType()
	}
	return types.ErrorType()
}

func (a *Analyzer) inferPath(x *ast.PathExpr, scope ScopeID) *types.Type {
	if len(x.Segments) == 2 {
		if sym, ok := a.table.Lookup(scope, x.Segments[0], SymType); ok {
			if enumDecl, ok := sym.Node.(*ast.EnumDecl); ok {
				variantName := x.Segments[1]
				found := false
				for _, v := range enumDecl.Variants {
					if v.Name == variantName {
						found = true
						if v.HasPayload && len(v.PayloadType) > 0 {
							a.errorf(x.Span(), diag.CodeMissingVariantArguments,
								"variant "+x.Segments[0]+"."+variantName+" carries a payload and cannot be used as a bare value")
						}
						break
					}
				}
				if !found {
					a.undefinedSymbol(x.Segments[0]+"."+variantName, x.Span(), scope)
					return types.ErrorType()
				}
				return types.Enum(sym.ID, x.Segments[0], nil)
			}
		}
	}
	last := x.Segments[len(x.Segments)-1]
	sym, ok := a.table.Lookup(scope, last, SymLocal, SymConst, SymFunction, SymType)
	if !ok {
		a.undefinedSymbol(last, x.Span(), scope)
		return types.ErrorType()
	}
	return sym.Type
}

func (a *Analyzer) inferField(x *ast.FieldExpr, scope ScopeID) *types.Type {
	// "TypeName.Field" may be an enum-variant-as-bare-value (caught here,
	// the deferred check documented in internal/parser), or a qualified
	// associated-item reference; otherwise it's a genuine struct field
	// access on a value receiver.
	if recvIdent, ok := x.Receiver.(*ast.Identifier); ok {
		if sym, ok := a.table.Lookup(scope, recvIdent.Name, SymType); ok {
			if enumDecl, ok := sym.Node.(*ast.EnumDecl); ok {
				for _, v := range enumDecl.Variants {
					if v.Name == x.Field {
						if v.HasPayload && len(v.PayloadType) > 0 {
							a.errorf(x.Span(), diag.CodeMissingVariantArguments,
								"variant "+recvIdent.Name+"."+x.Field+" carries a payload and cannot be used as a bare value")
						}
						return types.Enum(sym.ID, recvIdent.Name, nil)
					}
				}
			}
			if fnSym, ok := a.table.Lookup(scope, recvIdent.Name+"."+x.Field, SymFunction); ok {
				a.resolvedIdents[x.ID()] = fnSym
				return fnSym.Type
			}
		}
	}

	recv := a.inferExpr(x.Receiver, scope)
	if recv.IsError() {
		return types.ErrorType()
	}
	if recv.Kind() != types.KindStruct {
		a.errorf(x.Span(), diag.CodeTypeMismatch, recv.String()+" has no field \""+x.Field+"\"")
		return types.ErrorType()
	}
	sym := a.table.Symbol(recv.Symbol())
	if sym == nil {
		return types.ErrorType()
	}
	structDecl, ok := sym.Node.(*ast.StructDecl)
	if !ok {
		return types.ErrorType()
	}
	for _, f := range structDecl.Fields {
		if f.Name == x.Field {
			if !f.Visibility {
				a.errorf(x.Span(), diag.CodePrivateFieldAccess, "field \""+x.Field+"\" of "+recv.String()+" is private")
			}
			return a.resolveType(f.Type, a.pkgScope)
		}
	}
	a.errorf(x.Span(), diag.CodeTypeMismatch, recv.String()+" has no field \""+x.Field+"\"")
	return types.ErrorType()
}

func (a *Analyzer) inferCall(x *ast.CallExpr, scope ScopeID) *types.Type {
	calleeType := a.inferExpr(x.Callee, scope)
	argTypes := make([]*types.Type, len(x.Args))
	for i, arg := range x.Args {
		argTypes[i] = a.inferExpr(arg, scope)
	}
	if calleeType.IsError() {
		return types.ErrorType()
	}
	if calleeType.Kind() != types.KindFunction {
		// A callee that resolved to an enum type (a variant path such as
		// "Status::Ok" in "Status::Ok(void)", see inferPath) makes this an
		// enum-variant construction, which has that enum type. Its
		// arguments are inferred above but not checked against the
		// variant's payload types.
		if calleeType.Kind() == types.KindEnum {
			return calleeType
		}
		a.errorf(x.Callee.Span(), diag.CodeNotCallable, calleeType.String()+" is not callable")
		return types.ErrorType()
	}
	params := calleeType.Elems()
	if len(params) != len(x.Args) {
		a.errorf(x.Span(), diag.CodeWrongArity,
			"expected arguments, got a different count for this call")
	}
	for i := 0; i < len(params) && i < len(x.Args); i++ {
		at := a.coerceLiteral(x.Args[i], argTypes[i], params[i])
		if !at.IsError() && !params[i].IsError() && !types.Unify(params[i], at, types.NewSubstitution()) {
			a.errorf(x.Args[i].Span(), diag.CodeTypeMismatch,
				"argument "+at.String()+" does not match parameter type "+params[i].String())
		}
	}
	return calleeType.Ret()
}

func (a *Analyzer) inferMethodCall(x *ast.MethodCallExpr, scope ScopeID) *types.Type {
	recv := a.inferExpr(x.Receiver, scope)
	for _, arg := range x.Args {
		a.inferExpr(arg, scope)
	}
	if recv.IsError() {
		return types.ErrorType()
	}
	typeName := recv.Name()
	if typeName == "" {
		a.errorf(x.Span(), diag.CodeNotCallable, "method \""+x.Method+"\" has no receiver type")
		return types.ErrorType()
	}
	sym, ok := a.table.Lookup(a.pkgScope, typeName+"."+x.Method, SymFunction)
	if !ok {
		a.undefinedSymbol(typeName+"."+x.Method, x.Span(), a.pkgScope)
		return types.ErrorType()
	}
	a.resolvedIdents[x.ID()] = sym
	if sym.Type == nil || sym.Type.Kind() != types.KindFunction {
		return types.ErrorType()
	}
	return sym.Type.Ret()
}

func (a *Analyzer) inferBinary(x *ast.BinaryExpr, scope ScopeID) *types.Type {
	l := a.inferExpr(x.Left, scope)
	r := a.inferExpr(x.Right, scope)
	if l.IsError() || r.IsError() {
		return types.ErrorType()
	}
	switch x.Op {
	case ast.OpAnd, ast.OpOr:
		a.requireBool(x.Left.Span(), l)
		a.requireBool(x.Right.Span(), r)
		return types.Bool()
	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		if !l.IsNever() && !r.IsNever() && !types.Unify(l, r, types.NewSubstitution()) {
			a.errorf(x.Span(), diag.CodeTypeMismatch, "cannot compare "+l.String()+" and "+r.String())
		}
		return types.Bool()
	default:
		if !l.IsNumeric() && !l.IsNever() {
			a.errorf(x.Left.Span(), diag.CodeTypeMismatch, "expected a numeric operand, found "+l.String())
		}
		if !r.IsNumeric() && !r.IsNever() {
			a.errorf(x.Right.Span(), diag.CodeTypeMismatch, "expected a numeric operand, found "+r.String())
		}
		if !l.IsNever() {
			return l
		}
		return r
	}
}

func (a *Analyzer) inferUnary(x *ast.UnaryExpr, scope ScopeID) *types.Type {
	operand := a.inferExpr(x.Operand, scope)
	switch x.Op {
	case ast.OpNeg:
		return operand
	case ast.OpNot:
		a.requireBool(x.Operand.Span(), operand)
		return types.Bool()
	case ast.OpBitNot:
		if !operand.IsError() && !operand.IsInteger() {
			a.errorf(x.Operand.Span(), diag.CodeTypeMismatch, "bitwise not requires an integer operand")
		}
		return operand
	case ast.OpDeref:
		if !a.inUnsafe {
			a.errorf(x.Span(), diag.CodeUnsafeRequired, "pointer dereference requires an unsafe block")
		}
		if operand.Kind() != types.KindPointer {
			if !operand.IsError() {
				a.errorf(x.Operand.Span(), diag.CodeTypeMismatch, operand.String()+" is not a pointer")
			}
			return types.ErrorType()
		}
		return operand.Elem()
	case ast.OpAddr:
		return types.Pointer(operand, false)
	case ast.OpAddrMut:
		if root := rootIdentifier(x.Operand); root != nil {
			if sym, ok := a.table.Lookup(scope, root.Name, SymLocal); ok && !sym.Mutable {
				a.errorf(x.Span(), diag.CodeBorrowMutFromImmutable,
					"cannot take a mutable reference to immutable binding \""+root.Name+"\"")
			}
		}
		return types.Pointer(operand, true)
	}
	return types.ErrorType()
}

func (a *Analyzer) inferStructLit(x *ast.StructLitExpr, scope ScopeID) *types.Type {
	sym, ok := a.table.Lookup(scope, x.TypeName, SymType)
	if !ok {
		a.undefinedSymbol(x.TypeName, x.Span(), scope)
		for _, f := range x.Fields {
			a.inferExpr(f.Value, scope)
		}
		return types.ErrorType()
	}
	structDecl, ok := sym.Node.(*ast.StructDecl)
	if !ok {
		a.errorf(x.Span(), diag.CodeTypeMismatch, x.TypeName+" is not a struct type")
		return types.ErrorType()
	}
	if x.Empty != structDecl.Empty && len(structDecl.Fields) == 0 {
		// both say "no fields"; nothing to check
	}
	seen := map[string]bool{}
	for _, f := range x.Fields {
		seen[f.Name] = true
		ft := a.inferExpr(f.Value, scope)
		var declType *types.Type
		for _, sf := range structDecl.Fields {
			if sf.Name == f.Name {
				declType = a.resolveType(sf.Type, a.pkgScope)
				break
			}
		}
		if declType == nil {
			a.errorf(f.Span, diag.CodeTypeMismatch, x.TypeName+" has no field \""+f.Name+"\"")
			continue
		}
		ft = a.coerceLiteral(f.Value, ft, declType)
		if !ft.IsError() && !declType.IsError() && !types.Unify(declType, ft, types.NewSubstitution()) {
			a.errorf(f.Value.Span(), diag.CodeTypeMismatch,
				"field \""+f.Name+"\" expects "+declType.String()+", found "+ft.String())
		}
	}
	for _, sf := range structDecl.Fields {
		if !seen[sf.Name] {
			a.errorf(x.Span(), diag.CodeWrongArity, "missing field \""+sf.Name+"\" in "+x.TypeName+" literal")
		}
	}
	return types.Struct(sym.ID, x.TypeName, nil)
}
