package ast

import "github.com/asthra-lang/asthrac/internal/source"

// NamedType is a bare or qualified type name, e.g. "i32" or "pkg::Widget",
// with its generic arguments supplied separately by GenericAppType.
type NamedType struct {
	typeExprBase
	Path []string
}

func NewNamedType(a *Arena, span source.Span, path []string) *NamedType {
	return &NamedType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Path: path}
}

func (*NamedType) TypeExprKind() TypeKind { return TypeNamed }

// GenericAppType is a generic instantiation written in source, e.g.
// "Vec<i32>" or "Map<K, V>".
type GenericAppType struct {
	typeExprBase
	Base TypeExpr
	Args []TypeExpr
}

func NewGenericAppType(a *Arena, span source.Span, base_ TypeExpr, args []TypeExpr) *GenericAppType {
	return &GenericAppType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Base: base_, Args: args}
}

func (*GenericAppType) TypeExprKind() TypeKind { return TypeGenericApp }

// PointerType is "*mut T" or "*const T"; spec.md §3 requires the mutability
// qualifier to always be written explicitly.
type PointerType struct {
	typeExprBase
	Elem    TypeExpr
	Mutable bool
}

func NewPointerType(a *Arena, span source.Span, elem TypeExpr, mutable bool) *PointerType {
	return &PointerType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Elem: elem, Mutable: mutable}
}

func (*PointerType) TypeExprKind() TypeKind { return TypePointer }

// SliceType is "[]T".
type SliceType struct {
	typeExprBase
	Elem TypeExpr
}

func NewSliceType(a *Arena, span source.Span, elem TypeExpr) *SliceType {
	return &SliceType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Elem: elem}
}

func (*SliceType) TypeExprKind() TypeKind { return TypeSlice }

// ArrayType is "[N]T". Length is nil for "[void]", the explicit empty-array
// marker spec.md §3 requires in place of a bare "[]T{}".
type ArrayType struct {
	typeExprBase
	Elem   TypeExpr
	Length Expr
	Void   bool
}

func NewArrayType(a *Arena, span source.Span, elem TypeExpr, length Expr, void bool) *ArrayType {
	return &ArrayType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Elem: elem, Length: length, Void: void}
}

func (*ArrayType) TypeExprKind() TypeKind { return TypeArray }

// FunctionType is a first-class function type, "fn(T, U) -> R".
type FunctionType struct {
	typeExprBase
	Params []TypeExpr
	Return TypeExpr
}

func NewFunctionType(a *Arena, span source.Span, params []TypeExpr, ret TypeExpr) *FunctionType {
	return &FunctionType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Params: params, Return: ret}
}

func (*FunctionType) TypeExprKind() TypeKind { return TypeFunction }

// TupleType is "(T, U, V)".
type TupleType struct {
	typeExprBase
	Elems []TypeExpr
}

func NewTupleType(a *Arena, span source.Span, elems []TypeExpr) *TupleType {
	return &TupleType{typeExprBase: typeExprBase{base{a.alloc(), span}}, Elems: elems}
}

func (*TupleType) TypeExprKind() TypeKind { return TypeTuple }

// NeverType is the bottom type "!", written on functions that never return.
type NeverType struct{ typeExprBase }

func NewNeverType(a *Arena, span source.Span) *NeverType {
	return &NeverType{typeExprBase{base{a.alloc(), span}}}
}

func (*NeverType) TypeExprKind() TypeKind { return TypeNever }

// VoidType is the explicit "void" return annotation.
type VoidType struct{ typeExprBase }

func NewVoidType(a *Arena, span source.Span) *VoidType {
	return &VoidType{typeExprBase{base{a.alloc(), span}}}
}

func (*VoidType) TypeExprKind() TypeKind { return TypeVoid }
