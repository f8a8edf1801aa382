// Package types implements Asthra's semantic type representation and the
// operations over it: construction, structural equality, substitution
// (first-order unification with occurs check), and the printable form used
// in diagnostics. It mirrors the closed-tag-union shape of
// tunascript/syntax/value.go (a Kind discriminator plus the few fields each
// Kind actually uses) scaled from Value's four runtime cases to spec.md §3's
// full static type lattice.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of semantic type forms (spec.md §3).
type Kind int

const (
	KindVoid Kind = iota
	KindNever
	KindBool
	KindInt
	KindFloat
	KindChar
	KindString
	KindPointer
	KindSlice
	KindArray
	KindTuple
	KindStruct
	KindEnum
	KindFunction
	KindTypeVar
	KindGeneric
	KindError // analyzer's opaque type that unifies with anything (spec.md §4.6)
)

// Width is an integer or float bit width, including the platform-sized
// "size" width used for pointer-sized integers.
type Width int

const (
	W8 Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64
	W128 Width = 128
	WSize Width = -1 // isize/usize
)

// SymbolID is an opaque reference to a symbol-table entry owned by package
// sema. types intentionally does not import sema, to keep the dependency
// one-directional (sema depends on types, not the reverse); a Type only
// ever carries the bare id plus a cached human name for printing.
type SymbolID int

// Type is a semantic type: an immutable, structurally-comparable value.
// Only the fields relevant to Kind are meaningful, exactly as
// tunascript/syntax/value.go's Value documents for its own four-case union.
type Type struct {
	kind Kind

	signed  bool  // KindInt
	width   Width // KindInt, KindFloat
	untyped bool  // KindInt: literal has no fixed width yet (spec.md §4.5)

	elem     *Type // KindPointer, KindSlice, KindArray
	mutable  bool  // KindPointer
	length   int64 // KindArray

	elems []*Type // KindTuple, KindFunction (params)
	ret   *Type   // KindFunction
	abi   string  // KindFunction: "" for native, else the extern ABI name

	symbol   SymbolID // KindStruct, KindEnum, KindGeneric
	name     string   // KindStruct, KindEnum, KindGeneric, KindTypeVar (display only)
	typeArgs []*Type  // KindStruct, KindEnum: generic instantiation arguments
	bounds   []*Type  // KindGeneric: trait/interface bounds

	varID int // KindTypeVar
}

func Void() *Type  { return &Type{kind: KindVoid} }
func Never() *Type { return &Type{kind: KindNever} }
func Bool() *Type  { return &Type{kind: KindBool} }
func Char() *Type  { return &Type{kind: KindChar} }
func String() *Type { return &Type{kind: KindString} }
func ErrorType() *Type { return &Type{kind: KindError} }

func Int(width Width, signed bool) *Type {
	return &Type{kind: KindInt, width: width, signed: signed}
}

// UntypedInt is the type of a bare integer literal before it has been
// coerced to the concrete integer type its context demands (spec.md §4.5).
// It prints and defaults as i32 but unifies with any integer width.
func UntypedInt() *Type {
	return &Type{kind: KindInt, width: W32, signed: true, untyped: true}
}

func Float(width Width) *Type {
	return &Type{kind: KindFloat, width: width}
}

func Pointer(elem *Type, mutable bool) *Type {
	return &Type{kind: KindPointer, elem: elem, mutable: mutable}
}

func Slice(elem *Type) *Type {
	return &Type{kind: KindSlice, elem: elem}
}

func Array(elem *Type, length int64) *Type {
	return &Type{kind: KindArray, elem: elem, length: length}
}

func Tuple(elems []*Type) *Type {
	return &Type{kind: KindTuple, elems: elems}
}

func Struct(id SymbolID, name string, typeArgs []*Type) *Type {
	return &Type{kind: KindStruct, symbol: id, name: name, typeArgs: typeArgs}
}

func Enum(id SymbolID, name string, typeArgs []*Type) *Type {
	return &Type{kind: KindEnum, symbol: id, name: name, typeArgs: typeArgs}
}

func Function(params []*Type, ret *Type, abi string) *Type {
	return &Type{kind: KindFunction, elems: params, ret: ret, abi: abi}
}

func TypeVar(id int) *Type {
	return &Type{kind: KindTypeVar, varID: id, name: fmt.Sprintf("?%d", id)}
}

func Generic(id SymbolID, name string, bounds []*Type) *Type {
	return &Type{kind: KindGeneric, symbol: id, name: name, bounds: bounds}
}

func (t *Type) Kind() Kind { return t.kind }
func (t *Type) Elem() *Type { return t.elem }
func (t *Type) Mutable() bool { return t.mutable }
func (t *Type) Length() int64 { return t.length }
func (t *Type) Elems() []*Type { return t.elems }
func (t *Type) Ret() *Type { return t.ret }
func (t *Type) ABI() string { return t.abi }
func (t *Type) Symbol() SymbolID { return t.symbol }
func (t *Type) Name() string { return t.name }
func (t *Type) TypeArgs() []*Type { return t.typeArgs }
func (t *Type) Bounds() []*Type { return t.bounds }
func (t *Type) VarID() int { return t.varID }
func (t *Type) Signed() bool { return t.signed }
func (t *Type) Width() Width { return t.width }

// IsInteger reports whether t is one of the signed/unsigned integer kinds.
func (t *Type) IsInteger() bool { return t.kind == KindInt }

// IsUntypedInt reports whether t is an integer literal's type that has not
// yet been coerced to a concrete width (spec.md §4.5).
func (t *Type) IsUntypedInt() bool { return t.kind == KindInt && t.untyped }

// IsNumeric reports whether t is an integer or float kind.
func (t *Type) IsNumeric() bool { return t.kind == KindInt || t.kind == KindFloat }

// IsNever reports whether t is the bottom type, which unifies with any
// expected type (spec.md §4.5: diverging expressions).
func (t *Type) IsNever() bool { return t.kind == KindNever }

// IsError reports whether t is the analyzer's error-suppression type.
func (t *Type) IsError() bool { return t.kind == KindError }

// IsConcrete reports whether t contains no unresolved TypeVar, which
// spec.md §8's "type back-annotation completeness" property requires of
// every expression after a clean analysis.
func (t *Type) IsConcrete() bool {
	switch t.kind {
	case KindTypeVar:
		return false
	case KindError:
		return false
	case KindPointer, KindSlice, KindArray:
		return t.elem.IsConcrete()
	case KindTuple:
		for _, e := range t.elems {
			if !e.IsConcrete() {
				return false
			}
		}
		return true
	case KindStruct, KindEnum:
		for _, a := range t.typeArgs {
			if !a.IsConcrete() {
				return false
			}
		}
		return true
	case KindFunction:
		for _, p := range t.elems {
			if !p.IsConcrete() {
				return false
			}
		}
		return t.ret.IsConcrete()
	default:
		return true
	}
}

// Equal reports structural equality, not identity: two distinct *Type
// values describing "i32" are Equal.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindInt:
		return t.width == o.width && t.signed == o.signed
	case KindFloat:
		return t.width == o.width
	case KindPointer:
		return t.mutable == o.mutable && t.elem.Equal(o.elem)
	case KindSlice:
		return t.elem.Equal(o.elem)
	case KindArray:
		return t.length == o.length && t.elem.Equal(o.elem)
	case KindTuple:
		return equalSlices(t.elems, o.elems)
	case KindStruct, KindEnum:
		return t.symbol == o.symbol && equalSlices(t.typeArgs, o.typeArgs)
	case KindFunction:
		return t.abi == o.abi && t.ret.Equal(o.ret) && equalSlices(t.elems, o.elems)
	case KindTypeVar:
		return t.varID == o.varID
	case KindGeneric:
		return t.symbol == o.symbol
	default:
		return true
	}
}

func equalSlices(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders the type the way diagnostics print it.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindError:
		return "<error>"
	case KindInt:
		prefix := "i"
		if !t.signed {
			prefix = "u"
		}
		if t.width == WSize {
			if t.signed {
				return "isize"
			}
			return "usize"
		}
		return prefix + strconv.Itoa(int(t.width))
	case KindFloat:
		return "f" + strconv.Itoa(int(t.width))
	case KindPointer:
		if t.mutable {
			return "*mut " + t.elem.String()
		}
		return "*const " + t.elem.String()
	case KindSlice:
		return "[]" + t.elem.String()
	case KindArray:
		return fmt.Sprintf("[%d]%s", t.length, t.elem.String())
	case KindTuple:
		parts := make([]string, len(t.elems))
		for i, e := range t.elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindStruct, KindEnum:
		if len(t.typeArgs) == 0 {
			return t.name
		}
		parts := make([]string, len(t.typeArgs))
		for i, a := range t.typeArgs {
			parts[i] = a.String()
		}
		return t.name + "<" + strings.Join(parts, ", ") + ">"
	case KindFunction:
		parts := make([]string, len(t.elems))
		for i, p := range t.elems {
			parts[i] = p.String()
		}
		abi := ""
		if t.abi != "" {
			abi = "extern \"" + t.abi + "\" "
		}
		return fmt.Sprintf("%sfn(%s) -> %s", abi, strings.Join(parts, ", "), t.ret.String())
	case KindTypeVar:
		return t.name
	case KindGeneric:
		return t.name
	default:
		return "?"
	}
}
