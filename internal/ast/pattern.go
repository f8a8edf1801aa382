package ast

import "github.com/asthra-lang/asthrac/internal/source"

// WildcardPattern is the bare "_" pattern.
type WildcardPattern struct{ patternBase }

func NewWildcardPattern(a *Arena, span source.Span) *WildcardPattern {
	return &WildcardPattern{patternBase{base{a.alloc(), span}}}
}

func (*WildcardPattern) PatternKind() PatternKind { return PatWildcard }

// IdentPattern binds the scrutinee to a new name, e.g. the "x" in
// "match v { x => ... }".
type IdentPattern struct {
	patternBase
	Name string
}

func NewIdentPattern(a *Arena, span source.Span, name string) *IdentPattern {
	return &IdentPattern{patternBase: patternBase{base{a.alloc(), span}}, Name: name}
}

func (*IdentPattern) PatternKind() PatternKind { return PatIdent }

// LiteralPattern matches a constant value exactly.
type LiteralPattern struct {
	patternBase
	Value Expr // always a Literal
}

func NewLiteralPattern(a *Arena, span source.Span, value Expr) *LiteralPattern {
	return &LiteralPattern{patternBase: patternBase{base{a.alloc(), span}}, Value: value}
}

func (*LiteralPattern) PatternKind() PatternKind { return PatLiteral }

// FieldPattern is one "name: pattern" entry inside a StructPattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
	Span    source.Span
}

// StructPattern destructures a struct value by field.
type StructPattern struct {
	patternBase
	TypeName string
	Fields   []FieldPattern
	Rest     bool // trailing "..", accepts unlisted fields
}

func NewStructPattern(a *Arena, span source.Span, typeName string, fields []FieldPattern, rest bool) *StructPattern {
	return &StructPattern{patternBase: patternBase{base{a.alloc(), span}}, TypeName: typeName, Fields: fields, Rest: rest}
}

func (*StructPattern) PatternKind() PatternKind { return PatStruct }

// EnumVariantPattern matches a specific enum variant and destructures its
// payload, if any. Payload is nil when the variant carries none, matching
// the explicit payload marker spec.md §3 requires at the declaration site.
type EnumVariantPattern struct {
	patternBase
	EnumName    string
	VariantName string
	Payload     []Pattern
}

func NewEnumVariantPattern(a *Arena, span source.Span, enumName, variantName string, payload []Pattern) *EnumVariantPattern {
	return &EnumVariantPattern{patternBase: patternBase{base{a.alloc(), span}}, EnumName: enumName, VariantName: variantName, Payload: payload}
}

func (*EnumVariantPattern) PatternKind() PatternKind { return PatEnumVariant }

// TuplePattern destructures a tuple positionally.
type TuplePattern struct {
	patternBase
	Elems []Pattern
}

func NewTuplePattern(a *Arena, span source.Span, elems []Pattern) *TuplePattern {
	return &TuplePattern{patternBase: patternBase{base{a.alloc(), span}}, Elems: elems}
}

func (*TuplePattern) PatternKind() PatternKind { return PatTuple }
