// Package ast defines Asthra's tagged-variant abstract syntax tree. Nodes
// are grouped into five closed categories — declarations, statements,
// expressions, patterns, and syntactic types — each its own small marker
// interface, the same "Type() enum with a total case analysis at every
// traversal" shape tunascript/syntax/ast.go uses for its single ASTNode
// hierarchy, scaled out to categories rather than one flat interface since
// spec.md's grammar has far more variants than tunascript's expression
// language. Traversals switch on the category-specific Kind() and then on
// the concrete Go type, which is Go's idiomatic equivalent of the teacher's
// panicking As*() accessors: a node a traversal does not handle falls to
// the switch's default branch (or to no branch) instead of a runtime
// panic. Go does not check type switches for exhaustiveness.
package ast

// NodeID identifies a node within an Arena. Cross-node references (for
// example, a use-site identifier's resolved declaration) are stored as
// NodeIDs in side tables owned by the semantic analyzer, never as pointers
// on the node itself — this is what keeps the arena acyclic by
// construction (spec.md §9).
type NodeID int

// DeclKind is the closed set of top-level and member declaration forms.
type DeclKind int

const (
	DeclPackage DeclKind = iota
	DeclImport
	DeclFunction
	DeclExtern
	DeclStruct
	DeclEnum
	DeclImpl
	DeclConst
)

// StmtKind is the closed set of statement forms.
type StmtKind int

const (
	StmtLet StmtKind = iota
	StmtAssign
	StmtReturn
	StmtIf
	StmtMatch
	StmtFor
	StmtWhile
	StmtBreak
	StmtContinue
	StmtBlock
	StmtUnsafe
	StmtSpawn
	StmtExpr
)

// ExprKind is the closed set of expression forms.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprIdent
	ExprPath
	ExprField
	ExprIndex
	ExprCall
	ExprMethodCall
	ExprBinary
	ExprUnary
	ExprCast
	ExprStructLit
	ExprArrayLit
	ExprRange
	ExprAwait
	ExprReceive
	ExprSelect
	ExprGeneric
	ExprTupleLit
	ExprError // parser-synthesized placeholder for an already-reported error
)

// PatternKind is the closed set of pattern forms.
type PatternKind int

const (
	PatWildcard PatternKind = iota
	PatIdent
	PatLiteral
	PatStruct
	PatEnumVariant
	PatTuple
)

// TypeKind is the closed set of syntactic (pre-resolution) type forms.
type TypeKind int

const (
	TypeNamed TypeKind = iota
	TypeGenericApp
	TypePointer
	TypeSlice
	TypeArray
	TypeFunction
	TypeTuple
	TypeNever
	TypeVoid
)
