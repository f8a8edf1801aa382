package ast

import "github.com/asthra-lang/asthrac/internal/types"

// Decl is satisfied by every declaration-level node: Package, Import,
// FunctionDecl, ExternDecl, StructDecl, EnumDecl, ImplBlock, ConstDecl.
type Decl interface {
	Node
	declNode()
	DeclKind() DeclKind
}

// Stmt is satisfied by every statement-level node.
type Stmt interface {
	Node
	stmtNode()
	StmtKind() StmtKind
}

// Expr is satisfied by every expression-level node. Every expression
// reserves a resolved-type slot directly on the node (spec.md §9): the
// semantic analyzer fills it in during type checking and every later stage
// reads it back without re-deriving it.
type Expr interface {
	Node
	exprNode()
	ExprKind() ExprKind
	ResolvedType() *types.Type
	SetResolvedType(*types.Type)
}

// Pattern is satisfied by every match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
	PatternKind() PatternKind
}

// TypeExpr is satisfied by every syntactic (pre-resolution) type node, as
// written in source before the semantic analyzer turns it into a
// types.Type.
type TypeExpr interface {
	Node
	typeExprNode()
	TypeExprKind() TypeKind
}

type declBase struct{ base }

func (d *declBase) declNode() {}

type stmtBase struct{ base }

func (s *stmtBase) stmtNode() {}

type exprBase struct {
	base
	resolvedType *types.Type
}

func (e *exprBase) exprNode() {}

// ResolvedType returns the type the semantic analyzer assigned this
// expression, or nil before analysis has run.
func (e *exprBase) ResolvedType() *types.Type { return e.resolvedType }

// SetResolvedType records the semantic analyzer's verdict for this
// expression. Called at most once per node under a clean analysis.
func (e *exprBase) SetResolvedType(t *types.Type) { e.resolvedType = t }

type patternBase struct{ base }

func (p *patternBase) patternNode() {}

type typeExprBase struct{ base }

func (t *typeExprBase) typeExprNode() {}
